package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, -10.56, Round2(-10.556))
	assert.Equal(t, 100.0, Round2(99.999))
	assert.Equal(t, 620.0, Round2(619.9999999999999))
}

func TestToPaise(t *testing.T) {
	assert.Equal(t, 113, ToPaise(1.13))
	assert.Equal(t, 109, ToPaise(1.09))
	assert.Equal(t, 1, ToPaise(0.01))
	assert.Equal(t, 500000, ToPaise(5000))
}

func TestToPaiseExactForEveryCentAmount(t *testing.T) {
	// Amounts like 1.13 have no exact float representation; conversion
	// must still land on the exact paise value across the whole top-up
	// range, in both directions (charge and capture comparison).
	for paise := 100; paise <= 500000; paise++ {
		amount := float64(paise) / 100
		if got := ToPaise(amount); got != paise {
			t.Fatalf("ToPaise(%v) = %d, want %d", amount, got, paise)
		}
	}
}
