package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCredit(t *testing.T) {
	assert.NoError(t, CheckCredit(100, 500))
	assert.NoError(t, CheckCredit(9800, 200), "landing exactly on the cap is allowed")

	assert.ErrorIs(t, CheckCredit(9900, 200), ErrBalanceCapExceeded)
	assert.ErrorIs(t, CheckCredit(100, 0), ErrInvalidAmount)
	assert.ErrorIs(t, CheckCredit(100, -50), ErrInvalidAmount)
}

func TestCheckDebit(t *testing.T) {
	assert.NoError(t, CheckDebit(500, 500), "draining to zero is allowed")
	assert.NoError(t, CheckDebit(500, 100))

	assert.ErrorIs(t, CheckDebit(100, 100.01), ErrInsufficientBalance)
	assert.ErrorIs(t, CheckDebit(500, 0), ErrInvalidAmount)
	assert.ErrorIs(t, CheckDebit(500, -1), ErrInvalidAmount)
}
