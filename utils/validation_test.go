package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("  user@example.com  "))

	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("user@"))
	assert.False(t, ValidateEmail(""))
}

func TestValidateShippingAddress(t *testing.T) {
	errs := ValidateShippingAddress("12 Main St", "Kochi", "Kerala", "India", "682001")
	assert.Empty(t, errs)

	errs = ValidateShippingAddress("", "", "Kerala", "India", "abc")
	assert.Len(t, errs, 3)

	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["line1"])
	assert.True(t, fields["city"])
	assert.True(t, fields["postal_code"])
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("hello"))
	assert.NotContains(t, SanitizeString("<script>alert(1)</script>hi"), "<script>")
}
