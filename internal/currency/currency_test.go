package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("INR"))
	assert.True(t, Supported("USD"))
	assert.False(t, Supported("usd"), "codes are matched exactly")
	assert.False(t, Supported("XYZ"))
	assert.False(t, Supported(""))
	assert.True(t, Supported(Default))
}

func TestCodesIsACopy(t *testing.T) {
	codes := Codes()
	codes[0] = "XXX"
	assert.Equal(t, "INR", Codes()[0])
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "₹", Symbol("INR"))
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "€", Symbol("EUR"))
	assert.Equal(t, "NOPE", Symbol("NOPE"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$450.50", Format(450.5, "USD"))
	assert.Equal(t, "$0.00", Format(0, "USD"))
	assert.Equal(t, "12.50 NOPE", Format(12.5, "NOPE"))
}
