package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits_StripsFormatting(t *testing.T) {
	assert.Equal(t, "12345678900", Digits("123.456.789-00"))
	assert.Equal(t, "12345678900", Digits("123456789-00"))
	assert.Equal(t, "73999998888", Digits("(73) 99999-8888"))
}

func TestDigits_EmptyInput(t *testing.T) {
	assert.Equal(t, "", Digits(""))
	assert.Equal(t, "", Digits("abc-/."))
}

func TestDigits_Idempotent(t *testing.T) {
	inputs := []string{"", "123.456.789-00", "00000000000", "a1b2c3", "  42  "}
	for _, in := range inputs {
		once := Digits(in)
		assert.Equal(t, once, Digits(once))
	}
}

func TestDigits_OnlyDigitsAndNoLonger(t *testing.T) {
	inputs := []string{"123.456.789-00", "x", "9", "tel: +55 (73) 3201-0000"}
	for _, in := range inputs {
		out := Digits(in)
		assert.LessOrEqual(t, len(out), len(in))
		for _, r := range out {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
