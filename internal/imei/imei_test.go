package imei

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGateway(t *testing.T) {
	valid := []string{"12345678901234", "123456789012345"}
	for _, id := range valid {
		assert.NoError(t, ValidateGateway(id), id)
	}

	invalid := []string{
		"",
		"1234567890123",
		"1234567890123456",
		"12345678901234a",
		"+2345678901234",
		"12345678901.34",
		" 12345678901234",
		"١٢٣٤٥٦٧٨٩٠١٢٣٤",
	}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidateGateway(id), ErrInvalid, id)
	}
}

func TestValidateBotIsStricterThanGateway(t *testing.T) {
	assert.NoError(t, ValidateBot("123456789012345"))
	assert.ErrorIs(t, ValidateBot("12345678901234"), ErrInvalid)
	assert.ErrorIs(t, ValidateBot("12345678901234x"), ErrInvalid)
	assert.ErrorIs(t, ValidateBot(""), ErrInvalid)

	// 14 digits pass at the gateway but not at the bot.
	assert.NoError(t, ValidateGateway("12345678901234"))
}

func TestNormalizeAndMask(t *testing.T) {
	assert.Equal(t, "123456789012345", Normalize("  123456789012345\n"))
	assert.Equal(t, "***********2345", Mask("123456789012345"))
	assert.Equal(t, "***", Mask("123"))
}
