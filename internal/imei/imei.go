// Package imei holds the identifier shape rules used at the two validation sites.
//
// The gateway accepts 14 or 15 digits (IMEI without or with the check digit) while
// the bot only accepts the full 15 digit form. Both rules are kept on purpose.
package imei

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is returned when an identifier does not satisfy the shape rule.
var ErrInvalid = errors.New("invalid imei")

var validate = validator.New()

type gatewayIdentifier struct {
	Value string `validate:"required,number,min=14,max=15"`
}

type botIdentifier struct {
	Value string `validate:"required,number,len=15"`
}

// ValidateGateway checks the gateway rule: non-empty, digits only, 14 or 15 long.
func ValidateGateway(id string) error {
	if err := validate.Struct(gatewayIdentifier{Value: id}); err != nil {
		return ErrInvalid
	}
	return nil
}

// ValidateBot checks the stricter bot rule: digits only and exactly 15 long.
func ValidateBot(id string) error {
	if err := validate.Struct(botIdentifier{Value: id}); err != nil {
		return ErrInvalid
	}
	return nil
}

// Normalize trims surrounding whitespace from user input.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// Mask hides everything but the last four characters so identifiers can be logged.
func Mask(id string) string {
	if len(id) <= 4 {
		return strings.Repeat("*", len(id))
	}
	return strings.Repeat("*", len(id)-4) + id[len(id)-4:]
}
