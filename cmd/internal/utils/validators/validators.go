// Package validators holds the custom tags registered on the shared
// validator instance at startup.
package validators

import (
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// IsIso8601 accepts RFC3339 timestamps, the ISO-8601 profile the API uses
// on the wire.
func IsIso8601(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.RFC3339, fl.Field().String())
	return err == nil
}

// HasMixedClasses requires at least two of: letters, digits, symbols.
func HasMixedClasses(fl validator.FieldLevel) bool {
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	classes := 0
	for _, ok := range []bool{hasLetter, hasDigit, hasSymbol} {
		if ok {
			classes++
		}
	}
	return classes >= 2
}
