package validator

import (
	"github.com/go-playground/validator/v10"
)

// Single shared instance; validator caches struct metadata internally.
var validate = validator.New()

// Get returns the shared validator instance
func Get() *validator.Validate {
	return validate
}
