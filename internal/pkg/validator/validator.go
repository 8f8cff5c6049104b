package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate returns a field → failed-tag map, or nil when v passes.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		errs[fe.Field()] = fe.Tag()
	}
	return errs
}
