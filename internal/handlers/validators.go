package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Accepts local (0803...) and international (+234803...) Nigerian numbers.
var ngPhonePattern = regexp.MustCompile(`^(\+234[789][01]\d{8}|0[789][01]\d{8})$`)

func validateNGPhone(fl validator.FieldLevel) bool {
	return ngPhonePattern.MatchString(fl.Field().String())
}

// RegisterCustomValidators attaches domain-specific validation tags to gin's
// request binding engine. Must run before routes are registered.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ngphone", validateNGPhone)
	}
}
