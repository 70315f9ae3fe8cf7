package utils

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidations adds the custom binding rules to gin's validator.
func RegisterValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterValidation("foodname", validateFoodName)
		}
	})
}

// foodname: not blank and at most 255 bytes.
func validateFoodName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	return strings.TrimSpace(name) != "" && len(name) <= 255
}
