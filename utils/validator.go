package utils

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/acai-pdv/models"
)

var (
	validationsOnce sync.Once
	validationsErr  error
)

// RegisterValidations adds the domain binding rules (product_size,
// payment_method, category, view) to gin's validator.
func RegisterValidations() error {
	validationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validationsErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		rules := map[string]validator.Func{
			"product_size": func(fl validator.FieldLevel) bool {
				return models.ProductSize(fl.Field().String()).IsValid()
			},
			"payment_method": func(fl validator.FieldLevel) bool {
				return models.PaymentMethod(fl.Field().String()).IsValid()
			},
			"category": func(fl validator.FieldLevel) bool {
				return models.Category(fl.Field().String()).IsValid()
			},
			"view": func(fl validator.FieldLevel) bool {
				return models.View(fl.Field().String()).IsValid()
			},
		}
		for tag, fn := range rules {
			if err := v.RegisterValidation(tag, fn); err != nil {
				validationsErr = err
				return
			}
		}
	})
	return validationsErr
}
