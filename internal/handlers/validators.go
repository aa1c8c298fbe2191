package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"saferail/internal/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the in_phone and username tags to gin's validator
// and reports JSON field names in validation errors.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("in_phone", func(fl validator.FieldLevel) bool {
			return validation.Phone(fl.Field().String()) == nil
		})
		_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return validation.Username(fl.Field().String()) == nil
		})
	})
}

// bindingFields converts validator errors into the per-field message map,
// or returns nil for anything else (malformed JSON, wrong types).
func bindingFields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = tagMessage(fe)
	}
	return fields
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "in_phone":
		return validation.ErrPhoneFormat.Error()
	case "username":
		if s, ok := fe.Value().(string); ok {
			if err := validation.Username(s); err != nil {
				return err.Error()
			}
		}
		return validation.ErrUsernameCharset.Error()
	case "email":
		return validation.ErrEmailFormat.Error()
	case "oneof":
		return "Must be one of: " + fe.Param()
	}
	return "Invalid value"
}
