package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/printshop/backend/internal/domain/shared/valueobject"
)

// SetupValidator configures gin's validator with custom tags
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON (or form) tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// fecha validates a YYYY-MM-DD date string; empty values pass so
	// the tag composes with omitempty-style optional fields
	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if raw == "" {
			return true
		}
		_, err := valueobject.NewDate(raw)
		return err == nil
	})
}
