package api

import (
	"errors"  // Error unwrapping
	"fmt"     // Message formatting
	"reflect" // Struct tag access for field naming
	"strings" // String manipulation

	"github.com/gin-gonic/gin/binding"       // Gin's binding engine
	"github.com/go-playground/validator/v10" // Validation library behind gin binding
)

// init makes validator report fields by their json names so validation
// messages match the wire format.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return "" // Field is not serialized
			}
			return name
		})
	}
}

// validationMessages turns a binding error into one human-readable message
// per violated field. Non-validator errors (malformed JSON) collapse to a
// single generic message.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Invalid request body"} // Malformed or non-JSON body
	}
	msgs := make([]string, 0, len(verrs)) // One message per violation
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe)) // Append the field's message
	}
	return msgs
}

// fieldMessage renders a single field violation
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
