package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidate()

	mu       sync.RWMutex
	messages = map[string]string{}
)

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON name so messages match the request payload.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// RegisterRule adds a custom string rule under tag. When the rule fails, the
// field error message is message verbatim.
func RegisterRule(tag string, fn func(string) bool, message string) error {
	if tag == "" || fn == nil {
		return errors.New("validator: tag and rule are required")
	}
	err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return fn(field.String())
	})
	if err != nil {
		return fmt.Errorf("register rule %s: %w", tag, err)
	}
	mu.Lock()
	messages[tag] = message
	mu.Unlock()
	return nil
}

// Validate validates a struct using go-playground/validator tags.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return &ValidationError{Errors: validationErrors}
		}
		return err
	}
	return nil
}

// ValidationError wraps validator.ValidationErrors with a user-friendly message.
type ValidationError struct {
	Errors validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, describe(err))
	}
	return strings.Join(msgs, "; ")
}

// First returns the message of the first failing field in declaration order.
func (e *ValidationError) First() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return describe(e.Errors[0])
}

// Fields returns a map of field names to error messages.
func (e *ValidationError) Fields() map[string]string {
	fields := make(map[string]string, len(e.Errors))
	for _, err := range e.Errors {
		fields[err.Field()] = msgForTag(err)
	}
	return fields
}

func describe(fe validator.FieldError) string {
	if msg, ok := customMessage(fe.Tag()); ok {
		return msg
	}
	return fmt.Sprintf("field '%s' %s", fe.Field(), msgForTag(fe))
}

func customMessage(tag string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	msg, ok := messages[tag]
	return msg, ok
}

func msgForTag(fe validator.FieldError) string {
	if msg, ok := customMessage(fe.Tag()); ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}
