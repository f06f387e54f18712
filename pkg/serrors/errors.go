package serrors

import "fmt"

// BaseError is a structured error carrying a stable machine-readable code.
// LocalizationKey is optional and used by presentation layers to render a
// translated message; the Message field is the English fallback.
type BaseError struct {
	Code            string
	Message         string
	LocalizationKey string
}

func NewError(code, message, localizationKey string) *BaseError {
	return &BaseError{
		Code:            code,
		Message:         message,
		LocalizationKey: localizationKey,
	}
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ValidationErrors maps a field name to the error describing why it was
// rejected.
type ValidationErrors map[string]*BaseError

func NewFieldRequiredError(field, localizationKey string) *BaseError {
	return &BaseError{
		Code:            "FIELD_REQUIRED",
		Message:         fmt.Sprintf("field %q is required", field),
		LocalizationKey: localizationKey,
	}
}

func NewInvalidFieldError(field, reason, localizationKey string) *BaseError {
	return &BaseError{
		Code:            "FIELD_INVALID",
		Message:         fmt.Sprintf("field %q is invalid: %s", field, reason),
		LocalizationKey: localizationKey,
	}
}
