package validation

import (
	"errors"
	"fmt"
)

// Поля, на которые ссылаются сообщения об ошибках
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldAddress  = "address"
	FieldComment  = "comment"
	FieldMessage  = "message"
	FieldProblem  = "problem"
	FieldRating   = "rating"
	FieldServices = "services"
	FieldDate     = "date"
	FieldTime     = "time"
	FieldProvider = "provider"
)

// FieldError ошибка валидации конкретного поля.
// Message показывается пользователю как есть
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func fieldError(field, format string, args ...interface{}) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsFieldError достаёт FieldError из цепочки ошибок
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
