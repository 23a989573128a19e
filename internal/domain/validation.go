package domain

import "fmt"

// ValidationError marks request input the caller can correct. Handlers
// map it to a 400; any other error is treated as an internal failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
