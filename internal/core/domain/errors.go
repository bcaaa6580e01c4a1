package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a field-level rejection of product input
// before it reaches the storage layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
