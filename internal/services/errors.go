package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"tokobaju/internal/repositories"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound and ErrInvalidID are re-exported from the repositories package so
	// callers of the services do not need to import it.
	ErrNotFound  = repositories.ErrNotFound
	ErrInvalidID = repositories.ErrInvalidID

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// ValidationError describes which input fields were rejected and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// newValidationError converts the result of validator.Struct. Errors that are
// not validator.ValidationErrors are returned unchanged.
func newValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &ValidationError{Fields: fields}
}
