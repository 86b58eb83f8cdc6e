package role

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrRoleNotFound is returned when no role matches the given id or name.
	ErrRoleNotFound = errors.New("role not found")

	// ErrRoleNameTaken is returned when another role already uses the (normalized) name.
	ErrRoleNameTaken = errors.New("role name already exists")

	// ErrRoleProtected is returned when deleting a system role or changing its name or system flag.
	ErrRoleProtected = errors.New("role is a protected system role")

	// ErrRoleInUse is returned when deleting a role that is still assigned to users.
	ErrRoleInUse = errors.New("role is still assigned to users")

	// ErrValidation matches every *ValidationError through errors.Is.
	ErrValidation = errors.New("role validation failed")
)

// FieldError describes one rejected field.
type FieldError struct {
	Field string
	Tag   string
	Value interface{}
}

// ValidationError lists every field rejected by role validation.
type ValidationError struct {
	Fields []FieldError
}

// Error implements error.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Tag))
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, ", ")
}

// Is makes errors.Is(err, ErrValidation) true for validation errors.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation //nolint:errorlint,err113
}

// Has reports whether field failed with the given tag.
func (e *ValidationError) Has(field, tag string) bool {
	for _, f := range e.Fields {
		if f.Field == field && f.Tag == tag {
			return true
		}
	}

	return false
}
