/*
Package shared holds the building blocks every subdomain uses: sentinel
errors, the stack-carrying DomainError, specifications and the unit of work
port.

Domain errors never carry HTTP concepts. The API layer maps the sentinels
to status codes.
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

var (
	// ErrNotFound resource not found
	ErrNotFound = errors.New("not found")

	// ErrConflict resource conflict (unique constraint and the like)
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput argument validation failed
	ErrInvalidInput = errors.New("invalid input")
)

// DomainError carries business context plus the stack of the point where it
// was created. It unwraps to one of the sentinels above.
type DomainError struct {
	Err     error
	Entity  string
	Message string
	Field   string

	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured frames lazily, only when something logs them.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// CaptureStack records the current call stack.
// skip is usually 3: runtime.Callers, CaptureStack, the constructor.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders at most 10 non-runtime frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// NewNotFoundError builds a not-found error for entity identified by key.
func NewNotFoundError(entity string, key any) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s not found: %v", entity, key),
		stack:   CaptureStack(3),
	}
}

func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// EntityOf returns the entity name recorded on the first DomainError in the
// chain, or "" if there is none.
func EntityOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Entity
	}
	var ent interface{ EntityName() string }
	if errors.As(err, &ent) {
		return ent.EntityName()
	}
	return ""
}

// Stacker is implemented by errors that can report where they were created.
type Stacker interface {
	Stack() []string
}
