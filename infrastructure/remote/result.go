/*
Package remote adapts the identity and catalog HTTP services into typed
lookups.

Every call yields a tagged Result. The ports the application consumes
collapse every outcome other than Found into one not-found error, while
LookupError.Outcome keeps the real cause available to logs and metrics.
*/
package remote

import (
	"errors"
	"fmt"
	"net/http"

	"shopping-api/domain/shared"
)

// Outcome classifies a remote call.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	ServerError
	TransportError
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case ServerError:
		return "server_error"
	case TransportError:
		return "transport_error"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result of one lookup. Value is only meaningful when Outcome is Found.
type Result[T any] struct {
	Value      T
	Outcome    Outcome
	StatusCode int
	Err        error
}

// Get collapses the result into the not-found contract of the lookup ports.
func (r Result[T]) Get(entity, key string) (T, error) {
	if r.Outcome == Found {
		return r.Value, nil
	}
	var zero T
	return zero, &LookupError{
		entity:     entity,
		key:        key,
		outcome:    r.Outcome,
		statusCode: r.StatusCode,
		cause:      r.Err,
		stack:      shared.CaptureStack(3),
	}
}

// LookupError is what FindUser and FindProduct return on any failure.
// errors.Is(err, shared.ErrNotFound) holds for every outcome.
type LookupError struct {
	entity     string
	key        string
	outcome    Outcome
	statusCode int
	cause      error
	stack      []uintptr
}

func (e *LookupError) Error() string {
	return e.entity + " not found: " + e.key
}

func (e *LookupError) Unwrap() []error {
	if e.cause == nil {
		return []error{shared.ErrNotFound}
	}
	return []error{shared.ErrNotFound, e.cause}
}

func (e *LookupError) EntityName() string { return e.entity }

// Outcome tells a genuinely absent record apart from an unreachable service.
func (e *LookupError) Outcome() Outcome { return e.outcome }

// StatusCode of the remote response, 0 when none was received.
func (e *LookupError) StatusCode() int { return e.statusCode }

func (e *LookupError) Stack() []string {
	return shared.FormatStack(e.stack)
}

// OutcomeOf extracts the lookup outcome from err, Found for nil.
func OutcomeOf(err error) (Outcome, bool) {
	if err == nil {
		return Found, true
	}
	var le *LookupError
	if errors.As(err, &le) {
		return le.outcome, true
	}
	return 0, false
}

func classifyStatus(code int) Outcome {
	switch {
	case code >= 200 && code < 300:
		return Found
	case code == http.StatusNotFound:
		return NotFound
	default:
		return ServerError
	}
}
