package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"shopping-api/domain/shared"
)

type entityErr struct{ entity string }

func (e entityErr) Error() string      { return e.entity + " not found: x" }
func (e entityErr) Unwrap() error      { return shared.ErrNotFound }
func (e entityErr) EntityName() string { return e.entity }

func TestFromDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
		wantMsg  string
	}{
		{"nil stays nil", nil, "", ""},
		{"shopping not found", entityErr{"shopping"}, CodeShoppingNotFound, "shopping not found: x"},
		{"user not found wrapped", fmt.Errorf("create: %w", entityErr{"user"}), CodeUserNotFound, "create: user not found: x"},
		{"product not found", entityErr{"product"}, CodeProductNotFound, "product not found: x"},
		{"generic not found", shared.NewNotFoundError("thing", 1), CodeNotFound, "thing not found: 1"},
		{"validation", shared.NewValidationError("shopping", "startDate", "startDate is required"), CodeValidation, "startDate is required"},
		{"conflict", shared.NewConflictError("shopping", "duplicate"), CodeConflict, "duplicate"},
		{"unknown", stderrors.New("connection refused"), CodeInternal, "internal server error"},
		{"already app error", Validation("bad"), CodeValidation, "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromDomainError(tt.err)
			if tt.err == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Internal(cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, Is(err, CodeInternal))
	assert.False(t, Is(cause, CodeInternal))
	assert.Equal(t, "INTERNAL_SERVER_ERROR: internal server error (disk full)", err.Error())
}
