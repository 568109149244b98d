/*
Package shopping - 购物领域错误定义

构造函数在创建时捕获堆栈，错误通过 Unwrap 指向 shared 的哨兵错误，
上层使用 errors.Is(err, shared.ErrNotFound) 判断，不依赖错误文本。
*/
package shopping

import (
	"strconv"

	"shopping-api/domain/shared"
)

// Entity is the entity name recorded on shopping errors.
const Entity = "shopping"

// NewNotFoundError shopping with id does not exist
func NewNotFoundError(id int64) error {
	return &shoppingError{
		sentinel: shared.ErrNotFound,
		message:  "shopping not found: " + strconv.FormatInt(id, 10),
		stack:    shared.CaptureStack(3),
	}
}

// NewValidationError invalid field on a shopping or its query arguments
func NewValidationError(field, reason string) error {
	return &shoppingError{
		sentinel: shared.ErrInvalidInput,
		field:    field,
		message:  reason,
		stack:    shared.CaptureStack(3),
	}
}

type shoppingError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *shoppingError) Error() string { return e.message }
func (e *shoppingError) Unwrap() error { return e.sentinel }
func (e *shoppingError) EntityName() string { return Entity }

// Field names the offending argument of a validation error.
func (e *shoppingError) Field() string { return e.field }

func (e *shoppingError) Stack() []string {
	return shared.FormatStack(e.stack)
}
