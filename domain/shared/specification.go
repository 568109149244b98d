package shared

import (
	"context"
)

// Specification encapsulates a query rule over T.
// IsSatisfiedBy serves in-memory evaluation. SQL backends translate the
// concrete type instead of calling it.
type Specification[T any] interface {
	IsSatisfiedBy(ctx context.Context, entity T) bool
}

// AndSpecification is satisfied when every member is.
// An empty AndSpecification is satisfied by everything.
type AndSpecification[T any] struct {
	Specs []Specification[T]
}

func (spec AndSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	for _, s := range spec.Specs {
		if !s.IsSatisfiedBy(ctx, entity) {
			return false
		}
	}
	return true
}

// And combines specs, dropping nil members.
func And[T any](specs ...Specification[T]) AndSpecification[T] {
	out := make([]Specification[T], 0, len(specs))
	for _, s := range specs {
		if s != nil {
			out = append(out, s)
		}
	}
	return AndSpecification[T]{Specs: out}
}

// With returns a copy of spec extended with s. Used to append clauses
// conditionally while building a query.
func (spec AndSpecification[T]) With(s Specification[T]) AndSpecification[T] {
	specs := make([]Specification[T], len(spec.Specs), len(spec.Specs)+1)
	copy(specs, spec.Specs)
	return AndSpecification[T]{Specs: append(specs, s)}
}

// NotSpecification negates Spec.
type NotSpecification[T any] struct {
	Spec Specification[T]
}

func (spec NotSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return !spec.Spec.IsSatisfiedBy(ctx, entity)
}

func Not[T any](inner Specification[T]) Specification[T] {
	return NotSpecification[T]{Spec: inner}
}
