package shopping

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"shopping-api/domain/shared"
)

// ByUserIdentifierSpecification matches orders placed by one user.
type ByUserIdentifierSpecification struct {
	UserIdentifier string
}

func (spec ByUserIdentifierSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.UserIdentifier() == spec.UserIdentifier
}

// CreatedFromSpecification matches orders dated at or after From.
type CreatedFromSpecification struct {
	From time.Time
}

func (spec CreatedFromSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return !o.Date().Before(spec.From)
}

// CreatedUntilSpecification matches orders dated at or before Until.
type CreatedUntilSpecification struct {
	Until time.Time
}

func (spec CreatedUntilSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return !o.Date().After(spec.Until)
}

// MaxTotalSpecification matches orders whose total does not exceed Max.
type MaxTotalSpecification struct {
	Max decimal.Decimal
}

func (spec MaxTotalSpecification) IsSatisfiedBy(_ context.Context, o *Order) bool {
	return o.Total().LessThanOrEqual(spec.Max)
}

func NewByUserIdentifierSpecification(userIdentifier string) Specification {
	return ByUserIdentifierSpecification{UserIdentifier: userIdentifier}
}

// NewCalendarRangeSpecification covers whole calendar days: from 00:00:00 of
// start to 23:59:59 of end, both inclusive, in loc.
func NewCalendarRangeSpecification(start, end time.Time, loc *time.Location) shared.AndSpecification[*Order] {
	return shared.And[*Order](
		CreatedFromSpecification{From: StartOfDay(start, loc)},
		CreatedUntilSpecification{Until: EndOfDay(end, loc)},
	)
}

// StartOfDay is 00:00:00 of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// EndOfDay is 23:59:59 of t's calendar day in loc.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
}
