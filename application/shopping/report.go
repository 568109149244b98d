package shopping

import (
	"context"
	"strings"
	"time"

	"shopping-api/domain/shared"
	"shopping-api/domain/shopping"

	"github.com/shopspring/decimal"
)

// ReportEngine answers the filtered listing and the date-range report.
// Dates are whole calendar days in the configured location.
type ReportEngine struct {
	repo shopping.Repository
	loc  *time.Location
}

func NewReportEngine(repo shopping.Repository, loc *time.Location) *ReportEngine {
	if loc == nil {
		loc = time.Local
	}
	return &ReportEngine{repo: repo, loc: loc}
}

// ListByFilters returns the shoppings dated from startDate on. endDate and
// maxValue add a clause only when present. Results are ordered by date.
func (e *ReportEngine) ListByFilters(ctx context.Context, q SearchQuery) ([]ShoppingResponse, error) {
	start, err := e.parseDate("startDate", q.StartDate, true)
	if err != nil {
		return nil, err
	}
	end, err := e.parseDate("endDate", q.EndDate, false)
	if err != nil {
		return nil, err
	}

	spec := shared.And[*shopping.Order](shopping.CreatedFromSpecification{From: shopping.StartOfDay(start, e.loc)})
	if !end.IsZero() {
		if end.Before(start) {
			return nil, shopping.NewValidationError("endDate", "endDate must not be before startDate")
		}
		spec = spec.With(shopping.CreatedUntilSpecification{Until: shopping.EndOfDay(end, e.loc)})
	}
	if v := strings.TrimSpace(q.MaxValue); v != "" {
		maxValue, err := decimal.NewFromString(v)
		if err != nil {
			return nil, shopping.NewValidationError("maxValue", "maxValue must be a decimal number")
		}
		spec = spec.With(shopping.MaxTotalSpecification{Max: maxValue})
	}

	orders, err := e.repo.FindBySpecification(ctx, spec, shopping.Sort{Field: shopping.SortByDate, Direction: shopping.ASC})
	if err != nil {
		return nil, err
	}
	return toShoppingResponses(orders, e.loc), nil
}

// ReportByDate counts, sums and averages the shoppings between the two
// calendar days, both inclusive. An empty window reports zeros.
func (e *ReportEngine) ReportByDate(ctx context.Context, q ReportQuery) (*ReportResponse, error) {
	start, err := e.parseDate("startDate", q.StartDate, true)
	if err != nil {
		return nil, err
	}
	end, err := e.parseDate("endDate", q.EndDate, true)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, shopping.NewValidationError("endDate", "endDate must not be before startDate")
	}

	summary, err := e.repo.Summarize(ctx, shopping.NewCalendarRangeSpecification(start, end, e.loc))
	if err != nil {
		return nil, err
	}
	return toReportResponse(shopping.NewReport(summary)), nil
}

// parseDate reads a dd/MM/yyyy day. An absent optional date is the zero time.
func (e *ReportEngine) parseDate(field, value string, required bool) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return time.Time{}, shopping.NewValidationError(field, field+" is required")
		}
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(QueryDateLayout, value, e.loc)
	if err != nil {
		return time.Time{}, shopping.NewValidationError(field, field+" must use the dd/MM/yyyy format")
	}
	return t, nil
}
