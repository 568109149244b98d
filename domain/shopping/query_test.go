package shopping

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping-api/domain/shared"
)

func stored(id int64, user, total string, date time.Time) *Order {
	return RebuildFromDTO(ReconstructionDTO{
		ID:             id,
		UserIdentifier: user,
		Total:          decimal.RequireFromString(total),
		Date:           date,
		Items:          []ItemReconstructionDTO{{ProductIdentifier: "p", Price: decimal.RequireFromString(total)}},
	})
}

func TestCalendarRangeBoundaries(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 5, 20, 0, 0, 0, 0, loc)
	spec := NewCalendarRangeSpecification(day, day, loc)
	ctx := context.Background()

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"start of day", time.Date(2024, 5, 20, 0, 0, 0, 0, loc), true},
		{"last second of day", time.Date(2024, 5, 20, 23, 59, 59, 0, loc), true},
		{"midnight next day", time.Date(2024, 5, 21, 0, 0, 0, 0, loc), false},
		{"previous day", time.Date(2024, 5, 19, 23, 59, 59, 0, loc), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spec.IsSatisfiedBy(ctx, stored(1, "u", "1", tt.date)))
		})
	}
}

func TestSpecificationComposition(t *testing.T) {
	ctx := context.Background()
	o := stored(1, "u-1", "150.00", time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC))

	spec := shared.And[*Order](CreatedFromSpecification{From: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)})
	assert.True(t, spec.IsSatisfiedBy(ctx, o))

	assert.True(t, spec.With(MaxTotalSpecification{Max: decimal.RequireFromString("150.00")}).IsSatisfiedBy(ctx, o))
	assert.False(t, spec.With(MaxTotalSpecification{Max: decimal.RequireFromString("149.99")}).IsSatisfiedBy(ctx, o))
	assert.Len(t, spec.Specs, 1, "With must not mutate the receiver")

	assert.False(t, shared.Not(NewByUserIdentifierSpecification("u-1")).IsSatisfiedBy(ctx, o))
	assert.True(t, shared.And[*Order]().IsSatisfiedBy(ctx, o))
}

func TestNewPageRequest(t *testing.T) {
	intp := func(v int) *int { return &v }

	tests := []struct {
		name      string
		page      *int
		lines     *int
		direction string
		orderBy   string
		want      PageRequest
		wantError string
	}{
		{
			name: "defaults",
			want: PageRequest{Page: 0, LinesPerPage: 12, Sort: Sort{Field: SortByTotal, Direction: ASC}},
		},
		{
			name:      "explicit values",
			page:      intp(2),
			lines:     intp(5),
			direction: "desc",
			orderBy:   "date",
			want:      PageRequest{Page: 2, LinesPerPage: 5, Sort: Sort{Field: SortByDate, Direction: DESC}},
		},
		{name: "negative page", page: intp(-1), wantError: "page must not be negative"},
		{name: "zero lines", lines: intp(0), wantError: "linesPerPage must be between 1 and 100"},
		{name: "bad direction", direction: "up", wantError: "direction must be ASC or DESC"},
		{name: "bad column", orderBy: "password", wantError: "orderBy must be one of id, total, date, userIdentifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPageRequest(tt.page, tt.lines, tt.direction, tt.orderBy)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				assert.True(t, errors.Is(err, shared.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, 10, PageRequest{Page: 2, LinesPerPage: 5}.Offset())
}

func TestSortLess(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orders := []*Order{
		stored(3, "b", "10.00", base.Add(time.Hour)),
		stored(1, "a", "30.00", base),
		stored(2, "c", "10.00", base.Add(2*time.Hour)),
	}
	ids := func(s Sort) []int64 {
		cp := append([]*Order(nil), orders...)
		sort.SliceStable(cp, func(i, j int) bool { return s.Less(cp[i], cp[j]) })
		out := make([]int64, len(cp))
		for i, o := range cp {
			out[i] = o.ID()
		}
		return out
	}

	assert.Equal(t, []int64{2, 3, 1}, ids(Sort{Field: SortByTotal, Direction: ASC}))
	assert.Equal(t, []int64{1, 2, 3}, ids(Sort{Field: SortByTotal, Direction: DESC}))
	assert.Equal(t, []int64{2, 3, 1}, ids(Sort{Field: SortByDate, Direction: DESC}))
	assert.Equal(t, []int64{3, 2, 1}, ids(Sort{Field: SortByID, Direction: DESC}))
	assert.Equal(t, []int64{1, 3, 2}, ids(Sort{Field: SortByUserIdentifier, Direction: ASC}))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, (&Page{Size: 12}).TotalPages())
	assert.Equal(t, 1, (&Page{Size: 12, TotalElements: 12}).TotalPages())
	assert.Equal(t, 2, (&Page{Size: 12, TotalElements: 13}).TotalPages())
}

func TestNewReport(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    [3]string
	}{
		{"empty window is exact zero", Summary{}, [3]string{"0", "0.00", "0.00"}},
		{"three orders", Summary{Count: 3, Total: decimal.RequireFromString("600.00")}, [3]string{"3", "600.00", "200.00"}},
		{"mean rounds half even", Summary{Count: 8, Total: decimal.RequireFromString("0.20")}, [3]string{"8", "0.20", "0.02"}},
		{"mean of thirds", Summary{Count: 3, Total: decimal.RequireFromString("100.00")}, [3]string{"3", "100.00", "33.33"}},
		{"mean rounds the true quotient once", Summary{Count: 10001, Total: decimal.RequireFromString("10151.01")}, [3]string{"10001", "10151.01", "1.01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReport(tt.summary)
			got := [3]string{decimal.NewFromInt(r.Count).String(), r.Total.StringFixed(2), r.Mean.StringFixed(2)}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewReportKeepsExactTotal(t *testing.T) {
	r := NewReport(Summary{Count: 2, Total: decimal.RequireFromString("20.010")})
	assert.True(t, r.Total.Equal(decimal.RequireFromString("20.01")))
	assert.Equal(t, "10.01", r.Mean.StringFixed(MoneyScale))

	r = NewReport(Summary{Count: 2, Total: decimal.RequireFromString("0.0150")})
	assert.Equal(t, "0.0150", r.Total.String())
	assert.Equal(t, "0.01", r.Mean.StringFixed(MoneyScale))
}
