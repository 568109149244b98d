package shopping

import (
	"strings"
)

// Direction of a sort.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// SortField names a sortable order attribute in its wire spelling.
type SortField string

const (
	SortByID             SortField = "id"
	SortByTotal          SortField = "total"
	SortByDate           SortField = "date"
	SortByUserIdentifier SortField = "userIdentifier"
)

// Paging defaults and limits.
const (
	DefaultPage         = 0
	DefaultLinesPerPage = 12
	MaxLinesPerPage     = 100
	DefaultDirection    = ASC
	DefaultOrderBy      = SortByTotal
)

// Sort orders a listing. Ties are broken by id ascending.
type Sort struct {
	Field     SortField
	Direction Direction
}

// Less reports whether a sorts before b.
func (s Sort) Less(a, b *Order) bool {
	var c int
	switch s.Field {
	case SortByTotal:
		c = a.Total().Cmp(b.Total())
	case SortByDate:
		c = a.Date().Compare(b.Date())
	case SortByUserIdentifier:
		c = strings.Compare(a.UserIdentifier(), b.UserIdentifier())
	}
	if c == 0 {
		c = compareInt64(a.ID(), b.ID())
		if s.Field != SortByID {
			return c < 0
		}
	}
	if s.Direction == DESC {
		return c > 0
	}
	return c < 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// PageRequest is a validated page query.
type PageRequest struct {
	Page         int
	LinesPerPage int
	Sort         Sort
}

// Offset of the first row of the page.
func (p PageRequest) Offset() int {
	return p.Page * p.LinesPerPage
}

// NewPageRequest applies defaults to nil arguments and validates the rest.
func NewPageRequest(page, linesPerPage *int, direction, orderBy string) (PageRequest, error) {
	req := PageRequest{
		Page:         DefaultPage,
		LinesPerPage: DefaultLinesPerPage,
		Sort:         Sort{Field: DefaultOrderBy, Direction: DefaultDirection},
	}

	if page != nil {
		if *page < 0 {
			return PageRequest{}, NewValidationError("page", "page must not be negative")
		}
		req.Page = *page
	}
	if linesPerPage != nil {
		if *linesPerPage < 1 || *linesPerPage > MaxLinesPerPage {
			return PageRequest{}, NewValidationError("linesPerPage", "linesPerPage must be between 1 and 100")
		}
		req.LinesPerPage = *linesPerPage
	}
	if direction != "" {
		switch d := Direction(strings.ToUpper(direction)); d {
		case ASC, DESC:
			req.Sort.Direction = d
		default:
			return PageRequest{}, NewValidationError("direction", "direction must be ASC or DESC")
		}
	}
	if orderBy != "" {
		switch f := SortField(orderBy); f {
		case SortByID, SortByTotal, SortByDate, SortByUserIdentifier:
			req.Sort.Field = f
		default:
			return PageRequest{}, NewValidationError("orderBy", "orderBy must be one of id, total, date, userIdentifier")
		}
	}
	return req, nil
}

// Page is one slice of a sorted listing.
type Page struct {
	Content       []*Order
	Number        int
	Size          int
	TotalElements int64
}

func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}
