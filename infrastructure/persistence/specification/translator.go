// Package specification turns domain specifications into GORM scopes.
package specification

import (
	"fmt"

	"shopping-api/domain/shared"
	"shopping-api/domain/shopping"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Scope is a composable GORM query modifier.
type Scope = func(*gorm.DB) *gorm.DB

// GormTranslator converts shopping specifications to bound WHERE clauses.
// Column names are fixed by the persistence objects, values are always
// passed as parameters. Dates are stored in UTC.
type GormTranslator struct{}

func NewGormTranslator() *GormTranslator {
	return &GormTranslator{}
}

// Translate returns a scope for spec. A nil spec matches every row.
func (t *GormTranslator) Translate(spec shopping.Specification) (Scope, error) {
	if spec == nil {
		return func(db *gorm.DB) *gorm.DB { return db }, nil
	}
	expr, err := t.expression(spec)
	if err != nil {
		return nil, err
	}
	return func(db *gorm.DB) *gorm.DB {
		if expr == nil {
			return db
		}
		return db.Where(expr)
	}, nil
}

// expression returns nil for a specification that matches everything.
func (t *GormTranslator) expression(spec shopping.Specification) (clause.Expression, error) {
	switch s := spec.(type) {
	case shared.AndSpecification[*shopping.Order]:
		exprs := make([]clause.Expression, 0, len(s.Specs))
		for _, inner := range s.Specs {
			e, err := t.expression(inner)
			if err != nil {
				return nil, err
			}
			if e != nil {
				exprs = append(exprs, e)
			}
		}
		if len(exprs) == 0 {
			return nil, nil
		}
		return clause.And(exprs...), nil

	case shared.NotSpecification[*shopping.Order]:
		e, err := t.expression(s.Spec)
		if err != nil {
			return nil, err
		}
		if e == nil {
			// NOT(true)
			return clause.Expr{SQL: "1 = 0"}, nil
		}
		return clause.Not(e), nil

	case shopping.ByUserIdentifierSpecification:
		return clause.Eq{Column: clause.Column{Name: "user_identifier"}, Value: s.UserIdentifier}, nil

	case shopping.CreatedFromSpecification:
		return clause.Gte{Column: clause.Column{Name: "date"}, Value: s.From.UTC()}, nil

	case shopping.CreatedUntilSpecification:
		return clause.Lte{Column: clause.Column{Name: "date"}, Value: s.Until.UTC()}, nil

	case shopping.MaxTotalSpecification:
		return clause.Lte{Column: clause.Column{Name: "total"}, Value: s.Max}, nil
	}

	return nil, fmt.Errorf("unsupported shopping specification %T", spec)
}

// OrderColumn maps a sort field to its column.
func OrderColumn(field shopping.SortField) string {
	switch field {
	case shopping.SortByID:
		return "id"
	case shopping.SortByDate:
		return "date"
	case shopping.SortByUserIdentifier:
		return "user_identifier"
	default:
		return "total"
	}
}

// OrderBy renders sort as ORDER BY columns, ties broken by id ascending.
func OrderBy(sort shopping.Sort) clause.OrderBy {
	desc := sort.Direction == shopping.DESC
	col := OrderColumn(sort.Field)
	columns := []clause.OrderByColumn{{Column: clause.Column{Name: col}, Desc: desc}}
	if col != "id" {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return clause.OrderBy{Columns: columns}
}
