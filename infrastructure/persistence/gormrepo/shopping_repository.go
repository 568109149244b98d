package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"shopping-api/domain/shared"
	"shopping-api/domain/shopping"
	"shopping-api/infrastructure/persistence"
	"shopping-api/infrastructure/persistence/gormrepo/po"
	"shopping-api/infrastructure/persistence/specification"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShoppingRepository GORM implementation of shopping.Repository
// Associations are not used so the aggregate boundary stays explicit
type ShoppingRepository struct {
	db         *gorm.DB
	translator *specification.GormTranslator
}

func NewShoppingRepository(db *gorm.DB) *ShoppingRepository {
	return &ShoppingRepository{
		db:         db,
		translator: specification.NewGormTranslator(),
	}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ShoppingRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// inTx runs fn in the context transaction, or in a new one when there is none.
func (r *ShoppingRepository) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return fn(tx)
	}
	return r.db.WithContext(ctx).Transaction(fn)
}

// Save inserts the shopping and its items atomically. Stored shoppings are
// never rewritten.
func (r *ShoppingRepository) Save(ctx context.Context, o *shopping.Order) (*shopping.Order, error) {
	if !o.IsNew() {
		return nil, shared.NewConflictError(shopping.Entity, fmt.Sprintf("shopping %d is already stored", o.ID()))
	}
	shoppingPO, itemPOs := po.FromShoppingDomain(o)

	err := r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(shoppingPO).Error; err != nil {
			return err
		}
		for i := range itemPOs {
			itemPOs[i].ShoppingID = shoppingPO.ID
		}
		if len(itemPOs) > 0 {
			if err := tx.Create(&itemPOs).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, shared.NewConflictError(shopping.Entity, "duplicate shopping")
		}
		return nil, fmt.Errorf("save shopping: %w", err)
	}
	return o.WithID(shoppingPO.ID), nil
}

func (r *ShoppingRepository) FindByID(ctx context.Context, id int64) (*shopping.Order, error) {
	db := r.getDB(ctx)
	var shoppingPO po.ShoppingPO

	if err := db.First(&shoppingPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shopping.NewNotFoundError(id)
		}
		return nil, err
	}

	orders, err := r.attachItems(db, []po.ShoppingPO{shoppingPO})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

func (r *ShoppingRepository) FindAll(ctx context.Context) ([]*shopping.Order, error) {
	db := r.getDB(ctx)
	var shoppingPOs []po.ShoppingPO
	if err := db.Order("id").Find(&shoppingPOs).Error; err != nil {
		return nil, err
	}
	return r.attachItems(db, shoppingPOs)
}

func (r *ShoppingRepository) FindPage(ctx context.Context, req shopping.PageRequest) (*shopping.Page, error) {
	db := r.getDB(ctx)

	var total int64
	if err := db.Model(&po.ShoppingPO{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var shoppingPOs []po.ShoppingPO
	if err := db.Clauses(specification.OrderBy(req.Sort)).
		Offset(req.Offset()).
		Limit(req.LinesPerPage).
		Find(&shoppingPOs).Error; err != nil {
		return nil, err
	}
	content, err := r.attachItems(db, shoppingPOs)
	if err != nil {
		return nil, err
	}

	return &shopping.Page{
		Content:       content,
		Number:        req.Page,
		Size:          req.LinesPerPage,
		TotalElements: total,
	}, nil
}

func (r *ShoppingRepository) FindAllByUser(ctx context.Context, userIdentifier string) ([]*shopping.Order, error) {
	return r.FindBySpecification(ctx,
		shopping.NewByUserIdentifierSpecification(userIdentifier),
		shopping.Sort{Field: shopping.SortByID, Direction: shopping.ASC})
}

func (r *ShoppingRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&po.ShoppingPO{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByID removes the shopping and its items.
func (r *ShoppingRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("shopping_id = ?", id).Delete(&po.ShoppingItemPO{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&po.ShoppingPO{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shopping.NewNotFoundError(id)
		}
		return nil
	})
}

func (r *ShoppingRepository) FindBySpecification(ctx context.Context, spec shopping.Specification, sort shopping.Sort) ([]*shopping.Order, error) {
	scope, err := r.translator.Translate(spec)
	if err != nil {
		return nil, err
	}

	db := r.getDB(ctx)
	var shoppingPOs []po.ShoppingPO
	if err := db.Scopes(scope).Clauses(specification.OrderBy(sort)).Find(&shoppingPOs).Error; err != nil {
		return nil, err
	}
	return r.attachItems(db, shoppingPOs)
}

type summaryRow struct {
	Count int64
	Total decimal.Decimal
}

// Summarize computes COUNT and SUM in the database.
func (r *ShoppingRepository) Summarize(ctx context.Context, spec shopping.Specification) (shopping.Summary, error) {
	scope, err := r.translator.Translate(spec)
	if err != nil {
		return shopping.Summary{}, err
	}

	var row summaryRow
	err = r.getDB(ctx).
		Model(&po.ShoppingPO{}).
		Scopes(scope).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Scan(&row).Error
	if err != nil {
		return shopping.Summary{}, err
	}
	return shopping.Summary{Count: row.Count, Total: row.Total.Round(shopping.PriceScale)}, nil
}

// attachItems loads the items of every shopping in one query and rebuilds
// the aggregates in the order given.
func (r *ShoppingRepository) attachItems(db *gorm.DB, shoppingPOs []po.ShoppingPO) ([]*shopping.Order, error) {
	if len(shoppingPOs) == 0 {
		return []*shopping.Order{}, nil
	}

	ids := lo.Map(shoppingPOs, func(s po.ShoppingPO, _ int) int64 { return s.ID })
	var itemPOs []po.ShoppingItemPO
	if err := db.Where("shopping_id IN ?", ids).
		Clauses(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "shopping_id"}},
			{Column: clause.Column{Name: "position"}},
		}}).
		Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	byShopping := lo.GroupBy(itemPOs, func(it po.ShoppingItemPO) int64 { return it.ShoppingID })
	return lo.Map(shoppingPOs, func(s po.ShoppingPO, _ int) *shopping.Order {
		return s.ToDomain(byShopping[s.ID])
	}), nil
}

// Compile-time interface implementation check
var _ shopping.Repository = (*ShoppingRepository)(nil)
