package po

import (
	"time"

	"shopping-api/domain/shopping"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ShoppingPO Shopping persistence object
// Note: Only used for database mapping, no GORM associations
type ShoppingPO struct {
	ID             int64           `gorm:"primaryKey;autoIncrement"`
	UserIdentifier string          `gorm:"size:64;index;not null"`
	Total          decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Date           time.Time       `gorm:"index;not null"`
}

func (ShoppingPO) TableName() string {
	return "shoppings"
}

// ShoppingItemPO one priced line, ordered by Position within its shopping
type ShoppingItemPO struct {
	ID                int64           `gorm:"primaryKey;autoIncrement"`
	ShoppingID        int64           `gorm:"index;not null"`
	Position          int             `gorm:"not null"`
	ProductIdentifier string          `gorm:"size:64;not null"`
	Price             decimal.Decimal `gorm:"type:decimal(19,4);not null"`
}

func (ShoppingItemPO) TableName() string {
	return "shopping_items"
}

// FromShoppingDomain Convert domain model to persistence objects.
// Item ShoppingIDs are filled in once the parent row has its id.
func FromShoppingDomain(o *shopping.Order) (*ShoppingPO, []ShoppingItemPO) {
	shoppingPO := &ShoppingPO{
		ID:             o.ID(),
		UserIdentifier: o.UserIdentifier(),
		Total:          o.Total(),
		Date:           o.Date().UTC(),
	}

	itemPOs := lo.Map(o.Items(), func(it shopping.Item, i int) ShoppingItemPO {
		return ShoppingItemPO{
			ShoppingID:        o.ID(),
			Position:          i,
			ProductIdentifier: it.ProductIdentifier(),
			Price:             it.Price(),
		}
	})

	return shoppingPO, itemPOs
}

// ToDomain Convert persistence objects to domain model
func (po *ShoppingPO) ToDomain(itemPOs []ShoppingItemPO) *shopping.Order {
	return shopping.RebuildFromDTO(shopping.ReconstructionDTO{
		ID:             po.ID,
		UserIdentifier: po.UserIdentifier,
		Total:          po.Total.Round(shopping.PriceScale),
		Date:           po.Date.UTC(),
		Items: lo.Map(itemPOs, func(it ShoppingItemPO, _ int) shopping.ItemReconstructionDTO {
			return shopping.ItemReconstructionDTO{
				ProductIdentifier: it.ProductIdentifier,
				Price:             it.Price.Round(shopping.PriceScale),
			}
		}),
	})
}
