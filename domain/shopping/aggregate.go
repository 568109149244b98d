/*
Package shopping is the order (shopping) subdomain.

An Order records one committed purchase. It references a user and products
owned by other services through their business keys only. Item prices are
snapshots taken when the order is created, so later catalog changes never
touch history.

Orders are immutable: there is no update path. The store assigns the id on
insert and the only other lifecycle step is deletion.
*/
package shopping

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places money is rendered with.
const MoneyScale = 2

// PriceScale is the finest precision a price snapshot keeps. Prices are
// stored exactly, never rounded, so totals stay exact sums.
const PriceScale = 4

// Order aggregate root
type Order struct {
	id             int64
	userIdentifier string
	total          decimal.Decimal
	date           time.Time
	items          []Item
}

// Item is a priced snapshot of one product at purchase time.
type Item struct {
	productIdentifier string
	price             decimal.Decimal
}

// NewItem validates and snapshots a product price as is.
func NewItem(productIdentifier string, price decimal.Decimal) (Item, error) {
	if strings.TrimSpace(productIdentifier) == "" {
		return Item{}, NewValidationError("productIdentifier", "product identifier is required")
	}
	if price.IsNegative() {
		return Item{}, NewValidationError("price", "price of "+productIdentifier+" must not be negative")
	}
	if !FitsPriceScale(price) {
		return Item{}, NewValidationError("price", "price of "+productIdentifier+" has more than 4 decimal places")
	}
	return Item{productIdentifier: productIdentifier, price: price}, nil
}

// FitsPriceScale reports whether d has no digits beyond PriceScale.
func FitsPriceScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(PriceScale))
}

func (i Item) ProductIdentifier() string { return i.productIdentifier }
func (i Item) Price() decimal.Decimal { return i.price }

// NewOrder is the only way to create an order. total is derived from items
// and date is truncated to whole seconds.
func NewOrder(userIdentifier string, items []Item, now time.Time) (*Order, error) {
	if strings.TrimSpace(userIdentifier) == "" {
		return nil, NewValidationError("userIdentifier", "user identifier is required")
	}
	if len(items) == 0 {
		return nil, NewValidationError("items", "shopping must have at least one item")
	}

	snapshot := make([]Item, len(items))
	copy(snapshot, items)

	return &Order{
		userIdentifier: userIdentifier,
		total:          SumPrices(snapshot),
		date:           now.Truncate(time.Second),
		items:          snapshot,
	}, nil
}

// SumPrices adds item prices with exact decimal arithmetic.
func SumPrices(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.price)
	}
	return total
}

// ReconstructionDTO is for repositories rebuilding a stored order.
// It bypasses NewOrder and does not recompute total.
type ReconstructionDTO struct {
	ID             int64
	UserIdentifier string
	Total          decimal.Decimal
	Date           time.Time
	Items          []ItemReconstructionDTO
}

type ItemReconstructionDTO struct {
	ProductIdentifier string
	Price             decimal.Decimal
}

// RebuildFromDTO restores an order read back from storage.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	items := make([]Item, len(dto.Items))
	for i, it := range dto.Items {
		items[i] = Item{productIdentifier: it.ProductIdentifier, price: it.Price}
	}
	return &Order{
		id:             dto.ID,
		userIdentifier: dto.UserIdentifier,
		total:          dto.Total,
		date:           dto.Date,
		items:          items,
	}
}

// WithID returns a copy of a freshly created order carrying the id the
// store assigned.
func (o *Order) WithID(id int64) *Order {
	cp := *o
	cp.id = id
	cp.items = o.Items()
	return &cp
}

func (o *Order) ID() int64 { return o.id }
func (o *Order) UserIdentifier() string { return o.userIdentifier }
func (o *Order) Total() decimal.Decimal { return o.total }
func (o *Order) Date() time.Time { return o.date }
func (o *Order) IsNew() bool { return o.id == 0 }

// Items returns a copy; callers cannot alter the aggregate through it.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}
