package remote

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"shopping-api/domain/product"
	"shopping-api/domain/shopping"
)

type categoryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// productDTO is the catalog's product body. Price is decoded from its JSON
// text, so no float rounding is introduced.
type productDTO struct {
	ProductIdentifier string              `json:"productIdentifier"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	Price             decimal.NullDecimal `json:"price"`
	Category          *categoryDTO        `json:"category"`
}

// CatalogClient resolves products with GET {base}/products/{identifier}.
type CatalogClient struct {
	c *client
}

func NewCatalogClient(cfg Config, opts ...Option) *CatalogClient {
	return &CatalogClient{c: newClient("catalog", cfg, opts...)}
}

// Resolve returns the tagged result of one lookup. A body without a price, or
// with one finer than shopping.PriceScale, counts as a server error.
func (cc *CatalogClient) Resolve(ctx context.Context, productIdentifier string) Result[*product.Product] {
	res := get[productDTO](ctx, cc.c, "products", productIdentifier)
	out := Result[*product.Product]{Outcome: res.Outcome, StatusCode: res.StatusCode, Err: res.Err}
	if res.Outcome != Found {
		return out
	}
	if !res.Value.Price.Valid {
		out.Outcome = ServerError
		out.Err = fmt.Errorf("catalog response for %s has no price", productIdentifier)
		return out
	}

	if !shopping.FitsPriceScale(res.Value.Price.Decimal) {
		out.Outcome = ServerError
		out.Err = fmt.Errorf("catalog price %s of %s exceeds %d decimal places",
			res.Value.Price.Decimal, productIdentifier, shopping.PriceScale)
		return out
	}

	dto := product.ReconstructionDTO{
		ProductIdentifier: res.Value.ProductIdentifier,
		Name:              res.Value.Name,
		Description:       res.Value.Description,
		Price:             res.Value.Price.Decimal,
	}
	if dto.ProductIdentifier == "" {
		dto.ProductIdentifier = productIdentifier
	}
	if res.Value.Category != nil {
		dto.Category = product.Category{ID: res.Value.Category.ID, Name: res.Value.Category.Name}
	}
	out.Value = product.RebuildFromDTO(dto)
	return out
}

// FindProduct implements shopping.ProductLookup.
func (cc *CatalogClient) FindProduct(ctx context.Context, productIdentifier string) (*product.Product, error) {
	return cc.Resolve(ctx, productIdentifier).Get("product", productIdentifier)
}

var _ shopping.ProductLookup = (*CatalogClient)(nil)
