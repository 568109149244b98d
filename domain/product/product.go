// Package product is the catalog's product record as seen by this service.
package product

import "github.com/shopspring/decimal"

// Category of a product.
type Category struct {
	ID   int64
	Name string
}

// Product carries the live catalog price used to price new shopping items.
type Product struct {
	identifier  string
	name        string
	description string
	price       decimal.Decimal
	category    Category
}

// ReconstructionDTO carries the decoded remote record into the domain.
type ReconstructionDTO struct {
	ProductIdentifier string
	Name              string
	Description       string
	Price             decimal.Decimal
	Category          Category
}

func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		identifier:  dto.ProductIdentifier,
		name:        dto.Name,
		description: dto.Description,
		price:       dto.Price,
		category:    dto.Category,
	}
}

func (p *Product) Identifier() string { return p.identifier }
func (p *Product) Name() string { return p.name }
func (p *Product) Description() string { return p.description }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Category() Category { return p.category }
