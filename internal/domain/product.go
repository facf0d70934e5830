package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// Product field constraints.
const (
	ProductNameMaxLen = 100
	ProductSKUMaxLen  = 50
)

// Common product validation errors.
var (
	ErrProductNameEmpty        = errors.New("product name cannot be empty")
	ErrProductNameTooLong      = errors.New("product name must be at most 100 characters long")
	ErrProductSKUEmpty         = errors.New("product sku cannot be empty")
	ErrProductSKUTooLong       = errors.New("product sku must be at most 50 characters long")
	ErrProductPriceNotPositive = errors.New("product price must be strictly positive")
)

// Product represents an item in the catalog. The SKU is globally unique.
type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       float64    `json:"price"`
	InStock     bool       `json:"in_stock"`
	SKU         string     `json:"sku"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// NewProduct creates a Product ready for insertion. The ID is assigned by
// the store; UpdatedAt stays nil until the first update.
func NewProduct(name string, description *string, price float64, inStock bool, sku string) (*Product, error) {
	product := &Product{
		Name:        name,
		Description: description,
		Price:       price,
		InStock:     inStock,
		SKU:         sku,
		CreatedAt:   time.Now().UTC(),
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks the product's fields against the entity constraints.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrProductNameEmpty
	}
	if utf8.RuneCountInString(p.Name) > ProductNameMaxLen {
		return ErrProductNameTooLong
	}
	if p.Price <= 0 {
		return ErrProductPriceNotPositive
	}
	if p.SKU == "" {
		return ErrProductSKUEmpty
	}
	if utf8.RuneCountInString(p.SKU) > ProductSKUMaxLen {
		return ErrProductSKUTooLong
	}
	return nil
}

// ProductUpdate describes a partial update of a Product. Nil fields are left
// untouched; set fields replace the stored values.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	InStock     *bool
	SKU         *string
}

// IsZero reports whether the update carries no changes.
func (p ProductUpdate) IsZero() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil &&
		p.InStock == nil && p.SKU == nil
}

// Apply merges the supplied fields onto the product and stamps UpdatedAt.
func (p ProductUpdate) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.InStock != nil {
		product.InStock = *p.InStock
	}
	if p.SKU != nil {
		product.SKU = *p.SKU
	}
	now := time.Now().UTC()
	product.UpdatedAt = &now
}

// Validate checks the supplied fields only. Price must be strictly positive
// whenever it is supplied, same as at creation.
func (p ProductUpdate) Validate() error {
	if p.Name != nil {
		if *p.Name == "" {
			return ErrProductNameEmpty
		}
		if utf8.RuneCountInString(*p.Name) > ProductNameMaxLen {
			return ErrProductNameTooLong
		}
	}
	if p.Price != nil && *p.Price <= 0 {
		return ErrProductPriceNotPositive
	}
	if p.SKU != nil {
		if *p.SKU == "" {
			return ErrProductSKUEmpty
		}
		if utf8.RuneCountInString(*p.SKU) > ProductSKUMaxLen {
			return ErrProductSKUTooLong
		}
	}
	return nil
}
