package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"inStock"`
}

// ProductInput is a validated write. Nil optional fields are left untouched
// by an update.
type ProductInput struct {
	Name        string
	Description *string
	Price       float64
	Category    string
	InStock     *bool
}

func (in ProductInput) applyTo(p *Product) {
	p.Name = in.Name
	p.Price = in.Price
	p.Category = in.Category
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
}

type ListQuery struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

type Page struct {
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Limit int       `json:"limit"`
	Data  []Product `json:"data"`
}

// Store owns the product collection. Implementations return copies and are
// safe for concurrent use.
type Store interface {
	Ping(ctx context.Context) error
	List(ctx context.Context, q ListQuery) (Page, error)
	Get(ctx context.Context, id string) (Product, error)
	Create(ctx context.Context, in ProductInput) (Product, error)
	Update(ctx context.Context, id string, in ProductInput) (Product, error)
	Delete(ctx context.Context, id string) (Product, error)
	Stats(ctx context.Context) (map[string]int, error)
	Len() int
}
