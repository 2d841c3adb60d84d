package domain

import "context"

type Product struct {
	ID          string  `gorm:"primaryKey;size:80" json:"id"`
	Name        string  `gorm:"size:180;not null" json:"name"`
	Price       float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Category    string  `gorm:"size:100;index" json:"category"`
	Image       string  `gorm:"size:255" json:"image"`
	Description string  `gorm:"type:text" json:"description"`
	InStock     bool    `gorm:"default:true" json:"inStock"`
	Position    int     `gorm:"default:0" json:"-"`
}

type ProductFilter struct {
	Category string
}

// ProductRepo is the shop catalogue. List returns products in display order.
type ProductRepo interface {
	List(ctx context.Context, f ProductFilter) ([]Product, error)
	FindByID(ctx context.Context, id string) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
}
