package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/barakadvert/storefront/internal/domain"
)

// AllCategories is the filter value that lists the whole catalogue.
const AllCategories = "all"

type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) List(ctx context.Context, category string) ([]domain.Product, error) {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == AllCategories {
		category = ""
	}
	return uc.Products.List(ctx, domain.ProductFilter{Category: category})
}

func (uc *ProductUC) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, errors.New("empty product id")
	}
	return uc.Products.FindByID(ctx, id)
}

// Categories lists catalogue categories in display order, prefixed by "all".
func (uc *ProductUC) Categories(ctx context.Context) ([]string, error) {
	cats, err := uc.Products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return append([]string{AllCategories}, cats...), nil
}

// ShopProducts is the catalogue the shop starts with.
func ShopProducts() []domain.Product {
	return []domain.Product{
		{ID: "tshirt-classic", Name: "Classic T-Shirt", Price: 25, Category: "apparel", Image: "/classic-tshirt.png", Description: "High-quality cotton t-shirt perfect for branding", InStock: true},
		{ID: "tshirt-premium", Name: "Premium T-Shirt", Price: 35, Category: "apparel", Image: "/premium-tshirt.png", Description: "Premium blend t-shirt with superior comfort", InStock: true},
		{ID: "mug-ceramic", Name: "Ceramic Mug", Price: 12, Category: "drinkware", Image: "/ceramic-mug.png", Description: "Classic ceramic mug for hot beverages", InStock: true},
		{ID: "mug-travel", Name: "Travel Mug", Price: 18, Category: "drinkware", Image: "/stainless-steel-travel-mug.png", Description: "Insulated travel mug keeps drinks hot or cold", InStock: true},
		{ID: "hoodie-classic", Name: "Classic Hoodie", Price: 45, Category: "apparel", Image: "/cozy-hoodie.png", Description: "Comfortable hoodie for any season", InStock: true},
		{ID: "cap-baseball", Name: "Baseball Cap", Price: 20, Category: "accessories", Image: "/baseball-cap.png", Description: "Classic baseball cap with adjustable strap", InStock: true},
		{ID: "bottle-water", Name: "Water Bottle", Price: 22, Category: "drinkware", Image: "/reusable-water-bottle.png", Description: "Eco-friendly water bottle with custom branding", InStock: true},
		{ID: "bag-tote", Name: "Tote Bag", Price: 28, Category: "accessories", Image: "/simple-canvas-tote.png", Description: "Spacious tote bag perfect for shopping or events", InStock: true},
	}
}
