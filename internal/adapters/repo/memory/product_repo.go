// Package memory is the catalogue used when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/barakadvert/storefront/internal/domain"
)

type ProductRepo struct {
	mu       sync.RWMutex
	products []domain.Product
}

func NewProductRepo(seed []domain.Product) *ProductRepo {
	return &ProductRepo{products: append([]domain.Product(nil), seed...)}
}

func (r *ProductRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if f.Category == "" || p.Category == f.Category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepo) Categories(context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, p := range r.products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out, nil
}
