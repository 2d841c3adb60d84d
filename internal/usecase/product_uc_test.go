package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barakadvert/storefront/internal/adapters/repo/memory"
	"github.com/barakadvert/storefront/internal/domain"
)

func newUC() *ProductUC {
	return &ProductUC{Products: memory.NewProductRepo(ShopProducts())}
}

func TestList(t *testing.T) {
	uc := newUC()
	ctx := context.Background()

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 8)
	assert.Equal(t, "tshirt-classic", all[0].ID)

	same, err := uc.List(ctx, "all")
	require.NoError(t, err)
	assert.Equal(t, all, same)

	drink, err := uc.List(ctx, "Drinkware")
	require.NoError(t, err)
	require.Len(t, drink, 3)
	for _, p := range drink {
		assert.Equal(t, "drinkware", p.Category)
	}
}

func TestGet(t *testing.T) {
	uc := newUC()

	p, err := uc.Get(context.Background(), "mug-ceramic")
	require.NoError(t, err)
	assert.Equal(t, 12.0, p.Price)

	_, err = uc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Get(context.Background(), "")
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	cats, err := newUC().Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "apparel", "drinkware", "accessories"}, cats)
}
