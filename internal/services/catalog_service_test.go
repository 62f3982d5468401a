package services_test

import (
	"context"
	"testing"

	"shop/internal/repos"
	"shop/internal/services"
	"shop/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ProductValidation(t *testing.T) {
	f := memFixture(t)
	ctx := context.Background()
	svc := services.NewCatalogService(f.cats, f.prods)
	cat := f.category(t, "Radios")

	_, err := svc.CreateProduct(ctx, services.ProductInput{Name: "Zenith", Category: cat})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{validate.MsgRequired}, verr.Fields["price"])

	_, err = svc.CreateProduct(ctx, services.ProductInput{Name: "Zenith", Price: int64p(-1), Category: cat})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "price")

	_, err = svc.CreateProduct(ctx, services.ProductInput{Name: " ", Price: int64p(5), Category: 77})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Equal(t, []string{`Invalid pk "77" - object does not exist.`}, verr.Fields["category"])

	p, err := svc.CreateProduct(ctx, services.ProductInput{Name: "Zenith", Price: int64p(0), Category: cat})
	require.NoError(t, err)
	assert.Zero(t, p.Price)
}

func TestCatalog_FiltersAndOrdering(t *testing.T) {
	f := memFixture(t)
	ctx := context.Background()
	svc := services.NewCatalogService(f.cats, f.prods)
	consoles := f.category(t, "Consoles")
	radios := f.category(t, "Radios")
	f.product(t, consoles, "NES", 300)
	f.product(t, radios, "Zenith", 100)
	f.product(t, radios, "Philco", 200)

	names := func(fl repos.ProductFilter) []string {
		ps, err := svc.ListProducts(ctx, fl)
		require.NoError(t, err)
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Name
		}
		return out
	}

	assert.Equal(t, []string{"NES", "Zenith", "Philco"}, names(repos.ProductFilter{}))
	assert.Equal(t, []string{"Zenith", "Philco", "NES"}, names(repos.ProductFilter{OrderBy: "price"}))
	assert.Equal(t, []string{"NES", "Philco", "Zenith"}, names(repos.ProductFilter{OrderBy: "-price"}))
	assert.Equal(t, []string{"Philco"}, names(repos.ProductFilter{PriceGT: int64p(100), PriceLT: int64p(300)}))
	assert.Equal(t, []string{"Zenith", "Philco"}, names(repos.ProductFilter{CategoryID: &radios}))
	assert.Equal(t, []string{"NES", "Zenith", "Philco"}, names(repos.ProductFilter{OrderBy: "name; DROP TABLE products"}))
}

func TestCatalog_DeleteCategoryCascades(t *testing.T) {
	f := memFixture(t)
	ctx := context.Background()
	svc := services.NewCatalogService(f.cats, f.prods)
	cat := f.category(t, "Radios")
	f.product(t, cat, "Zenith", 100)

	require.NoError(t, svc.DeleteCategory(ctx, cat))
	assert.Equal(t, 0, f.count(t, "products"))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, cat), services.ErrNotFound)
}
