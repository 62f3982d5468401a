package services_test

import (
	"context"
	"testing"

	"shop/internal/services"
	"shop/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlist_Uniqueness(t *testing.T) {
	f := memFixture(t)
	ctx := context.Background()
	u := f.user(t, "alice", false)
	p := f.product(t, f.category(t, "Radios"), "Zenith", 10)
	svc := services.NewWishlistService(f.wishes, f.prods)

	_, err := svc.Add(ctx, u, services.WishlistInput{ProductID: p.ID})
	require.NoError(t, err)

	_, err = svc.Add(ctx, u, services.WishlistInput{ProductID: p.ID})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "non_field_errors")

	n, err := f.wishes.Count(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// another user may save the same product
	bob := f.user(t, "bob", false)
	_, err = svc.Add(ctx, bob, services.WishlistInput{ProductID: p.ID})
	require.NoError(t, err)
}

func TestWishlist_OwnerOnly(t *testing.T) {
	f := memFixture(t)
	ctx := context.Background()
	alice := f.user(t, "alice", false)
	staff := f.user(t, "root", true)
	cat := f.category(t, "Radios")
	p1 := f.product(t, cat, "Zenith", 10)
	p2 := f.product(t, cat, "Philco", 20)
	svc := services.NewWishlistService(f.wishes, f.prods)

	w, err := svc.Add(ctx, alice, services.WishlistInput{ProductID: p1.ID})
	require.NoError(t, err)
	_, err = svc.Add(ctx, alice, services.WishlistInput{ProductID: p2.ID})
	require.NoError(t, err)

	list, err := svc.List(ctx, staff, nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = svc.List(ctx, alice, int64p(p2.ID))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p2.ID, list[0].ProductID)

	assert.ErrorIs(t, svc.Remove(ctx, staff, w.ID), services.ErrNotFound)
	require.NoError(t, svc.Remove(ctx, alice, w.ID))
	_, err = svc.Get(ctx, alice, w.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
