package services

import (
	"context"
	"errors"

	"shop/internal/domain"
	"shop/internal/repos"
	"shop/internal/validate"
)

type WishlistInput struct {
	ProductID int64 `json:"product_id" validate:"required"`
}

type WishlistService struct {
	Repo  *repos.WishlistRepo
	Prods *repos.ProductRepo
}

func NewWishlistService(r *repos.WishlistRepo, prods *repos.ProductRepo) *WishlistService {
	return &WishlistService{Repo: r, Prods: prods}
}

// Add saves a product for the caller. Saving the same product twice is a
// validation error.
func (s *WishlistService) Add(ctx context.Context, actor *domain.User, in WishlistInput) (domain.Wishlist, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Wishlist{}, err
	}
	if _, err := s.Prods.Get(ctx, in.ProductID); err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return domain.Wishlist{}, missingPK("product_id", in.ProductID)
		}
		return domain.Wishlist{}, err
	}
	w, err := s.Repo.Add(ctx, actor.ID, in.ProductID)
	if errors.Is(err, repos.ErrDuplicate) {
		return domain.Wishlist{}, validate.Field("non_field_errors", "The fields user_id, product_id must make a unique set.")
	}
	return w, err
}

// List returns only the caller's entries, staff included.
func (s *WishlistService) List(ctx context.Context, actor *domain.User, productID *int64) ([]domain.Wishlist, error) {
	return s.Repo.List(ctx, actor.ID, productID)
}

func (s *WishlistService) Get(ctx context.Context, actor *domain.User, id int64) (domain.Wishlist, error) {
	w, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Wishlist{}, notFound(err)
	}
	if w.UserID != actor.ID {
		return domain.Wishlist{}, ErrNotFound
	}
	return w, nil
}

func (s *WishlistService) Remove(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return notFound(s.Repo.Delete(ctx, id))
}
