package services

import (
	"context"
	"errors"
	"fmt"

	"shop/internal/domain"
	"shop/internal/repos"
	"shop/internal/validate"
)

var msgQuantityMax = fmt.Sprintf("Ensure this value is less than or equal to %d.", domain.MaxQuantity)

// CartInput.Quantity defaults to 1 on create and to the stored value on update.
type CartInput struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  *int  `json:"quantity" validate:"omitempty,max=10000"`
}

func CartInputOf(l domain.CartLine) CartInput {
	q := l.Quantity
	return CartInput{ProductID: l.ProductID, Quantity: &q}
}

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) check(ctx context.Context, in CartInput) error {
	verr := &validate.Error{}
	if err := validate.Struct(in); err != nil && !errors.As(err, &verr) {
		return err
	}
	if in.Quantity != nil && *in.Quantity < 1 {
		verr.Add("quantity", validate.MsgQuantity)
	}
	if in.ProductID != 0 {
		if _, err := s.Prods.Get(ctx, in.ProductID); err != nil {
			if !errors.Is(notFound(err), ErrNotFound) {
				return err
			}
			verr.Add("product_id", invalidPK(in.ProductID))
		}
	}
	return verr.Err()
}

// List returns the caller's lines. Staff see every line, narrowed to
// onlyUser when given.
func (s *CartService) List(ctx context.Context, actor *domain.User, onlyUser *int64) ([]domain.CartLine, error) {
	uid := scope(actor)
	if onlyUser != nil {
		if uid != 0 && *onlyUser != uid {
			return []domain.CartLine{}, nil
		}
		uid = *onlyUser
	}
	return s.Carts.List(ctx, uid)
}

// Get hides lines outside the caller's scope behind ErrNotFound.
func (s *CartService) Get(ctx context.Context, actor *domain.User, id int64) (domain.CartLine, error) {
	l, err := s.Carts.Get(ctx, id)
	if err != nil {
		return domain.CartLine{}, notFound(err)
	}
	if !actor.IsStaff && l.UserID != actor.ID {
		return domain.CartLine{}, ErrNotFound
	}
	return l, nil
}

// Add puts a product into the caller's cart. Adding a product that is already
// there raises the quantity of the existing line.
func (s *CartService) Add(ctx context.Context, actor *domain.User, in CartInput) (domain.CartLine, error) {
	if err := s.check(ctx, in); err != nil {
		return domain.CartLine{}, err
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	l, err := s.Carts.Add(ctx, actor.ID, in.ProductID, qty)
	if errors.Is(err, repos.ErrQuantityLimit) {
		return domain.CartLine{}, validate.Field("quantity", msgQuantityMax)
	}
	return l, err
}

func (s *CartService) Update(ctx context.Context, actor *domain.User, id int64, in CartInput) (domain.CartLine, error) {
	l, err := s.Get(ctx, actor, id)
	if err != nil {
		return domain.CartLine{}, err
	}
	if err := s.check(ctx, in); err != nil {
		return domain.CartLine{}, err
	}
	l.ProductID = in.ProductID
	if in.Quantity != nil {
		l.Quantity = *in.Quantity
	}
	err = s.Carts.Update(ctx, l)
	if errors.Is(err, repos.ErrDuplicate) {
		return domain.CartLine{}, validate.Field("non_field_errors", "The fields user_id, product_id must make a unique set.")
	}
	if err != nil {
		return domain.CartLine{}, notFound(err)
	}
	return l, nil
}

func (s *CartService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return notFound(s.Carts.Delete(ctx, id))
}
