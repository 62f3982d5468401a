package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"shop/internal/domain"
	"shop/internal/repos"
	"shop/internal/validate"

	"github.com/jmoiron/sqlx"
)

type OrderService struct {
	DB     *sqlx.DB
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewOrderService(db *sqlx.DB, carts *repos.CartRepo, orders *repos.OrderRepo, prods *repos.ProductRepo) *OrderService {
	return &OrderService{DB: db, Carts: carts, Orders: orders, Prods: prods}
}

// Place turns the user's cart into an order and empties the cart, all in one
// transaction. Lines are priced with the live product price, which is then
// frozen on the order line. Each cart line ends up in at most one order.
func (s *OrderService) Place(ctx context.Context, userID int64) (domain.Order, error) {
	var order domain.Order
	err := repos.InTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		lines, err := s.Carts.PricedLines(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var total int64
		for _, l := range lines {
			if l.Quantity < 1 {
				return validate.Field("quantity", validate.MsgQuantity)
			}
			sub, ok := mulPrice(l.Price, l.Quantity)
			if !ok || total > math.MaxInt64-sub {
				return validate.Field("non_field_errors", MsgTotalTooLarge)
			}
			total += sub
		}

		order = domain.Order{UserID: userID, TotalPrice: total, CreatedAt: time.Now().UTC()}
		if order.ID, err = s.Orders.Insert(ctx, tx, order); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		consumed := make([]int64, 0, len(lines))
		order.Lines = make([]domain.OrderLine, 0, len(lines))
		for _, l := range lines {
			ol := domain.OrderLine{OrderID: order.ID, ProductID: l.ProductID, Quantity: l.Quantity, Price: l.Price}
			if ol.ID, err = s.Orders.InsertLine(ctx, tx, ol); err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
			order.Lines = append(order.Lines, ol)
			consumed = append(consumed, l.CartLineID)
		}

		n, err := s.Carts.DeleteLines(ctx, tx, userID, consumed)
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		if n != int64(len(consumed)) {
			return ErrCartConflict
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.expand(ctx, []domain.Order{order}); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// mulPrice returns price*qty, or false when it does not fit an int64.
// Both operands are non-negative.
func mulPrice(price int64, qty int) (int64, bool) {
	if qty != 0 && price > math.MaxInt64/int64(qty) {
		return 0, false
	}
	return price * int64(qty), true
}

// List returns orders newest first with their lines. Staff see every order,
// narrowed to onlyUser when given.
func (s *OrderService) List(ctx context.Context, actor *domain.User, onlyUser *int64) ([]domain.Order, error) {
	uid := scope(actor)
	if onlyUser != nil {
		if uid != 0 && *onlyUser != uid {
			return []domain.Order{}, nil
		}
		uid = *onlyUser
	}
	orders, err := s.Orders.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if err := s.load(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, actor *domain.User, id int64) (domain.Order, error) {
	o, err := s.Orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, notFound(err)
	}
	if !actor.IsStaff && o.UserID != actor.ID {
		return domain.Order{}, ErrNotFound
	}
	orders := []domain.Order{o}
	if err := s.load(ctx, orders); err != nil {
		return domain.Order{}, err
	}
	return orders[0], nil
}

// load attaches lines and their products to orders in place.
func (s *OrderService) load(ctx context.Context, orders []domain.Order) error {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	lines, err := s.Orders.Lines(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		orders[i].Lines = lines[orders[i].ID]
		if orders[i].Lines == nil {
			orders[i].Lines = []domain.OrderLine{}
		}
	}
	return s.expand(ctx, orders)
}

func (s *OrderService) expand(ctx context.Context, orders []domain.Order) error {
	var ids []int64
	for _, o := range orders {
		for _, l := range o.Lines {
			ids = append(ids, l.ProductID)
		}
	}
	prods, err := s.Prods.ByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		for j := range orders[i].Lines {
			l := &orders[i].Lines[j]
			p, ok := prods[l.ProductID]
			if !ok {
				p = domain.Product{ID: l.ProductID}
			}
			l.Product = p
		}
	}
	return nil
}
