package repos

import (
	"context"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const (
	orderCols     = `id, user_id, total_price, created_at`
	orderLineCols = `id, order_id, product_id, quantity, price`
)

// Insert writes the order header. q is the placement transaction.
func (r *OrderRepo) Insert(ctx context.Context, q sqlx.ExtContext, o domain.Order) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO orders(user_id, total_price, created_at) VALUES(?, ?, ?)
	`, o.UserID, o.TotalPrice, o.CreatedAt.UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertLine writes one line item with its price snapshot.
func (r *OrderRepo) InsertLine(ctx context.Context, q sqlx.ExtContext, l domain.OrderLine) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO order_lines(order_id, product_id, quantity, price) VALUES(?, ?, ?, ?)
	`, l.OrderID, l.ProductID, l.Quantity, l.Price)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// List returns orders newest first, for userID or for everybody when userID is 0.
// Lines are not loaded.
func (r *OrderRepo) List(ctx context.Context, userID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	var err error
	if userID == 0 {
		err = r.db.SelectContext(ctx, &out, `SELECT `+orderCols+` FROM orders ORDER BY created_at DESC, id DESC`)
	} else {
		err = r.db.SelectContext(ctx, &out, `
			SELECT `+orderCols+` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC
		`, userID)
	}
	return out, err
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.GetContext(ctx, &o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}

// Lines returns the line items of the given orders keyed by order id, each
// slice in insertion order.
func (r *OrderRepo) Lines(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderLine, error) {
	out := map[int64][]domain.OrderLine{}
	if len(orderIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT `+orderLineCols+` FROM order_lines WHERE order_id IN (?) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, err
	}
	var rows []domain.OrderLine
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, l := range rows {
		out[l.OrderID] = append(out[l.OrderID], l)
	}
	return out, nil
}

func (r *OrderRepo) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID)
	return n, err
}
