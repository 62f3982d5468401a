package repos

import (
	"context"
	"database/sql"
	"errors"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

const cartCols = `id, user_id, product_id, quantity`

// List returns the lines of userID, or of everybody when userID is 0.
func (r *CartRepo) List(ctx context.Context, userID int64) ([]domain.CartLine, error) {
	out := []domain.CartLine{}
	var err error
	if userID == 0 {
		err = r.db.SelectContext(ctx, &out, `SELECT `+cartCols+` FROM cart_lines ORDER BY id`)
	} else {
		err = r.db.SelectContext(ctx, &out, `SELECT `+cartCols+` FROM cart_lines WHERE user_id = ? ORDER BY id`, userID)
	}
	return out, err
}

func (r *CartRepo) Get(ctx context.Context, id int64) (domain.CartLine, error) {
	var l domain.CartLine
	err := r.db.GetContext(ctx, &l, `SELECT `+cartCols+` FROM cart_lines WHERE id = ?`, id)
	return l, err
}

// Add inserts a line, or adds qty to the existing line for the same product.
// A sum above domain.MaxQuantity leaves the line untouched and yields
// ErrQuantityLimit.
func (r *CartRepo) Add(ctx context.Context, userID, productID int64, qty int) (domain.CartLine, error) {
	var l domain.CartLine
	err := r.db.GetContext(ctx, &l, `
		INSERT INTO cart_lines(user_id, product_id, quantity) VALUES(?, ?, ?)
		ON CONFLICT(user_id, product_id) DO UPDATE SET quantity = cart_lines.quantity + excluded.quantity
		WHERE cart_lines.quantity + excluded.quantity <= ?
		RETURNING `+cartCols, userID, productID, qty, domain.MaxQuantity)
	if errors.Is(err, sql.ErrNoRows) || (qty > domain.MaxQuantity && isCheckViolation(err)) {
		return domain.CartLine{}, ErrQuantityLimit
	}
	return l, err
}

// Update rewrites product and quantity. Moving onto a product already in the
// cart yields ErrDuplicate.
func (r *CartRepo) Update(ctx context.Context, l domain.CartLine) error {
	res, err := r.db.ExecContext(ctx, `UPDATE cart_lines SET product_id = ?, quantity = ? WHERE id = ?`, l.ProductID, l.Quantity, l.ID)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return affectedOne(res, err)
}

func (r *CartRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_lines WHERE id = ?`, id)
	return affectedOne(res, err)
}

func (r *CartRepo) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM cart_lines WHERE user_id = ?`, userID)
	return n, err
}

// PricedLine is a cart line joined with the live product price.
type PricedLine struct {
	CartLineID int64 `db:"id"`
	ProductID  int64 `db:"product_id"`
	Quantity   int   `db:"quantity"`
	Price      int64 `db:"price"`
}

// PricedLines reads userID's cart with current prices, in insertion order.
// q is normally the placement transaction.
func (r *CartRepo) PricedLines(ctx context.Context, q sqlx.QueryerContext, userID int64) ([]PricedLine, error) {
	var out []PricedLine
	err := sqlx.SelectContext(ctx, q, &out, `
		SELECT cl.id, cl.product_id, cl.quantity, p.price
		FROM cart_lines cl JOIN products p ON p.id = cl.product_id
		WHERE cl.user_id = ?
		ORDER BY cl.id
	`, userID)
	return out, err
}

// DeleteLines removes the given lines of userID and reports how many went.
func (r *CartRepo) DeleteLines(ctx context.Context, q sqlx.ExtContext, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In(`DELETE FROM cart_lines WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return 0, err
	}
	res, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
