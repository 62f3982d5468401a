package repos

import (
	"context"
	"time"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

const wishlistCols = `id, user_id, product_id, created_at`

// Add returns ErrDuplicate when the user already saved the product.
func (r *WishlistRepo) Add(ctx context.Context, userID, productID int64) (domain.Wishlist, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlists(user_id, product_id, created_at) VALUES(?, ?, ?)
	`, userID, productID, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Wishlist{}, ErrDuplicate
		}
		return domain.Wishlist{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Wishlist{}, err
	}
	return r.Get(ctx, id)
}

// List returns userID's entries, optionally only those for productID.
func (r *WishlistRepo) List(ctx context.Context, userID int64, productID *int64) ([]domain.Wishlist, error) {
	out := []domain.Wishlist{}
	query := `SELECT ` + wishlistCols + ` FROM wishlists WHERE user_id = ?`
	args := []any{userID}
	if productID != nil {
		query += ` AND product_id = ?`
		args = append(args, *productID)
	}
	err := r.db.SelectContext(ctx, &out, query+` ORDER BY id`, args...)
	return out, err
}

func (r *WishlistRepo) Get(ctx context.Context, id int64) (domain.Wishlist, error) {
	var w domain.Wishlist
	err := r.db.GetContext(ctx, &w, `SELECT `+wishlistCols+` FROM wishlists WHERE id = ?`, id)
	return w, err
}

func (r *WishlistRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wishlists WHERE id = ?`, id)
	return affectedOne(res, err)
}

func (r *WishlistRepo) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM wishlists WHERE user_id = ?`, userID)
	return n, err
}
