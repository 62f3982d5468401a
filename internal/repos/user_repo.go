package repos

import (
	"context"
	"time"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, username, password_hash, is_staff, date_joined`

// Create returns ErrDuplicate when the username is taken.
func (r *UserRepo) Create(ctx context.Context, username, hash string, staff bool) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users(username, password_hash, is_staff, date_joined)
		VALUES(?, ?, ?, ?)
	`, username, hash, staff, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) ByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	if err := r.DB.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE username = ?`, username); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.DB.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user when onlyID is 0, otherwise just that user.
func (r *UserRepo) List(ctx context.Context, onlyID int64) ([]domain.User, error) {
	out := []domain.User{}
	var err error
	if onlyID == 0 {
		err = r.DB.SelectContext(ctx, &out, `SELECT `+userCols+` FROM users ORDER BY id`)
	} else {
		err = r.DB.SelectContext(ctx, &out, `SELECT `+userCols+` FROM users WHERE id = ?`, onlyID)
	}
	return out, err
}

// Update returns ErrDuplicate when the new username is taken.
func (r *UserRepo) Update(ctx context.Context, u domain.User) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET username = ?, password_hash = ? WHERE id = ?`, u.Username, u.Hash, u.ID)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicate
	}
	return affectedOne(res, err)
}

// Delete removes the user. Sessions, cart lines, orders, wishlist entries,
// comments and replies cascade through their foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	return affectedOne(res, err)
}
