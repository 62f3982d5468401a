package repos

import (
	"context"
	"database/sql"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.SelectContext(ctx, &out, `SELECT id, name, description FROM categories ORDER BY id`)
	return out, err
}

func (r *CategoryRepo) Get(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.GetContext(ctx, &c, `SELECT id, name, description FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM categories WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (r *CategoryRepo) Create(ctx context.Context, name string, description *string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories(name, description) VALUES(?, ?)`, name, description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CategoryRepo) Update(ctx context.Context, c domain.Category) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ?, description = ? WHERE id = ?`, c.Name, c.Description, c.ID)
	return affectedOne(res, err)
}

// Delete removes the category; its products go with it.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return affectedOne(res, err)
}

// affectedOne maps "no row touched" to sql.ErrNoRows.
func affectedOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
