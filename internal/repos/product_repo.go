package repos

import (
	"context"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, description, price, category_id, image`

// ProductFilter narrows List. Nil fields are not applied.
type ProductFilter struct {
	PriceGT    *int64
	PriceLT    *int64
	CategoryID *int64
	// OrderBy is one of id, price, -id, -price.
	OrderBy string
}

var productOrderings = map[string]string{
	"id":     "id ASC",
	"-id":    "id DESC",
	"price":  "price ASC, id ASC",
	"-price": "price DESC, id ASC",
}

func (r *ProductRepo) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	where := `1 = 1`
	args := []any{}
	if f.PriceGT != nil {
		where += ` AND price > ?`
		args = append(args, *f.PriceGT)
	}
	if f.PriceLT != nil {
		where += ` AND price < ?`
		args = append(args, *f.PriceLT)
	}
	if f.CategoryID != nil {
		where += ` AND category_id = ?`
		args = append(args, *f.CategoryID)
	}
	order, ok := productOrderings[f.OrderBy]
	if !ok {
		order = productOrderings["id"]
	}

	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY `+order, args...)
	return out, err
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// ByIDs returns the products keyed by id; missing ids are absent from the map.
func (r *ProductRepo) ByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	out := map[int64]domain.Product{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT `+productCols+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var rows []domain.Product
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products(name, description, price, category_id, image)
		VALUES(?, ?, ?, ?, ?)
	`, p.Name, p.Description, p.Price, p.CategoryID, p.Image)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, price = ?, category_id = ?, image = ?
		WHERE id = ?
	`, p.Name, p.Description, p.Price, p.CategoryID, p.Image, p.ID)
	return affectedOne(res, err)
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	return affectedOne(res, err)
}
