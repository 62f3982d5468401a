package repos

import (
	"context"
	"time"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CommentRepo struct{ db *sqlx.DB }

func NewCommentRepo(db *sqlx.DB) *CommentRepo { return &CommentRepo{db: db} }

const commentCols = `id, user_id, product_id, text, created_at`

// List returns comments newest first, optionally only those on productID.
func (r *CommentRepo) List(ctx context.Context, productID *int64) ([]domain.Comment, error) {
	out := []domain.Comment{}
	query := `SELECT ` + commentCols + ` FROM comments`
	args := []any{}
	if productID != nil {
		query += ` WHERE product_id = ?`
		args = append(args, *productID)
	}
	err := r.db.SelectContext(ctx, &out, query+` ORDER BY created_at DESC, id DESC`, args...)
	return out, err
}

func (r *CommentRepo) Get(ctx context.Context, id int64) (domain.Comment, error) {
	var c domain.Comment
	err := r.db.GetContext(ctx, &c, `SELECT `+commentCols+` FROM comments WHERE id = ?`, id)
	return c, err
}

func (r *CommentRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM comments WHERE id = ?`, id)
	return n > 0, err
}

func (r *CommentRepo) Create(ctx context.Context, userID, productID int64, text string) (domain.Comment, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO comments(user_id, product_id, text, created_at) VALUES(?, ?, ?, ?)
	`, userID, productID, text, time.Now().UTC())
	if err != nil {
		return domain.Comment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Comment{}, err
	}
	return r.Get(ctx, id)
}

func (r *CommentRepo) Update(ctx context.Context, c domain.Comment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET product_id = ?, text = ? WHERE id = ?`, c.ProductID, c.Text, c.ID)
	return affectedOne(res, err)
}

// Delete removes the comment; its replies go with it.
func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	return affectedOne(res, err)
}

type ReplyRepo struct{ db *sqlx.DB }

func NewReplyRepo(db *sqlx.DB) *ReplyRepo { return &ReplyRepo{db: db} }

const replyCols = `id, user_id, comment_id, text, created_at`

// List returns replies newest first, optionally only those under commentID.
func (r *ReplyRepo) List(ctx context.Context, commentID *int64) ([]domain.Reply, error) {
	out := []domain.Reply{}
	query := `SELECT ` + replyCols + ` FROM replies`
	args := []any{}
	if commentID != nil {
		query += ` WHERE comment_id = ?`
		args = append(args, *commentID)
	}
	err := r.db.SelectContext(ctx, &out, query+` ORDER BY created_at DESC, id DESC`, args...)
	return out, err
}

func (r *ReplyRepo) Get(ctx context.Context, id int64) (domain.Reply, error) {
	var rp domain.Reply
	err := r.db.GetContext(ctx, &rp, `SELECT `+replyCols+` FROM replies WHERE id = ?`, id)
	return rp, err
}

func (r *ReplyRepo) Create(ctx context.Context, userID, commentID int64, text string) (domain.Reply, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO replies(user_id, comment_id, text, created_at) VALUES(?, ?, ?, ?)
	`, userID, commentID, text, time.Now().UTC())
	if err != nil {
		return domain.Reply{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Reply{}, err
	}
	return r.Get(ctx, id)
}

func (r *ReplyRepo) Update(ctx context.Context, rp domain.Reply) error {
	res, err := r.db.ExecContext(ctx, `UPDATE replies SET comment_id = ?, text = ? WHERE id = ?`, rp.CommentID, rp.Text, rp.ID)
	return affectedOne(res, err)
}

func (r *ReplyRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM replies WHERE id = ?`, id)
	return affectedOne(res, err)
}
