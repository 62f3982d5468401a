package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shop/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrNoSession is returned by the session stores for unknown or expired ids.
var ErrNoSession = errors.New("session not found")

// SessionRepo keeps sessions in the sessions table.
type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Save(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions(id, user_id, created_at, expires_at) VALUES(?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, expires_at = excluded.expires_at
	`, s.ID, s.UserID, s.CreatedAt.UTC(), s.ExpiresAt.UTC())
	return err
}

func (r *SessionRepo) Get(ctx context.Context, id string) (domain.Session, error) {
	var s domain.Session
	err := r.db.GetContext(ctx, &s, `SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		return domain.Session{}, err
	}
	if s.Expired(time.Now()) {
		_ = r.Delete(ctx, id)
		return domain.Session{}, ErrNoSession
	}
	return s, nil
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// DeleteExpired purges sessions past their expiry and reports how many went.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
