package domain

import "time"

type User struct {
	ID         int64     `db:"id" json:"id"`
	Username   string    `db:"username" json:"username"`
	Hash       string    `db:"password_hash" json:"-"`
	IsStaff    bool      `db:"is_staff" json:"-"`
	DateJoined time.Time `db:"date_joined" json:"-"`
}

// Session is the server-side login state carried through a request.
type Session struct {
	ID        string    `db:"id"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
