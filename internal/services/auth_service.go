package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shop/internal/domain"
	"shop/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SessionStore persists login sessions. Get returns repos.ErrNoSession for
// unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

type AuthService struct {
	Users    *repos.UserRepo
	Sessions SessionStore
	TTL      time.Duration
}

func NewAuthService(users *repos.UserRepo, sessions SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Sessions: sessions, TTL: ttl}
}

// Login checks the credentials and opens a new session for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, *domain.User, error) {
	u, err := s.Users.ByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, nil, ErrBadCreds
	}
	if err != nil {
		return domain.Session{}, nil, fmt.Errorf("load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return domain.Session{}, nil, ErrBadCreds
	}
	now := time.Now().UTC()
	sess := domain.Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.TTL),
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return domain.Session{}, nil, fmt.Errorf("save session: %w", err)
	}
	return sess, u, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Sessions.Delete(ctx, sid)
}

// Current resolves a session id to its session and user. An unknown, expired
// or orphaned session yields ErrUnauthenticated.
func (s *AuthService) Current(ctx context.Context, sid string) (*domain.Session, *domain.User, error) {
	if sid == "" {
		return nil, nil, ErrUnauthenticated
	}
	sess, err := s.Sessions.Get(ctx, sid)
	if errors.Is(err, repos.ErrNoSession) {
		return nil, nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, nil, err
	}
	u, err := s.Users.ByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			_ = s.Sessions.Delete(ctx, sid)
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}
	return &sess, u, nil
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}
