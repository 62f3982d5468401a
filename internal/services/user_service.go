package services

import (
	"context"
	"errors"

	"shop/internal/domain"
	"shop/internal/repos"
	"shop/internal/validate"
)

type UserInput struct {
	Username string `json:"username" validate:"notblank,max=150"`
	Password string `json:"password" validate:"notblank"`
}

// UserUpdate leaves the password alone when Password is nil.
type UserUpdate struct {
	Username string  `json:"username" validate:"notblank,max=150"`
	Password *string `json:"password" validate:"omitempty,notblank"`
}

type UserService struct {
	Users *repos.UserRepo
}

func NewUserService(users *repos.UserRepo) *UserService { return &UserService{Users: users} }

// Register creates a regular account.
func (s *UserService) Register(ctx context.Context, in UserInput) (*domain.User, error) {
	return s.create(ctx, in, false)
}

// CreateStaff creates an account with elevated privilege.
func (s *UserService) CreateStaff(ctx context.Context, in UserInput) (*domain.User, error) {
	return s.create(ctx, in, true)
}

func (s *UserService) create(ctx context.Context, in UserInput, staff bool) (*domain.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	id, err := s.Users.Create(ctx, in.Username, hash, staff)
	if errors.Is(err, repos.ErrDuplicate) {
		return nil, validate.Field("username", "A user with that username already exists.")
	}
	if err != nil {
		return nil, err
	}
	return s.Users.ByID(ctx, id)
}

// List returns every user to staff and only the caller otherwise.
func (s *UserService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	return s.Users.List(ctx, scope(actor))
}

func (s *UserService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.User, error) {
	if !actor.IsStaff && actor.ID != id {
		return nil, ErrNotFound
	}
	u, err := s.Users.ByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Update changes the caller's own account.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, in UserUpdate) (*domain.User, error) {
	u, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if u.ID != actor.ID {
		return nil, ErrForbidden
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	u.Username = in.Username
	if in.Password != nil {
		if u.Hash, err = HashPassword(*in.Password); err != nil {
			return nil, err
		}
	}
	err = s.Users.Update(ctx, *u)
	if errors.Is(err, repos.ErrDuplicate) {
		return nil, validate.Field("username", "A user with that username already exists.")
	}
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Delete removes the account and everything it owns. Owner or staff only.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return notFound(s.Users.Delete(ctx, id))
}
