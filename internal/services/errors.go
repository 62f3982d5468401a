package services

import (
	"database/sql"
	"errors"
	"fmt"

	"shop/internal/domain"
	"shop/internal/validate"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("authentication required")
	ErrBadCreds        = errors.New("invalid credentials")
	ErrEmptyCart       = errors.New("cart is empty")
	// ErrCartConflict means another placement consumed some of the cart lines first.
	ErrCartConflict = errors.New("cart changed while placing the order")
)

// MsgTotalTooLarge is reported when an order total would not fit an int64.
const MsgTotalTooLarge = "Order total is too large."

// notFound maps a missing row to ErrNotFound and passes anything else through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// scope is the user id a listing is restricted to; 0 means every user.
func scope(actor *domain.User) int64 {
	if actor.IsStaff {
		return 0
	}
	return actor.ID
}

func invalidPK(id int64) string {
	return fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, id)
}

func missingPK(field string, id int64) error {
	return validate.Field(field, invalidPK(id))
}
