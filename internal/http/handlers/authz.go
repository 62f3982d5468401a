package handlers

import (
	"errors"

	"shop/internal/domain"
	applog "shop/internal/log"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

const (
	localUser    = "user"
	localSession = "session"
)

// Authenticate attaches the session and user named by the session cookie to
// the request. Requests without a valid session pass through anonymous.
func Authenticate(auth *services.AuthService, cookie string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cookie)
		if sid == "" {
			return c.Next()
		}
		sess, u, err := auth.Current(c.UserContext(), sid)
		switch {
		case err == nil:
			c.Locals(localSession, sess)
			c.Locals(localUser, u)
			c.Locals(applog.UserIDKey, u.ID)
		case !errors.Is(err, services.ErrUnauthenticated):
			return err
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(localUser).(*domain.User)
	return u
}

func currentSession(c *fiber.Ctx) *domain.Session {
	s, _ := c.Locals(localSession).(*domain.Session)
	return s
}

// RequireUser rejects anonymous requests.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if currentUser(c) == nil {
			return services.ErrUnauthenticated
		}
		return c.Next()
	}
}

// RequireStaff rejects anonymous requests and users without the staff flag.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := currentUser(c)
		if u == nil {
			return services.ErrUnauthenticated
		}
		if !u.IsStaff {
			applog.Security(c, "access.denied.staff", nil)
			return services.ErrForbidden
		}
		return c.Next()
	}
}

// ReadOnlyOrUser lets safe methods through and requires a user for the rest.
func ReadOnlyOrUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}
		if currentUser(c) == nil {
			return services.ErrUnauthenticated
		}
		return c.Next()
	}
}
