package handlers

import (
	"errors"
	"time"

	applog "shop/internal/log"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth   *services.AuthService
	Cookie string
	Secure bool
}

type credentials struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, value string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.Cookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.Secure,
	})
}

// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := bind(c, &in); err != nil {
		return err
	}
	sess, u, err := h.Auth.Login(c.UserContext(), in.Username, in.Password)
	if errors.Is(err, services.ErrBadCreds) {
		c.Status(fiber.StatusBadRequest)
		applog.Security(c, "auth.login.fail", map[string]any{"username": in.Username})
		return c.JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err != nil {
		return err
	}
	// a fresh id on every login; the previous session, if any, is dropped
	if old := currentSession(c); old != nil {
		_ = h.Auth.Logout(c.UserContext(), old.ID)
	}
	h.setCookie(c, sess.ID, sess.ExpiresAt)
	c.Locals(applog.UserIDKey, u.ID)
	applog.Audit(c, "auth.login.success", map[string]any{"username": u.Username})
	return c.JSON(fiber.Map{"message": "Login successful"})
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sess := currentSession(c); sess != nil {
		if err := h.Auth.Logout(c.UserContext(), sess.ID); err != nil {
			return err
		}
	}
	h.setCookie(c, "", time.Now().Add(-1*time.Hour))
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// GET /auth/check
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return c.JSON(fiber.Map{"isAuthenticated": false})
	}
	return c.JSON(fiber.Map{"isAuthenticated": true, "username": u.Username, "id": u.ID})
}
