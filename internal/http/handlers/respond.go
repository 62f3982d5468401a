package handlers

import (
	"errors"
	"strconv"

	applog "shop/internal/log"
	"shop/internal/services"
	"shop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const (
	msgUnauthenticated = "Authentication credentials were not provided."
	msgForbidden       = "You do not have permission to perform this action."
	msgNotFound        = "Not found."
)

// ErrorHandler turns errors returned by handlers into JSON responses.
// Unexpected errors are logged and reported without detail.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *validate.Error
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.Is(err, services.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cart is empty"})
	case errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": msgUnauthenticated})
	case errors.Is(err, services.ErrForbidden):
		c.Status(fiber.StatusForbidden)
		applog.Security(c, "access.denied", nil)
		return c.JSON(fiber.Map{"detail": msgForbidden})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": msgNotFound})
	case errors.Is(err, services.ErrCartConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Cart changed while placing the order"})
	case errors.As(err, &ferr) && ferr.Code < fiber.StatusInternalServerError:
		msg := ferr.Message
		if ferr.Code == fiber.StatusNotFound {
			msg = msgNotFound
		}
		return c.Status(ferr.Code).JSON(fiber.Map{"detail": msg})
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return c.JSON(fiber.Map{"error": "Internal server error"})
}

// paramID reads the :id route parameter. Anything but a positive integer is not found.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, services.ErrNotFound
	}
	return id, nil
}

// queryInt reads an optional integer query parameter, naming it on failure.
func queryInt(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, validate.Field(name, validate.MsgNumber)
	}
	return &n, nil
}

// bind decodes the request body over v, so fields absent from the body keep
// the values v already holds.
func bind(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed request body.")
	}
	return nil
}
