package handlers

import (
	applog "shop/internal/log"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Order *services.OrderService
}

// POST /api/make-order
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	u := currentUser(c)
	o, err := h.Order.Place(c.UserContext(), u.ID)
	if err != nil {
		applog.Info(c, "order.place.fail", map[string]any{"reason": err.Error()})
		return err
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id":    o.ID,
		"total_price": o.TotalPrice,
		"lines":       len(o.Lines),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// GET /api/orders[?user=]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	only, err := queryInt(c, "user")
	if err != nil {
		return err
	}
	orders, err := h.Order.List(c.UserContext(), currentUser(c), only)
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	o, err := h.Order.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(o)
}
