package handlers

import (
	applog "shop/internal/log"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /api/cart-user-products[?user=]
func (h *CartHandler) List(c *fiber.Ctx) error {
	only, err := queryInt(c, "user")
	if err != nil {
		return err
	}
	lines, err := h.Cart.List(c.UserContext(), currentUser(c), only)
	if err != nil {
		return err
	}
	return c.JSON(lines)
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	l, err := h.Cart.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(l)
}

// POST /api/cart-user-products
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in services.CartInput
	if err := bind(c, &in); err != nil {
		return err
	}
	l, err := h.Cart.Add(c.UserContext(), currentUser(c), in)
	if err != nil {
		return err
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": l.ProductID, "quantity": l.Quantity})
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *CartHandler) Update(c *fiber.Ctx) error { return h.save(c, false) }
func (h *CartHandler) Patch(c *fiber.Ctx) error  { return h.save(c, true) }

func (h *CartHandler) save(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.CartInput
	if partial {
		cur, err := h.Cart.Get(c.UserContext(), currentUser(c), id)
		if err != nil {
			return err
		}
		in = services.CartInputOf(cur)
	}
	if err := bind(c, &in); err != nil {
		return err
	}
	l, err := h.Cart.Update(c.UserContext(), currentUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(l)
}

func (h *CartHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Cart.Delete(c.UserContext(), currentUser(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
