package handlers

import (
	applog "shop/internal/log"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /api/wishlist[?product_id=]
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	pid, err := queryInt(c, "product_id")
	if err != nil {
		return err
	}
	items, err := h.Wish.List(c.UserContext(), currentUser(c), pid)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	w, err := h.Wish.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(w)
}

func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var in services.WishlistInput
	if err := bind(c, &in); err != nil {
		return err
	}
	w, err := h.Wish.Add(c.UserContext(), currentUser(c), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product_id": w.ProductID})
	return c.Status(fiber.StatusCreated).JSON(w)
}

func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Wish.Remove(c.UserContext(), currentUser(c), id); err != nil {
		return err
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"wishlist_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
