package handlers

import (
	applog "shop/internal/log"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	cat, err := h.Catalog.GetCategory(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(cat)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := bind(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error { return h.save(c, false) }
func (h *CategoryHandler) Patch(c *fiber.Ctx) error  { return h.save(c, true) }

func (h *CategoryHandler) save(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.CategoryInput
	if partial {
		cur, err := h.Catalog.GetCategory(c.UserContext(), id)
		if err != nil {
			return err
		}
		in = services.CategoryInput{Name: cur.Name, Description: cur.Description}
	}
	if err := bind(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.UpdateCategory(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": id})
	return c.JSON(cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
