package handlers

import (
	applog "shop/internal/log"
	"shop/internal/repos"
	"shop/internal/services"
	"shop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/products?price_gt=&price_lt=&category=&ordering=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	verr := &validate.Error{}
	param := func(name string) *int64 {
		v, err := queryInt(c, name)
		if err != nil {
			verr.Add(name, validate.MsgNumber)
		}
		return v
	}
	f := repos.ProductFilter{
		PriceGT:    param("price_gt"),
		PriceLT:    param("price_lt"),
		CategoryID: param("category"),
		OrderBy:    c.Query("ordering", "id"),
	}
	if err := verr.Err(); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"query": string(c.Request().URI().QueryString())})
		return err
	}

	products, err := h.Catalog.ListProducts(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error { return h.save(c, false) }
func (h *ProductHandler) Patch(c *fiber.Ctx) error  { return h.save(c, true) }

func (h *ProductHandler) save(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.ProductInput
	if partial {
		cur, err := h.Catalog.GetProduct(c.UserContext(), id)
		if err != nil {
			return err
		}
		in = services.ProductInputOf(cur)
	}
	if err := bind(c, &in); err != nil {
		return err
	}
	p, err := h.Catalog.UpdateProduct(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id, "price": p.Price})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
