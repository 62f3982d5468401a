package handlers

import (
	applog "shop/internal/log"
	"shop/internal/services"
	"shop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Users *services.UserService
}

// POST /api/users
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in services.UserInput
	if err := bind(c, &in); err != nil {
		return err
	}
	u, err := h.Users.Register(c.UserContext(), in)
	if err != nil {
		return err
	}
	applog.Info(c, "user.create", map[string]any{"new_user_id": u.ID})
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	u, err := h.Users.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

// PUT /api/users/:id replaces username and password.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.UserUpdate
	if err := bind(c, &in); err != nil {
		return err
	}
	if in.Password == nil {
		verr := &validate.Error{}
		verr.Add("password", validate.MsgRequired)
		return validate.Merge(verr, validate.Struct(in))
	}
	return h.save(c, id, in)
}

// PATCH /api/users/:id changes whichever of username and password is given.
func (h *UserHandler) Patch(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	u, err := h.Users.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		return err
	}
	in := services.UserUpdate{Username: u.Username}
	if err := bind(c, &in); err != nil {
		return err
	}
	return h.save(c, id, in)
}

func (h *UserHandler) save(c *fiber.Ctx, id int64, in services.UserUpdate) error {
	u, err := h.Users.Update(c.UserContext(), currentUser(c), id, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "user.update", map[string]any{"target_user_id": id, "password_changed": in.Password != nil})
	return c.JSON(u)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Users.Delete(c.UserContext(), currentUser(c), id); err != nil {
		return err
	}
	applog.Audit(c, "user.delete", map[string]any{"target_user_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
