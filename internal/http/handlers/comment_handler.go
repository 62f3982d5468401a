package handlers

import (
	applog "shop/internal/log"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	Comments *services.CommentService
}

// GET /api/comments[?product_id=]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	pid, err := queryInt(c, "product_id")
	if err != nil {
		return err
	}
	out, err := h.Comments.ListComments(c.UserContext(), pid)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CommentHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	cm, err := h.Comments.GetComment(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(cm)
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var in services.CommentInput
	if err := bind(c, &in); err != nil {
		return err
	}
	cm, err := h.Comments.CreateComment(c.UserContext(), currentUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(cm)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error { return h.save(c, false) }
func (h *CommentHandler) Patch(c *fiber.Ctx) error  { return h.save(c, true) }

func (h *CommentHandler) save(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.CommentInput
	if partial {
		cur, err := h.Comments.GetComment(c.UserContext(), id)
		if err != nil {
			return err
		}
		in = services.CommentInputOf(cur)
	}
	if err := bind(c, &in); err != nil {
		return err
	}
	cm, err := h.Comments.UpdateComment(c.UserContext(), currentUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(cm)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Comments.DeleteComment(c.UserContext(), currentUser(c), id); err != nil {
		return err
	}
	applog.Audit(c, "comment.delete", map[string]any{"comment_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

type ReplyHandler struct {
	Comments *services.CommentService
}

// GET /api/replies[?comment_id=]
func (h *ReplyHandler) List(c *fiber.Ctx) error {
	cid, err := queryInt(c, "comment_id")
	if err != nil {
		return err
	}
	out, err := h.Comments.ListReplies(c.UserContext(), cid)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *ReplyHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	r, err := h.Comments.GetReply(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *ReplyHandler) Create(c *fiber.Ctx) error {
	var in services.ReplyInput
	if err := bind(c, &in); err != nil {
		return err
	}
	r, err := h.Comments.CreateReply(c.UserContext(), currentUser(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *ReplyHandler) Update(c *fiber.Ctx) error { return h.save(c, false) }
func (h *ReplyHandler) Patch(c *fiber.Ctx) error  { return h.save(c, true) }

func (h *ReplyHandler) save(c *fiber.Ctx, partial bool) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in services.ReplyInput
	if partial {
		cur, err := h.Comments.GetReply(c.UserContext(), id)
		if err != nil {
			return err
		}
		in = services.ReplyInputOf(cur)
	}
	if err := bind(c, &in); err != nil {
		return err
	}
	r, err := h.Comments.UpdateReply(c.UserContext(), currentUser(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *ReplyHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.Comments.DeleteReply(c.UserContext(), currentUser(c), id); err != nil {
		return err
	}
	applog.Audit(c, "reply.delete", map[string]any{"reply_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
