package handlers

import (
	"shop/internal/config"
	applog "shop/internal/log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp assembles the middleware chain and mounts every route.
func NewApp(d *Deps, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "shop",
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(requestid.New())
	app.Use(applog.Middleware())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(Authenticate(d.AuthSvc, cfg.Session.Cookie))

	d.Routes(app, cfg)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": msgNotFound})
	})
	return app
}

func (d *Deps) Routes(app *fiber.App, cfg config.Config) {
	auth := app.Group("/auth")
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        cfg.Limits.LoginMax,
		Expiration: cfg.Limits.LoginWindow,
		LimitReached: func(c *fiber.Ctx) error {
			c.Status(fiber.StatusTooManyRequests)
			applog.Security(c, "rate.login.hit", nil)
			return c.JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	auth.Post("/logout", RequireUser(), d.AuthHandler.Logout)
	auth.Get("/check", d.AuthHandler.Check)

	api := app.Group("/api")

	api.Post("/users", d.UserHandler.Create)
	users := api.Group("/users", RequireUser())
	users.Get("/", d.UserHandler.List)
	users.Get("/:id", d.UserHandler.Get)
	users.Put("/:id", d.UserHandler.Update)
	users.Patch("/:id", d.UserHandler.Patch)
	users.Delete("/:id", d.UserHandler.Delete)

	api.Get("/categories", d.CategoryHandler.List)
	api.Get("/categories/:id", d.CategoryHandler.Get)
	cats := api.Group("/categories", RequireStaff())
	cats.Post("/", d.CategoryHandler.Create)
	cats.Put("/:id", d.CategoryHandler.Update)
	cats.Patch("/:id", d.CategoryHandler.Patch)
	cats.Delete("/:id", d.CategoryHandler.Delete)

	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:id", d.ProductHandler.Get)
	prods := api.Group("/products", RequireStaff())
	prods.Post("/", d.ProductHandler.Create)
	prods.Put("/:id", d.ProductHandler.Update)
	prods.Patch("/:id", d.ProductHandler.Patch)
	prods.Delete("/:id", d.ProductHandler.Delete)

	cart := api.Group("/cart-user-products", RequireUser())
	cart.Get("/", d.CartHandler.List)
	cart.Post("/", d.CartHandler.Add)
	cart.Get("/:id", d.CartHandler.Get)
	cart.Put("/:id", d.CartHandler.Update)
	cart.Patch("/:id", d.CartHandler.Patch)
	cart.Delete("/:id", d.CartHandler.Delete)

	api.Post("/make-order", RequireUser(), d.OrderHandler.Place)
	orders := api.Group("/orders", RequireUser())
	orders.Get("/", d.OrderHandler.List)
	orders.Get("/:id", d.OrderHandler.Get)

	wish := api.Group("/wishlist", RequireUser())
	wish.Get("/", d.WishlistHandler.List)
	wish.Post("/", d.WishlistHandler.Save)
	wish.Get("/:id", d.WishlistHandler.Get)
	wish.Delete("/:id", d.WishlistHandler.Unsave)

	comments := api.Group("/comments", ReadOnlyOrUser())
	comments.Get("/", d.CommentHandler.List)
	comments.Post("/", d.CommentHandler.Create)
	comments.Get("/:id", d.CommentHandler.Get)
	comments.Put("/:id", d.CommentHandler.Update)
	comments.Patch("/:id", d.CommentHandler.Patch)
	comments.Delete("/:id", d.CommentHandler.Delete)

	replies := api.Group("/replies", ReadOnlyOrUser())
	replies.Get("/", d.ReplyHandler.List)
	replies.Post("/", d.ReplyHandler.Create)
	replies.Get("/:id", d.ReplyHandler.Get)
	replies.Put("/:id", d.ReplyHandler.Update)
	replies.Patch("/:id", d.ReplyHandler.Patch)
	replies.Delete("/:id", d.ReplyHandler.Delete)
}
