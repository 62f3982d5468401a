package handlers

import (
	"shop/internal/config"
	"shop/internal/repos"
	"shop/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthSvc *services.AuthService

	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	WishlistHandler *WishlistHandler
	CommentHandler  *CommentHandler
	ReplyHandler    *ReplyHandler
}

// NewDeps builds repos, services and handlers over db. sessions is the
// configured session backend.
func NewDeps(db *sqlx.DB, cfg config.Config, sessions services.SessionStore) *Deps {
	userRepo := repos.NewUserRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	wishRepo := repos.NewWishlistRepo(db)
	commentRepo := repos.NewCommentRepo(db)
	replyRepo := repos.NewReplyRepo(db)

	authSvc := services.NewAuthService(userRepo, sessions, cfg.Session.TTL)
	userSvc := services.NewUserService(userRepo)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(db, cartRepo, orderRepo, prodRepo)
	wishSvc := services.NewWishlistService(wishRepo, prodRepo)
	commentSvc := services.NewCommentService(commentRepo, replyRepo, prodRepo)

	return &Deps{
		AuthSvc:         authSvc,
		AuthHandler:     &AuthHandler{Auth: authSvc, Cookie: cfg.Session.Cookie, Secure: cfg.Session.Secure},
		UserHandler:     &UserHandler{Users: userSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		OrderHandler:    &OrderHandler{Order: orderSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		CommentHandler:  &CommentHandler{Comments: commentSvc},
		ReplyHandler:    &ReplyHandler{Comments: commentSvc},
	}
}
