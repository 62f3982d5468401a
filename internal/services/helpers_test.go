package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"shop/internal/domain"
	"shop/internal/repos"
	"shop/internal/services"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *sqlx.DB
	users    *repos.UserRepo
	cats     *repos.CategoryRepo
	prods    *repos.ProductRepo
	carts    *repos.CartRepo
	orders   *repos.OrderRepo
	wishes   *repos.WishlistRepo
	comments *repos.CommentRepo
	replies  *repos.ReplyRepo
}

func newFixture(t *testing.T, dsn string) *fixture {
	t.Helper()
	db, err := repos.OpenDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &fixture{
		db:       db,
		users:    repos.NewUserRepo(db),
		cats:     repos.NewCategoryRepo(db),
		prods:    repos.NewProductRepo(db),
		carts:    repos.NewCartRepo(db),
		orders:   repos.NewOrderRepo(db),
		wishes:   repos.NewWishlistRepo(db),
		comments: repos.NewCommentRepo(db),
		replies:  repos.NewReplyRepo(db),
	}
}

func memFixture(t *testing.T) *fixture { return newFixture(t, ":memory:") }

// fileFixture backs the fixture with a real file so several connections can
// race on it.
func fileFixture(t *testing.T) *fixture {
	return newFixture(t, filepath.Join(t.TempDir(), "shop.db"))
}

func (f *fixture) user(t *testing.T, name string, staff bool) *domain.User {
	t.Helper()
	id, err := f.users.Create(context.Background(), name, "$2a$04$notarealhash", staff)
	require.NoError(t, err)
	u, err := f.users.ByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func (f *fixture) category(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.cats.Create(context.Background(), name, nil)
	require.NoError(t, err)
	return id
}

func (f *fixture) product(t *testing.T, cat int64, name string, price int64) domain.Product {
	t.Helper()
	p := domain.Product{Name: name, Price: price, CategoryID: cat}
	id, err := f.prods.Create(context.Background(), p)
	require.NoError(t, err)
	p.ID = id
	return p
}

func (f *fixture) orderSvc() *services.OrderService {
	return services.NewOrderService(f.db, f.carts, f.orders, f.prods)
}

func (f *fixture) cartSvc() *services.CartService {
	return services.NewCartService(f.carts, f.prods)
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

func intp(n int) *int { return &n }

func int64p(n int64) *int64 { return &n }
