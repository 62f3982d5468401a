package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"shop/internal/config"
	"shop/internal/http/handlers"
	"shop/internal/repos"
	"shop/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	app *fiber.App
	db  *sqlx.DB
	cfg config.Config
}

func newTestApp(t *testing.T, tweak ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.Default()
	cfg.Database.DSN = ":memory:"
	cfg.Limits.LoginMax = 100
	cfg.Limits.LoginWindow = time.Minute
	for _, fn := range tweak {
		fn(&cfg)
	}
	db, err := repos.OpenDB(cfg.Database.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, cfg, repos.NewSessionRepo(db))
	return &testApp{app: handlers.NewApp(deps, cfg), db: db, cfg: cfg}
}

// mkUser inserts a user with a cheap hash and returns its id.
func (a *testApp) mkUser(t *testing.T, name, password string, staff bool) int64 {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := repos.NewUserRepo(a.db).Create(context.Background(), name, string(hash), staff)
	require.NoError(t, err)
	return id
}

func (a *testApp) mkProduct(t *testing.T, name string, price int64) int64 {
	t.Helper()
	ctx := context.Background()
	cats := repos.NewCategoryRepo(a.db)
	var catID int64
	if err := a.db.Get(&catID, `SELECT id FROM categories ORDER BY id LIMIT 1`); err != nil {
		catID, err = cats.Create(ctx, "General", nil)
		require.NoError(t, err)
	}
	svc := services.NewCatalogService(cats, repos.NewProductRepo(a.db))
	p, err := svc.CreateProduct(ctx, services.ProductInput{Name: name, Price: &price, Category: catID})
	require.NoError(t, err)
	return p.ID
}

func (a *testApp) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, a.db.Get(&n, `SELECT COUNT(*) FROM `+table))
	return n
}

// login returns the session cookie for the user.
func (a *testApp) login(t *testing.T, name, password string) *http.Cookie {
	t.Helper()
	resp := a.do(t, http.MethodPost, "/auth/login", map[string]string{"username": name, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == a.cfg.Session.Cookie {
			return c
		}
	}
	t.Fatal("session cookie missing")
	return nil
}

// do sends body as JSON (when non-nil) with the given cookies.
func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
