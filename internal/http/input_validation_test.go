package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shop/internal/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartQuantityFloor(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "alice", "pw", false)
	sid := a.login(t, "alice", "pw")
	p := a.mkProduct(t, "A", 10)

	for _, q := range []int{0, -1} {
		resp := a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p, "quantity": q}, sid)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode[map[string][]string](t, resp)
		assert.Equal(t, []string{validate.MsgQuantity}, body["quantity"])
	}
	assert.Equal(t, 0, a.count(t, "cart_lines"))

	resp := a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": 999}, sid)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string][]string](t, resp), "product_id")
}

func TestCartQuantityCeiling(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "alice", "pw", false)
	sid := a.login(t, "alice", "pw")
	p := a.mkProduct(t, "A", 200)

	resp := a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p, "quantity": int64(92233720368547759)}, sid)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Ensure this value is less than or equal to 10000."}, decode[map[string][]string](t, resp)["quantity"])
	assert.Equal(t, 0, a.count(t, "cart_lines"))

	resp = a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p, "quantity": 6000}, sid)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p, "quantity": 6000}, sid)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string][]string](t, resp), "quantity")

	var q int
	require.NoError(t, a.db.Get(&q, `SELECT quantity FROM cart_lines`))
	assert.Equal(t, 6000, q)
}

func TestProductFilters(t *testing.T) {
	a := newTestApp(t)
	a.mkProduct(t, "Cheap", 10)
	a.mkProduct(t, "Mid", 50)
	a.mkProduct(t, "Dear", 90)

	names := func(query string) []string {
		resp := a.do(t, http.MethodGet, "/api/products"+query, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var out []string
		for _, p := range decode[[]map[string]any](t, resp) {
			out = append(out, p["name"].(string))
		}
		return out
	}

	assert.Equal(t, []string{"Cheap", "Mid", "Dear"}, names(""))
	assert.Equal(t, []string{"Mid"}, names("?price_gt=10&price_lt=90"))
	assert.Equal(t, []string{"Dear", "Mid", "Cheap"}, names("?ordering=-price"))
	assert.Equal(t, []string{"Cheap", "Mid", "Dear"}, names("?ordering=bogus"))
	assert.Empty(t, names("?category=999"))

	resp := a.do(t, http.MethodGet, "/api/products?price_gt=abc", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{validate.MsgNumber}, decode[map[string][]string](t, resp)["price_gt"])
}

func TestUnknownIDsAreNotFound(t *testing.T) {
	a := newTestApp(t)
	for _, path := range []string{"/api/products/999", "/api/products/abc", "/api/categories/0", "/api/comments/5", "/nope"} {
		resp := a.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Equal(t, map[string]any{"detail": "Not found."}, decode[map[string]any](t, resp), path)
	}
}

func TestMalformedBody(t *testing.T) {
	a := newTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"username":`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, a.count(t, "users"))
}

func TestCategoryNameRequired(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "root", "pw", true)
	root := a.login(t, "root", "pw")

	resp := a.do(t, http.MethodPost, "/api/categories", map[string]any{"name": "  "}, root)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string][]string](t, resp), "name")

	resp = a.do(t, http.MethodPost, "/api/categories", map[string]any{"name": strings.Repeat("x", 41)}, root)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Ensure this field has no more than 40 characters."}, decode[map[string][]string](t, resp)["name"])
}
