package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	applog "shop/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentDeleteByNonAuthorIsForbidden(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "alice", "pw", false)
	a.mkUser(t, "bob", "pw", false)
	alice := a.login(t, "alice", "pw")
	bob := a.login(t, "bob", "pw")
	p := a.mkProduct(t, "A", 10)

	resp := a.do(t, http.MethodPost, "/api/comments", map[string]any{"product_id": p, "text": "nice"}, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	c := decode[map[string]any](t, resp)
	path := "/api/comments/" + itoa(int64(c["id"].(float64)))

	var buf bytes.Buffer
	applog.Setup(&buf, "info")
	t.Cleanup(func() { applog.Setup(nopWriter{}, "info") })

	resp = a.do(t, http.MethodDelete, path, nil, bob)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, 1, a.count(t, "comments"))
	assert.Contains(t, buf.String(), `"action":"access.denied"`)

	// anonymous callers may read but not write
	assert.Equal(t, http.StatusOK, a.do(t, http.MethodGet, path, nil).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodDelete, path, nil).StatusCode)

	resp = a.do(t, http.MethodDelete, path, nil, alice)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, a.count(t, "comments"))
}

func TestReplyDeleteByNonAuthorIsForbidden(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "alice", "pw", false)
	a.mkUser(t, "bob", "pw", false)
	alice := a.login(t, "alice", "pw")
	bob := a.login(t, "bob", "pw")
	p := a.mkProduct(t, "A", 10)

	c := decode[map[string]any](t, a.do(t, http.MethodPost, "/api/comments", map[string]any{"product_id": p, "text": "q"}, alice))
	r := decode[map[string]any](t, a.do(t, http.MethodPost, "/api/replies", map[string]any{"comment_id": c["id"], "text": "a"}, bob))
	path := "/api/replies/" + itoa(int64(r["id"].(float64)))

	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodDelete, path, nil, alice).StatusCode)
	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodPatch, path, map[string]any{"text": "edited"}, alice).StatusCode)

	resp := a.do(t, http.MethodPatch, path, map[string]any{"text": "edited"}, bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "edited", body["text"])
	assert.Equal(t, c["id"], body["comment_id"])
}

func TestCartScopedToCaller(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "alice", "pw", false)
	a.mkUser(t, "bob", "pw", false)
	a.mkUser(t, "root", "pw", true)
	alice := a.login(t, "alice", "pw")
	bob := a.login(t, "bob", "pw")
	root := a.login(t, "root", "pw")
	p1 := a.mkProduct(t, "A", 10)
	p2 := a.mkProduct(t, "B", 20)

	a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p1}, alice)
	a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p2}, alice)
	bobLine := decode[map[string]any](t, a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p1, "quantity": 4}, bob))

	lines := decode[[]map[string]any](t, a.do(t, http.MethodGet, "/api/cart-user-products", nil, bob))
	require.Len(t, lines, 1)
	assert.EqualValues(t, 4, lines[0]["quantity"])

	all := decode[[]map[string]any](t, a.do(t, http.MethodGet, "/api/cart-user-products", nil, root))
	assert.Len(t, all, 3)

	path := "/api/cart-user-products/" + itoa(int64(bobLine["id"].(float64)))
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodGet, path, nil, alice).StatusCode)
	assert.Equal(t, http.StatusNotFound, a.do(t, http.MethodDelete, path, nil, alice).StatusCode)

	resp := a.do(t, http.MethodPatch, path, map[string]any{"quantity": 2}, bob)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, decode[map[string]any](t, resp)["quantity"])
}

func TestCatalogWritesNeedStaff(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "alice", "pw", false)
	a.mkUser(t, "root", "pw", true)
	alice := a.login(t, "alice", "pw")
	root := a.login(t, "root", "pw")

	body := map[string]any{"name": "Radios"}
	assert.Equal(t, http.StatusUnauthorized, a.do(t, http.MethodPost, "/api/categories", body).StatusCode)
	assert.Equal(t, http.StatusForbidden, a.do(t, http.MethodPost, "/api/categories", body, alice).StatusCode)

	resp := a.do(t, http.MethodPost, "/api/categories", body, root)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode[map[string]any](t, resp)

	resp = a.do(t, http.MethodPost, "/api/products", map[string]any{"name": "Zenith", "price": 100, "category": cat["id"]}, root)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	prod := decode[map[string]any](t, resp)
	assert.Equal(t, cat["id"], prod["category"])

	path := "/api/products/" + itoa(int64(prod["id"].(float64)))
	resp = a.do(t, http.MethodPatch, path, map[string]any{"price": 80}, root)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	patched := decode[map[string]any](t, resp)
	assert.EqualValues(t, 80, patched["price"])
	assert.Equal(t, "Zenith", patched["name"])

	list := decode[[]map[string]any](t, a.do(t, http.MethodGet, "/api/categories", nil))
	assert.Len(t, list, 1)
}

func TestWishlistDuplicateRejected(t *testing.T) {
	a := newTestApp(t)
	a.mkUser(t, "alice", "pw", false)
	alice := a.login(t, "alice", "pw")
	p := a.mkProduct(t, "A", 10)

	resp := a.do(t, http.MethodPost, "/api/wishlist", map[string]any{"product_id": p}, alice)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/api/wishlist", map[string]any{"product_id": p}, alice)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[map[string]any](t, resp), "non_field_errors")
	assert.Equal(t, 1, a.count(t, "wishlists"))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// logLines parses the JSON lines written to buf.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}
