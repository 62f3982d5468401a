package handlers_test

import (
	"bytes"
	"net/http"
	"testing"

	applog "shop/internal/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessAndAuditLogs(t *testing.T) {
	a := newTestApp(t)
	uid := a.mkUser(t, "alice", "Passw0rd!", false)
	p := a.mkProduct(t, "A", 10)

	var buf bytes.Buffer
	applog.Setup(&buf, "info")
	t.Cleanup(func() { applog.Setup(nopWriter{}, "info") })

	a.do(t, http.MethodPost, "/auth/login", map[string]string{"username": "alice", "password": "bad"})
	sid := a.login(t, "alice", "Passw0rd!")
	a.do(t, http.MethodPost, "/api/cart-user-products", map[string]any{"product_id": p}, sid)
	a.do(t, http.MethodPost, "/api/make-order", nil, sid)

	byAction := map[string][]map[string]any{}
	for _, e := range logLines(t, &buf) {
		action, _ := e["action"].(string)
		byAction[action] = append(byAction[action], e)
	}

	require.Len(t, byAction["auth.login.fail"], 1)
	fail := byAction["auth.login.fail"][0]
	assert.Equal(t, "security", fail["kind"])
	assert.Equal(t, "alice", fail["username"])
	assert.EqualValues(t, http.StatusBadRequest, fail["status"])
	assert.NotContains(t, buf.String(), "bad\"")

	require.Len(t, byAction["order.place"], 1)
	placed := byAction["order.place"][0]
	assert.Equal(t, "audit", placed["kind"])
	assert.Equal(t, itoa(uid), placed["user_id"])
	assert.EqualValues(t, 10, placed["total_price"])
	assert.NotEmpty(t, placed["req_id"])

	access := byAction["http.request"]
	require.Len(t, access, 4)
	last := access[len(access)-1]
	assert.Equal(t, "/api/make-order", last["path"])
	assert.EqualValues(t, http.StatusCreated, last["status"])
	assert.Equal(t, itoa(uid), last["user_id"])
	assert.Contains(t, last, "latency_ms")
}

func TestAccessLogCarriesFinalErrorStatus(t *testing.T) {
	a := newTestApp(t)

	var buf bytes.Buffer
	applog.Setup(&buf, "info")
	t.Cleanup(func() { applog.Setup(nopWriter{}, "info") })

	resp := a.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	lines := logLines(t, &buf)
	require.NotEmpty(t, lines)
	last := lines[len(lines)-1]
	assert.Equal(t, "http.request", last["action"])
	assert.EqualValues(t, http.StatusUnauthorized, last["status"])
}
