package sopclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/config"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

// newTestClient wires a client against an httptest server with a throwaway
// state dir.
func newTestClient(t *testing.T, handler http.Handler) (*sopclient.Client, *sopclient.Session) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := sopclient.NewSession(t.TempDir())
	require.NoError(t, err)

	c := sopclient.New(config.ClientConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, sess)
	return c, sess
}

func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestClient_NotFoundIsSentinel(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusNotFound, `{"code":"NOT_FOUND","message":"product not found"}`))

	_, err := sopclient.NewProductService(c).Get(context.Background(), 99)
	assert.ErrorIs(t, err, sopclient.ErrNotFound)
}

func TestClient_ForbiddenUsesGenericMessage(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusForbidden, `{"code":"PERMISSION_DENIED","message":"demand.plan.write required"}`))

	_, err := sopclient.NewProductService(c).Get(context.Background(), 1)
	var apiErr *sopclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	// the server's wording is not surfaced on 403
	assert.Equal(t, "access denied, insufficient permissions", apiErr.Message)
}

func TestClient_ValidationDetailExtraction(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 400, `{"code":"INVALID_INPUT","message":"sku is required"}`, "sku is required"},
		{"string detail", 422, `{"detail":"period is required"}`, "period is required"},
		{"object detail", 422, `{"detail":{"message":"quantity must be positive"}}`, "quantity must be positive"},
		{"unusable body", 400, `{"detail":[{"loc":["body"]}]}`, "validation error"},
		{"empty body", 422, ``, "validation error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, jsonHandler(tc.status, tc.body))

			_, err := sopclient.NewProductService(c).Get(context.Background(), 1)
			var apiErr *sopclient.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestClient_ServerErrorIsGeneric(t *testing.T) {
	c, _ := newTestClient(t, jsonHandler(http.StatusInternalServerError, `{"message":"pq: relation missing"}`))

	_, err := sopclient.NewProductService(c).Get(context.Background(), 1)
	var apiErr *sopclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "server error, try again later", apiErr.Message)
}

func TestClient_UnauthorizedClearsSessionOnce(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","user":{"id":1,"email":"a@b.c","full_name":"A","role":"admin","is_active":true}}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	fired := 0
	sess.OnInvalidated(func() { fired++ })

	auth := sopclient.NewAuthService(c)
	_, err := auth.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	require.Equal(t, sopclient.StateAuthenticated, sess.State())

	products := sopclient.NewProductService(c)
	_, err = products.Get(context.Background(), 1)
	assert.ErrorIs(t, err, sopclient.ErrSessionExpired)
	assert.Equal(t, sopclient.StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())

	// a second 401 must not fire the hook again
	_, err = products.Get(context.Background(), 2)
	assert.ErrorIs(t, err, sopclient.ErrSessionExpired)
	assert.Equal(t, 1, fired)
}

func TestClient_InvalidationResetsPerSignIn(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","user":{"id":1,"email":"a@b.c","full_name":"A","role":"admin","is_active":true}}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	fired := 0
	sess.OnInvalidated(func() { fired++ })

	auth := sopclient.NewAuthService(c)
	products := sopclient.NewProductService(c)

	_, err := auth.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	_, _ = products.Get(context.Background(), 1)
	assert.Equal(t, 1, fired)

	// a fresh sign-in re-arms the hook
	_, err = auth.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	_, _ = products.Get(context.Background(), 1)
	assert.Equal(t, 2, fired)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var got string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/auth/login" {
			_, _ = w.Write([]byte(`{"access_token":"tok-abc","token_type":"bearer","user":{"id":1,"email":"a@b.c","full_name":"A","role":"admin","is_active":true}}`))
			return
		}
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":1,"sku":"SKU-1","name":"Widget","status":"active"}`))
	}))

	products := sopclient.NewProductService(c)

	// anonymous request carries no header
	_, err := products.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = sopclient.NewAuthService(c).Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)

	_, err = products.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", got)
}
