package sopclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genxsop/genxsop/pkg/config"
	"github.com/genxsop/genxsop/pkg/sopclient"
)

func TestNewSession_EmptyDirIsAnonymous(t *testing.T) {
	sess, err := sopclient.NewSession(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, sopclient.StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
}

func TestNewSession_CorruptStateFileIsAnonymous(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genxsop-auth.json"), []byte("{not json"), 0o600))

	sess, err := sopclient.NewSession(dir)
	require.NoError(t, err)
	assert.Equal(t, sopclient.StateAnonymous, sess.State())
}

func TestSession_LoginPersistsAcrossRestarts(t *testing.T) {
	dir := t.TempDir()
	srv := newAuthServer(t)

	sess, err := sopclient.NewSession(dir)
	require.NoError(t, err)
	c := sopclient.New(config.ClientConfig{BaseURL: srv, Timeout: 5 * time.Second}, sess)

	user, err := sopclient.NewAuthService(c).Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "planner@genx.io", user.Email)

	// a second session over the same dir rehydrates
	sess2, err := sopclient.NewSession(dir)
	require.NoError(t, err)
	assert.Equal(t, sopclient.StateAuthenticated, sess2.State())
	assert.Equal(t, "tok-42", sess2.Token())
	require.NotNil(t, sess2.User())
	assert.Equal(t, "demand_planner", sess2.User().Role)
}

func TestSession_LogoutRemovesStateFile(t *testing.T) {
	dir := t.TempDir()
	srv := newAuthServer(t)

	sess, err := sopclient.NewSession(dir)
	require.NoError(t, err)
	c := sopclient.New(config.ClientConfig{BaseURL: srv, Timeout: 5 * time.Second}, sess)
	auth := sopclient.NewAuthService(c)

	_, err = auth.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "genxsop-auth.json"))
	require.NoError(t, statErr)

	auth.Logout()
	assert.Equal(t, sopclient.StateAnonymous, sess.State())
	_, statErr = os.Stat(filepath.Join(dir, "genxsop-auth.json"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestAuth_LoginFailureIsGenericAndAnonymous(t *testing.T) {
	c, sess := newTestClient(t, jsonHandler(http.StatusUnauthorized, `{"code":"UNAUTHORIZED","message":"bad credentials"}`))

	_, err := sopclient.NewAuthService(c).Login(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, sopclient.ErrLoginFailed)
	assert.Equal(t, sopclient.StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
}

func TestAuth_FetchMeWithoutTokenIssuesNoRequest(t *testing.T) {
	c, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))

	user, err := sopclient.NewAuthService(c).FetchMe(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, sopclient.StateAnonymous, sess.State())
}

func TestAuth_FetchMeFailureForcesLogout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "genxsop-auth.json"),
		[]byte(`{"token":"stale-tok"}`), 0o600))

	sess, err := sopclient.NewSession(dir)
	require.NoError(t, err)
	require.Equal(t, sopclient.StateAuthenticated, sess.State())

	srv := newStaticServer(t, http.StatusInternalServerError, `{}`)
	c := sopclient.New(config.ClientConfig{BaseURL: srv, Timeout: 5 * time.Second}, sess)

	_, err = sopclient.NewAuthService(c).FetchMe(context.Background())
	require.Error(t, err)
	assert.Equal(t, sopclient.StateAnonymous, sess.State())
	assert.Empty(t, sess.Token())
}

func newAuthServer(t *testing.T) string {
	t.Helper()
	return newStaticServer(t, http.StatusOK,
		`{"access_token":"tok-42","token_type":"bearer","user":{"id":7,"email":"planner@genx.io","full_name":"Dana Planner","role":"demand_planner","is_active":true}}`)
}

func newStaticServer(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(jsonHandler(status, body))
	t.Cleanup(srv.Close)
	return srv.URL
}
