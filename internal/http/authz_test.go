package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagshop/internal/auth"
	"bagshop/internal/config"
)

func TestMissingTokenVsInvalidToken(t *testing.T) {
	app, _ := newApp(t, nil)

	r := call(t, app, http.MethodGet, "/api/carts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "NO_TOKEN", r.code())

	r = call(t, app, http.MethodGet, "/api/users/me", nil, map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "NO_TOKEN", r.code())

	r = call(t, app, http.MethodGet, "/api/carts", nil, bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "INVALID_TOKEN", r.code())
}

func TestForeignAndExpiredTokensRejected(t *testing.T) {
	app, _ := newApp(t, nil)
	login(t, app, "kim")

	foreign, _, err := auth.NewTokens("some-other-secret", time.Hour, "bagshop").Issue(1)
	require.NoError(t, err)
	r := call(t, app, http.MethodGet, "/api/users/me", nil, bearer(foreign))
	assert.Equal(t, "INVALID_TOKEN", r.code())

	expired, _, err := auth.NewTokens(testSecret, -time.Minute, "bagshop").Issue(1)
	require.NoError(t, err)
	r = call(t, app, http.MethodGet, "/api/users/me", nil, bearer(expired))
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "INVALID_TOKEN", r.code())
}

func TestTokenForDeletedUserIsNotFound(t *testing.T) {
	app, deps := newApp(t, nil)
	tok := login(t, app, "kim")

	_, err := deps.DB.Exec(`DELETE FROM users`)
	require.NoError(t, err)

	r := call(t, app, http.MethodGet, "/api/users/me", nil, bearer(tok))
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Equal(t, "USER_NOT_FOUND", r.code())
}

func TestAdminKeyGuardsProductWrites(t *testing.T) {
	app, _ := newApp(t, func(c *config.Config) { c.AdminAPIKey = "letmein" })
	body := productBody("TWIN_BAG", "twin", 1000)

	r := call(t, app, http.MethodPost, "/api/products", body, nil)
	assert.Equal(t, http.StatusUnauthorized, r.Status)
	assert.Equal(t, "INVALID_API_KEY", r.code())

	r = call(t, app, http.MethodPost, "/api/products", body, map[string]string{"X-API-Key": "nope"})
	assert.Equal(t, "INVALID_API_KEY", r.code())

	r = call(t, app, http.MethodPost, "/api/products", body, map[string]string{"X-API-Key": "letmein"})
	require.Equal(t, http.StatusCreated, r.Status, r.Raw)

	r = call(t, app, http.MethodDelete, "/api/products/1", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, r.Status)

	// reads stay public
	r = call(t, app, http.MethodGet, "/api/products", nil, nil)
	assert.Equal(t, http.StatusOK, r.Status)
}
