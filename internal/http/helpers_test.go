package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"bagshop/internal/config"
	"bagshop/internal/http/handlers"
	"bagshop/internal/repos"
)

const testSecret = "handlers-test-secret"

func testConfig() config.Config {
	return config.Config{
		Env:            "test",
		BodyLimit:      1 << 20,
		DBDriver:       "sqlite",
		DBDSN:          ":memory:",
		JWTSecret:      testSecret,
		JWTTTL:         time.Hour,
		JWTIssuer:      "bagshop",
		BcryptCost:     4,
		CORSOrigins:    "*",
		LoginRateLimit: 100,
	}
}

// newApp builds the real app over an in-memory database. tweak may adjust the config.
func newApp(t *testing.T, tweak func(*config.Config)) (*fiber.App, *handlers.Deps) {
	t.Helper()
	cfg := testConfig()
	if tweak != nil {
		tweak(&cfg)
	}
	db, err := repos.OpenDB(context.Background(), cfg.DBDriver, cfg.DBDSN, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	deps := handlers.NewDeps(db, cfg, nil)
	return handlers.NewApp(cfg, deps), deps
}

type reply struct {
	Status int
	Body   map[string]any
	Raw    string
}

func (r reply) code() string {
	s, _ := r.Body["code"].(string)
	return s
}

// fieldErrors collects the errors array as field -> message.
func (r reply) fieldErrors() map[string]string {
	out := map[string]string{}
	list, _ := r.Body["errors"].([]any)
	for _, item := range list {
		m, _ := item.(map[string]any)
		f, _ := m["field"].(string)
		msg, _ := m["message"].(string)
		out[f] = msg
	}
	return out
}

func call(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) reply {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	r := reply{Status: resp.StatusCode, Raw: string(raw)}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &r.Body), string(raw))
	}
	return r
}

func bearer(tok string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + tok}
}

func signupBody(handle string) map[string]any {
	return map[string]any{
		"name":            "Kim Bag",
		"email":           handle + "@bagshop.test",
		"phoneNumber":     "01012345678",
		"password":        "abcd123!",
		"confirmPassword": "abcd123!",
		"userId":          handle,
	}
}

// login signs handle up and returns a bearer token for it.
func login(t *testing.T, app *fiber.App, handle string) string {
	t.Helper()
	r := call(t, app, http.MethodPost, "/api/users/signup", signupBody(handle), nil)
	require.Equal(t, http.StatusCreated, r.Status, r.Raw)
	r = call(t, app, http.MethodPost, "/api/users/login", map[string]any{"userId": handle, "password": "abcd123!"}, nil)
	require.Equal(t, http.StatusOK, r.Status, r.Raw)
	tok, _ := r.Body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func productBody(code, name string, price int64) map[string]any {
	return map[string]any{
		"name":         name,
		"price":        price,
		"imageUrl":     "https://img.bagshop.test/" + name + ".jpg",
		"categoryCode": code,
		"color":        "black",
	}
}

// createProduct posts a product and returns its id.
func createProduct(t *testing.T, app *fiber.App, body map[string]any) int64 {
	t.Helper()
	r := call(t, app, http.MethodPost, "/api/products", body, nil)
	require.Equal(t, http.StatusCreated, r.Status, r.Raw)
	data, _ := r.Body["data"].(map[string]any)
	id, _ := data["id"].(float64)
	require.NotZero(t, id)
	return int64(id)
}

func dataList(t *testing.T, r reply) []map[string]any {
	t.Helper()
	list, ok := r.Body["data"].([]any)
	require.True(t, ok, r.Raw)
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		out = append(out, item.(map[string]any))
	}
	return out
}
