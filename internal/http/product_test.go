package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productNames(t *testing.T, r reply) []string {
	t.Helper()
	var out []string
	for _, p := range dataList(t, r) {
		out = append(out, p["name"].(string))
	}
	return out
}

func TestProductListsAndFilters(t *testing.T) {
	app, _ := newApp(t, nil)

	twin := productBody("TWIN_BAG", "twin", 1000)
	twin["isNew"] = true
	createProduct(t, app, twin)
	clo := productBody("CLO_BAG", "clo", 2000)
	clo["isBest"] = true
	createProduct(t, app, clo)

	r := call(t, app, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, r.Status, r.Raw)
	assert.ElementsMatch(t, []string{"twin", "clo"}, productNames(t, r))

	r = call(t, app, http.MethodGet, "/api/products?categoryCode=CLO_BAG", nil, nil)
	assert.Equal(t, []string{"clo"}, productNames(t, r))

	assert.Equal(t, []string{"twin"}, productNames(t, call(t, app, http.MethodGet, "/api/products/new", nil, nil)))
	assert.Equal(t, []string{"clo"}, productNames(t, call(t, app, http.MethodGet, "/api/products/best", nil, nil)))
}

func TestProductListUnknownCategory(t *testing.T) {
	app, _ := newApp(t, nil)

	r := call(t, app, http.MethodGet, "/api/products?categoryCode=HATS", nil, nil)
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "INVALID_CATEGORY", r.code())
	assert.Contains(t, r.fieldErrors(), "categoryCode")
}

func TestProductDetail(t *testing.T) {
	app, _ := newApp(t, nil)
	id := createProduct(t, app, productBody("MINIMAL_BAG", "mini", 5000))

	r := call(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, r.Status, r.Raw)
	p := r.Body["data"].(map[string]any)
	assert.Equal(t, "mini", p["name"])
	assert.Equal(t, "MINIMAL_BAG", p["categoryCode"])
	assert.Equal(t, "MINIMAL BAG", p["categoryName"])
	assert.NotContains(t, p, "categoryId")

	r = call(t, app, http.MethodGet, "/api/products/424242", nil, nil)
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Equal(t, "PRODUCT_NOT_FOUND", r.code())

	r = call(t, app, http.MethodGet, "/api/products/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.Equal(t, "INVALID_PRODUCT_ID", r.code())
}

func TestProductCreateValidation(t *testing.T) {
	app, _ := newApp(t, nil)

	body := productBody("TWIN_BAG", "bad", -100)
	r := call(t, app, http.MethodPost, "/api/products", body, nil)
	require.Equal(t, http.StatusBadRequest, r.Status, r.Raw)
	assert.Equal(t, "VALIDATION_ERROR", r.code())
	fields := r.fieldErrors()
	assert.Contains(t, fields, "price")
	assert.Len(t, fields, 1)

	body = productBody("HAT", "hat", 100)
	body["imageUrl"] = "nope"
	r = call(t, app, http.MethodPost, "/api/products", body, nil)
	assert.Equal(t, http.StatusBadRequest, r.Status)
	fields = r.fieldErrors()
	assert.Contains(t, fields, "categoryCode")
	assert.Contains(t, fields, "imageUrl")

	assert.Empty(t, dataList(t, call(t, app, http.MethodGet, "/api/products", nil, nil)))
}

func TestProductDeleteHidesIt(t *testing.T) {
	app, _ := newApp(t, nil)
	tok := login(t, app, "kim")
	id := createProduct(t, app, productBody("TWIN_BAG", "twin", 1000))
	call(t, app, http.MethodPost, fmt.Sprintf("/api/carts?productId=%d", id), nil, bearer(tok))

	r := call(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
	require.Equal(t, http.StatusOK, r.Status, r.Raw)

	r = call(t, app, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Empty(t, dataList(t, call(t, app, http.MethodGet, "/api/products", nil, nil)))
	assert.Empty(t, dataList(t, call(t, app, http.MethodGet, "/api/carts", nil, bearer(tok))))

	r = call(t, app, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil)
	assert.Equal(t, http.StatusNotFound, r.Status)
}

func TestCategories(t *testing.T) {
	app, _ := newApp(t, nil)
	r := call(t, app, http.MethodGet, "/api/categories", nil, nil)
	require.Equal(t, http.StatusOK, r.Status)
	var codes []string
	for _, c := range dataList(t, r) {
		codes = append(codes, c["code"].(string))
	}
	assert.Equal(t, []string{"TWIN_BAG", "REMOOD_BAG", "CLO_BAG", "MINIMAL_BAG", "ACCESSORY"}, codes)
}
