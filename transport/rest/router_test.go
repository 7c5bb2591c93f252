package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/pkg/domain/service"
	"shopapi/pkg/domain/store"
)

type noopDispatcher struct{}

func (noopDispatcher) Dispatch(service.Event) error { return nil }

func newTestRouter() http.Handler {
	users := service.NewUserService(store.NewUserStore(), noopDispatcher{})
	products := service.NewProductService(store.NewProductStore(), noopDispatcher{})
	return Router(users, products)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthEndpoint(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	decode(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestUnknownEndpoint(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/api/v1/orders", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body errorResponse
	decode(t, rec, &body)
	assert.Equal(t, "Endpoint not found", body.Error)
}

func TestUserLifecycle(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users",
		`{"username":"alice","email":"alice@example.com","fullName":"Alice Smith"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created userJSON
	decode(t, rec, &created)
	require.NoError(t, uuid.Validate(created.ID))
	assert.Equal(t, "alice", created.Username)
	assert.True(t, created.IsActive)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.True(t, strings.HasSuffix(created.CreatedAt, "Z"))

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched userJSON
	decode(t, rec, &fetched)
	assert.Equal(t, created, fetched)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/users/"+created.ID,
		`{"username":"alice2","isActive":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated userJSON
	decode(t, rec, &updated)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, created.Email, updated.Email)
	assert.False(t, updated.IsActive)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted map[string]bool
	decode(t, rec, &deleted)
	assert.True(t, deleted["success"])

	rec = doJSON(t, router, http.MethodGet, "/api/v1/users/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var notFound errorResponse
	decode(t, rec, &notFound)
	assert.Equal(t, "user not found", notFound.Error)
}

func TestCreateUserValidation(t *testing.T) {
	router := newTestRouter()

	t.Run("malformed body", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/users", `{"username":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorResponse
		decode(t, rec, &body)
		assert.Equal(t, "Invalid request body", body.Error)
		assert.Empty(t, body.Details)
	})

	t.Run("broken constraints are all listed", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/users",
			`{"username":"ab","email":"nope"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorResponse
		decode(t, rec, &body)
		assert.Equal(t, "Invalid request parameters", body.Error)
		assert.Equal(t, []string{
			"username must be at least 3 characters",
			"email must be a valid email address",
			"fullName is required",
		}, body.Details)
	})
}

func TestGetUserBadID(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodGet, "/api/v1/users/not-a-uuid", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorResponse
	decode(t, rec, &body)
	assert.Equal(t, []string{"id must be a valid UUID v4"}, body.Details)
}

func TestListUsers(t *testing.T) {
	router := newTestRouter()
	for _, payload := range []string{
		`{"username":"alice","email":"alice@example.com","fullName":"Alice Smith"}`,
		`{"username":"bob","email":"bob@example.com","fullName":"Bob Johnson"}`,
		`{"username":"charlie","email":"charlie@example.com","fullName":"Charlie Brown"}`,
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/users", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("insertion order by default", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/users?page=1&pageSize=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body listUsersResponse
		decode(t, rec, &body)
		require.Len(t, body.Users, 3)
		assert.Equal(t, 3, body.TotalCount)
		assert.Equal(t, 1, body.Page)
		assert.Equal(t, 10, body.PageSize)
		assert.Equal(t, "alice", body.Users[0].Username)
	})

	t.Run("filter and sort", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet,
			"/api/v1/users?filter=example.com&sortBy=username&page=1&pageSize=2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body listUsersResponse
		decode(t, rec, &body)
		require.Len(t, body.Users, 2)
		assert.Equal(t, 3, body.TotalCount)
		assert.Equal(t, "alice", body.Users[0].Username)
		assert.Equal(t, "bob", body.Users[1].Username)
	})

	t.Run("pagination is required", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/users", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorResponse
		decode(t, rec, &body)
		assert.Equal(t, []string{"page is required", "pageSize is required"}, body.Details)
	})

	t.Run("unparsable page is reported once", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/users?page=abc&pageSize=10", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorResponse
		decode(t, rec, &body)
		assert.Equal(t, []string{"page must be an integer"}, body.Details)
	})
}

func TestProductEndpoints(t *testing.T) {
	router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/products",
		`{"name":"Coffee Maker","description":"Automatic drip coffee maker","price":200,"quantity":25,"category":"Home"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created productJSON
	decode(t, rec, &created)
	require.NoError(t, uuid.Validate(created.ID))
	assert.Equal(t, int64(200), created.Price)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched productJSON
	decode(t, rec, &fetched)
	assert.Equal(t, created, fetched)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/products/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	var notFound errorResponse
	decode(t, rec, &notFound)
	assert.Equal(t, "product not found", notFound.Error)
}

func TestCreateProductValidation(t *testing.T) {
	rec := doJSON(t, newTestRouter(), http.MethodPost, "/api/v1/products",
		`{"description":"x","price":-5,"quantity":1,"category":"Home"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorResponse
	decode(t, rec, &body)
	assert.Equal(t, []string{"name is required", "price cannot be negative"}, body.Details)
}

func TestSearchProducts(t *testing.T) {
	router := newTestRouter()
	for _, payload := range []string{
		`{"name":"iPhone 15","description":"Latest Apple smartphone","price":1000,"quantity":50,"category":"Electronics"}`,
		`{"name":"JavaScript Guide","description":"Learn modern JavaScript","price":30,"quantity":100,"category":"Books"}`,
		`{"name":"Coffee Maker","description":"Automatic drip coffee maker","price":200,"quantity":25,"category":"Home"}`,
	} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/products", payload)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("category filter", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/products?category=Books&page=1&pageSize=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body searchProductsResponse
		decode(t, rec, &body)
		require.Len(t, body.Products, 1)
		assert.Equal(t, "JavaScript Guide", body.Products[0].Name)
	})

	t.Run("price range", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/products?minPrice=100&maxPrice=500&page=1&pageSize=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body searchProductsResponse
		decode(t, rec, &body)
		require.Len(t, body.Products, 1)
		assert.Equal(t, "Coffee Maker", body.Products[0].Name)
	})

	t.Run("substring query", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/products?query=coffee&page=1&pageSize=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body searchProductsResponse
		decode(t, rec, &body)
		require.Len(t, body.Products, 1)
		assert.Equal(t, 1, body.TotalCount)
	})

	t.Run("empty page past the end", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/products?page=5&pageSize=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var body searchProductsResponse
		decode(t, rec, &body)
		assert.Empty(t, body.Products)
		assert.Equal(t, 3, body.TotalCount)
	})

	t.Run("negative bound", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/v1/products?minPrice=-1&page=1&pageSize=10", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errorResponse
		decode(t, rec, &body)
		assert.Equal(t, []string{"minPrice cannot be negative"}, body.Details)
	})
}
