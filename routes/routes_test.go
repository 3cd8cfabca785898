package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"techshop/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Total   int             `json:"total"`
}

type testServer struct {
	router *gin.Engine
	mr     *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	svc, err := NewServices(context.Background(), repositories.NewMemoryStore(), rdb, Options{
		CartKey:        "techShopCart",
		CatalogKey:     "techShopProducts",
		AdminPassword:  "admin123",
		SearchDebounce: time.Millisecond,
		SessionIdleTTL: time.Hour,
		QueryCacheTTL:  time.Minute,
		UploadDir:      t.TempDir(),
		MaxUploadSize:  1 << 20,
	})
	require.NoError(t, err)

	router := gin.New()
	SetupRoutes(router, svc)
	return &testServer{router: router, mr: mr}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) login(t *testing.T) map[string]string {
	t.Helper()

	w, env := s.do(t, http.MethodPost, "/admin/login", gin.H{"password": "admin123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)
	return map[string]string{"Authorization": "Bearer " + login.Token}
}

type productView struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	InStock bool    `json:"inStock"`
}

func decodeProducts(t *testing.T, env envelope) []productView {
	t.Helper()
	var products []productView
	require.NoError(t, json.Unmarshal(env.Data, &products))
	return products
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProducts_FallbackAndCache(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/products?sort=price-low", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, 4, env.Total)
	products := decodeProducts(t, env)
	assert.Equal(t, "Corsair Vengeance 32GB DDR5", products[0].Name)

	keys := s.mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "products_list_"))

	w, cached := s.do(t, http.MethodGet, "/products?sort=price-low", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, env.Total, cached.Total)

	w, env = s.do(t, http.MethodGet, "/products?category=Storage", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Total)

	w, env = s.do(t, http.MethodGet, "/products/2", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, _ = s.do(t, http.MethodGet, "/products/999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, "/products/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoriesAndBrands(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/categories", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	assert.Equal(t, "All", categories[0])
	assert.Contains(t, categories, "Graphics Card")

	w, env = s.do(t, http.MethodGet, "/brands", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var brands []string
	require.NoError(t, json.Unmarshal(env.Data, &brands))
	assert.Contains(t, brands, "Samsung")
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/carts", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		CartID string `json:"cart_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	cart := map[string]string{"X-Cart-ID": created.CartID}

	for i := 0; i < 2; i++ {
		w, _ = s.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 1}, cart)
		require.Equal(t, http.StatusOK, w.Code)
	}

	type summary struct {
		TotalItems int     `json:"total_items"`
		TotalPrice float64 `json:"total_price"`
		Items      []struct {
			ID       int64 `json:"id"`
			Quantity int   `json:"quantity"`
		} `json:"items"`
	}
	w, env = s.do(t, http.MethodGet, "/cart", nil, cart)
	require.Equal(t, http.StatusOK, w.Code)
	var got summary
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.TotalItems)
	assert.Equal(t, 27998.0, got.TotalPrice)

	w, env = s.do(t, http.MethodGet, "/cart", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 0, got.TotalItems)

	w, _ = s.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 999}, cart)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodGet, "/cart", nil, map[string]string{"X-Cart-ID": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodGet, "/cart/items/1", nil, cart)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"product_id":1,"in_cart":true,"quantity":2}`, string(env.Data))

	w, env = s.do(t, http.MethodPost, "/cart/checkout", nil, cart)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.Success)

	w, env = s.do(t, http.MethodPatch, "/cart/items/1", gin.H{"quantity": 0}, cart)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Empty(t, got.Items)

	w, _ = s.do(t, http.MethodPatch, "/cart/items/1", gin.H{}, cart)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/cart/items", gin.H{"product_id": 4}, cart)
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(t, http.MethodDelete, "/cart", nil, cart)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 0, got.TotalItems)
}

func TestAdminGuard(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/admin/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/admin/products", nil, map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/admin/login", gin.H{"password": "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	auth := s.login(t)
	w, _ = s.do(t, http.MethodGet, "/admin/products", nil, auth)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodPost, "/admin/mode", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin_mode":true,"authenticated":false}`, string(env.Data))

	w, _ = s.do(t, http.MethodGet, "/admin/products", nil, auth)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	auth = s.login(t)
	w, _ = s.do(t, http.MethodPost, "/admin/logout", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, "/admin/stats", nil, auth)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminCatalogFlow(t *testing.T) {
	s := newTestServer(t)
	auth := s.login(t)

	_, env := s.do(t, http.MethodGet, "/products", nil, nil)
	assert.Equal(t, 4, env.Total)

	w, env := s.do(t, http.MethodPost, "/admin/products", gin.H{"name": "", "category": "Memory", "price": 10}, auth)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodPost, "/admin/products", gin.H{
		"name": "Ryzen 7 7800X3D", "category": "Processor", "brand": "AMD",
		"price": 44999, "discountPrice": 39999, "rating": 4.9,
	}, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	var created productView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.True(t, created.InStock)

	_, env = s.do(t, http.MethodGet, "/products", nil, nil)
	require.Equal(t, 1, env.Total)
	assert.Equal(t, "Ryzen 7 7800X3D", decodeProducts(t, env)[0].Name)

	id := jsonID(created.ID)
	w, env = s.do(t, http.MethodPatch, "/admin/products/"+id, gin.H{"price": 45999}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var updated productView
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 45999.0, updated.Price)
	assert.Equal(t, "Ryzen 7 7800X3D", updated.Name)

	w, _ = s.do(t, http.MethodPatch, "/admin/products/1", gin.H{"price": 1}, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(t, http.MethodPost, "/admin/products/bulk-stock", gin.H{"ids": []int64{created.ID}, "inStock": false}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"updated":1}`, string(env.Data))

	w, env = s.do(t, http.MethodGet, "/admin/stats", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		TotalProducts int `json:"total_products"`
		OutOfStock    int `json:"out_of_stock"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 1, stats.OutOfStock)

	w, env = s.do(t, http.MethodPost, "/admin/products/bulk-delete", gin.H{"ids": []int64{created.ID, 12345}}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"deleted":1}`, string(env.Data))

	w, _ = s.do(t, http.MethodDelete, "/admin/products/"+id, nil, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, env = s.do(t, http.MethodGet, "/products", nil, nil)
	assert.Equal(t, 4, env.Total)
}

func TestImportFlow(t *testing.T) {
	s := newTestServer(t)
	auth := s.login(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/import/template", nil)
	req.Header.Set("Authorization", auth["Authorization"])
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "product_template.xlsx")
	assert.NotZero(t, w.Body.Len())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "products.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("Product Name,Category,Price,In Stock\nRM850x,Power Supply,12999,Yes\n,,,\nB650,Motherboard,18999,No\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req = httptest.NewRequest(http.MethodPost, "/admin/import/preview", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth["Authorization"])
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var preview struct {
		Data  []json.RawMessage `json:"data"`
		Total int               `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	require.Equal(t, 2, preview.Total)

	products := make([]map[string]interface{}, len(preview.Data))
	for i, raw := range preview.Data {
		require.NoError(t, json.Unmarshal(raw, &products[i]))
	}

	w, env := s.do(t, http.MethodPost, "/admin/import", gin.H{"products": products}, auth)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, env.Total)

	_, env = s.do(t, http.MethodGet, "/products", nil, nil)
	assert.Equal(t, 2, env.Total)

	w, _ = s.do(t, http.MethodPost, "/admin/import", gin.H{"products": []interface{}{}}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBrowseFlow(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodPost, "/browse/sessions", nil, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var session struct {
		SessionID string `json:"session_id"`
		Total     int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, 4, session.Total)

	path := "/browse/sessions/" + session.SessionID
	w, _ = s.do(t, http.MethodPost, path+"/navigate", gin.H{"category": "Memory"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, path+"?refresh=true", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, 1, session.Total)

	w, _ = s.do(t, http.MethodPatch, path, gin.H{"search": "ryzen", "category": "All"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, path+"?refresh=true", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, 1, session.Total)

	w, _ = s.do(t, http.MethodDelete, path, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrowseSessionFollowsCatalogChanges(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/browse/sessions", nil, nil)
	var session struct {
		SessionID string `json:"session_id"`
		Total     int    `json:"total"`
		Pending   bool   `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.Equal(t, 4, session.Total)

	auth := s.login(t)
	w, _ := s.do(t, http.MethodPost, "/admin/products", gin.H{"name": "Arc A770", "category": "Graphics Card", "price": 32999}, auth)
	require.Equal(t, http.StatusCreated, w.Code)

	path := "/browse/sessions/" + session.SessionID
	assert.Eventually(t, func() bool {
		_, env := s.do(t, http.MethodGet, path, nil, nil)
		if err := json.Unmarshal(env.Data, &session); err != nil {
			return false
		}
		return !session.Pending && session.Total == 1
	}, time.Second, 5*time.Millisecond)
}

func jsonID(id int64) string {
	data, _ := json.Marshal(id)
	return string(data)
}
