package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	cartapp "github.com/farmstore/backend/internal/application/cart"
	catalogapp "github.com/farmstore/backend/internal/application/catalog"
	checkoutapp "github.com/farmstore/backend/internal/application/checkout"
	"github.com/farmstore/backend/internal/domain/cart"
	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/farmstore/backend/internal/domain/checkout"
	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/farmstore/backend/internal/interfaces/http/middleware"
	"github.com/farmstore/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStorage is a minimal in-memory cart storage for handler tests
type testStorage struct {
	mu    sync.Mutex
	lines []cart.Line
}

func (s *testStorage) Load(ctx context.Context) ([]cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines, nil
}

func (s *testStorage) Save(ctx context.Context, lines []cart.Line) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = lines
	return nil
}

// testSubmitter records submissions and returns a canned result
type testSubmitter struct {
	mu      sync.Mutex
	calls   int
	err     error
	orderID uuid.UUID
}

func (s *testSubmitter) Submit(ctx context.Context, form checkout.FormData, lines []cart.Line, total decimal.Decimal) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return uuid.Nil, s.err
	}
	return s.orderID, nil
}

type testServer struct {
	engine    *gin.Engine
	session   string
	submitter *testSubmitter
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogSvc := catalogapp.NewProductService(nil, nil)
	carts := cartapp.NewService(func(sessionID string) cart.Storage {
		return &testStorage{}
	}, nil)
	submitter := &testSubmitter{orderID: uuid.New()}
	checkoutSvc := checkoutapp.NewService(carts, submitter, nil, nil)

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.SessionID())

	router.NewRouter(engine).
		Register(NewProductHandler(catalogSvc)).
		Register(NewCartHandler(carts, catalogSvc)).
		Register(NewCheckoutHandler(checkoutSvc)).
		Register(NewSystemHandler(nil)).
		Setup()

	return &testServer{
		engine:    engine,
		session:   uuid.NewString(),
		submitter: submitter,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
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
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, s.session)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var resp struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	return resp.Error.Code
}

func builtinChicken() catalog.Product {
	return catalog.BuiltinCatalog()[0]
}

func TestProductEndpoints(t *testing.T) {
	t.Run("lists the built-in catalog without a store", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/products", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var products []ProductResponse
		decodeData(t, w, &products)
		assert.Len(t, products, len(catalog.BuiltinCatalog()))
	})

	t.Run("filters by category", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/products?category=eggs", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var products []ProductResponse
		decodeData(t, w, &products)
		require.NotEmpty(t, products)
		for _, p := range products {
			assert.Equal(t, "eggs", p.Category)
		}
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/products?category=livestock", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_CATEGORY", decodeError(t, w))
	})

	t.Run("gets a single product", func(t *testing.T) {
		srv := newTestServer(t)
		chicken := builtinChicken()

		w := srv.do(t, http.MethodGet, "/api/v1/products/"+chicken.ID.String(), nil)

		require.Equal(t, http.StatusOK, w.Code)
		var product ProductResponse
		decodeData(t, w, &product)
		assert.Equal(t, chicken.Name, product.Name)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCartEndpoints(t *testing.T) {
	t.Run("add merges and opens the drawer", func(t *testing.T) {
		srv := newTestServer(t)
		chicken := builtinChicken()

		w := srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: chicken.ID.String(), Quantity: 2})
		require.Equal(t, http.StatusOK, w.Code)

		w = srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: chicken.ID.String(), Quantity: 1})
		require.Equal(t, http.StatusOK, w.Code)

		var cartResp CartResponse
		decodeData(t, w, &cartResp)
		require.Len(t, cartResp.Lines, 1)
		assert.Equal(t, 3, cartResp.Lines[0].Quantity)
		assert.Equal(t, 3, cartResp.TotalItems)
		assert.True(t, cartResp.DrawerOpen)
		assert.True(t, cartResp.TotalPrice.Equal(decimal.RequireFromString("38.97")))
	})

	t.Run("zero quantity update removes the line", func(t *testing.T) {
		srv := newTestServer(t)
		chicken := builtinChicken()

		srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: chicken.ID.String(), Quantity: 2})
		w := srv.do(t, http.MethodPut, "/api/v1/cart/items/"+chicken.ID.String(), UpdateCartItemRequest{Quantity: 0})

		require.Equal(t, http.StatusOK, w.Code)
		var cartResp CartResponse
		decodeData(t, w, &cartResp)
		assert.Empty(t, cartResp.Lines)
	})

	t.Run("adding an unknown product is 404 and leaves the cart alone", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: uuid.NewString(), Quantity: 1})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = srv.do(t, http.MethodGet, "/api/v1/cart", nil)
		var cartResp CartResponse
		decodeData(t, w, &cartResp)
		assert.Empty(t, cartResp.Lines)
	})

	t.Run("drawer toggles without touching lines", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodPost, "/api/v1/cart/drawer/toggle", nil)
		var cartResp CartResponse
		decodeData(t, w, &cartResp)
		assert.True(t, cartResp.DrawerOpen)

		w = srv.do(t, http.MethodPost, "/api/v1/cart/drawer/close", nil)
		decodeData(t, w, &cartResp)
		assert.False(t, cartResp.DrawerOpen)
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		srv := newTestServer(t)
		chicken := builtinChicken()

		srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: chicken.ID.String(), Quantity: 2})

		other := &testServer{engine: srv.engine, session: uuid.NewString()}
		w := other.do(t, http.MethodGet, "/api/v1/cart", nil)
		var cartResp CartResponse
		decodeData(t, w, &cartResp)
		assert.Empty(t, cartResp.Lines)
	})
}

func fillCheckoutForm(t *testing.T, srv *testServer) {
	t.Helper()
	email, name := "jo@farm.example", "Jo Farmer"
	addr, city, state, zip := "1 Barn Rd", "Dell", "VT", "05001"
	w := srv.do(t, http.MethodPatch, "/api/v1/checkout/form", CheckoutFormRequest{
		Email: &email, FullName: &name,
		Address: &addr, City: &city, State: &state, ZipCode: &zip,
	})
	require.Equal(t, http.StatusOK, w.Code)
}

func advanceToReview(t *testing.T, srv *testServer) {
	t.Helper()
	fillCheckoutForm(t, srv)
	for _, wantStep := range []string{"shipping", "review"} {
		w := srv.do(t, http.MethodPost, "/api/v1/checkout/advance", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var state CheckoutStateResponse
		decodeData(t, w, &state)
		require.Equal(t, wantStep, state.Step)
	}
}

func TestCheckoutEndpoints(t *testing.T) {
	t.Run("opens at the contact step", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodGet, "/api/v1/checkout", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var state CheckoutStateResponse
		decodeData(t, w, &state)
		assert.Equal(t, "contact", state.Step)
		assert.Nil(t, state.Error)
	})

	t.Run("advance without required fields stays put", func(t *testing.T) {
		srv := newTestServer(t)

		w := srv.do(t, http.MethodPost, "/api/v1/checkout/advance", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var state CheckoutStateResponse
		decodeData(t, w, &state)
		assert.Equal(t, "contact", state.Step)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		srv := newTestServer(t)
		bad := "not-an-email"

		w := srv.do(t, http.MethodPatch, "/api/v1/checkout/form", CheckoutFormRequest{Email: &bad})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("successful submit clears the cart and reports the order", func(t *testing.T) {
		srv := newTestServer(t)
		chicken := builtinChicken()

		srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: chicken.ID.String(), Quantity: 2})
		advanceToReview(t, srv)

		w := srv.do(t, http.MethodPost, "/api/v1/checkout/submit", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var state CheckoutStateResponse
		decodeData(t, w, &state)
		assert.Equal(t, "success", state.Step)
		require.NotNil(t, state.OrderID)
		assert.Equal(t, srv.submitter.orderID, *state.OrderID)

		w = srv.do(t, http.MethodGet, "/api/v1/cart", nil)
		var cartResp CartResponse
		decodeData(t, w, &cartResp)
		assert.Empty(t, cartResp.Lines)
	})

	t.Run("submit before review is 422", func(t *testing.T) {
		srv := newTestServer(t)
		chicken := builtinChicken()
		srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: chicken.ID.String(), Quantity: 1})

		w := srv.do(t, http.MethodPost, "/api/v1/checkout/submit", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "INVALID_STATE", decodeError(t, w))
	})

	t.Run("submit with an empty cart is 422", func(t *testing.T) {
		srv := newTestServer(t)
		advanceToReview(t, srv)

		w := srv.do(t, http.MethodPost, "/api/v1/checkout/submit", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "EMPTY_CART", decodeError(t, w))
	})

	t.Run("failed submit stays on review with the error surfaced", func(t *testing.T) {
		srv := newTestServer(t)
		srv.submitter.err = shared.ErrSubmissionFailed
		chicken := builtinChicken()

		srv.do(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{ProductID: chicken.ID.String(), Quantity: 2})
		advanceToReview(t, srv)

		w := srv.do(t, http.MethodPost, "/api/v1/checkout/submit", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)

		w = srv.do(t, http.MethodGet, "/api/v1/checkout", nil)
		var state CheckoutStateResponse
		decodeData(t, w, &state)
		assert.Equal(t, "review", state.Step)
		require.NotNil(t, state.Error)
		assert.NotEmpty(t, *state.Error)

		w = srv.do(t, http.MethodGet, "/api/v1/cart", nil)
		var cartResp CartResponse
		decodeData(t, w, &cartResp)
		require.Len(t, cartResp.Lines, 1)
		assert.Equal(t, 2, cartResp.Lines[0].Quantity)
	})

	t.Run("close discards the flow", func(t *testing.T) {
		srv := newTestServer(t)
		advanceToReview(t, srv)

		w := srv.do(t, http.MethodDelete, "/api/v1/checkout", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = srv.do(t, http.MethodGet, "/api/v1/checkout", nil)
		var state CheckoutStateResponse
		decodeData(t, w, &state)
		assert.Equal(t, "contact", state.Step)
		assert.Empty(t, state.Form.Email)
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var health map[string]string
	decodeData(t, w, &health)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "not_configured", health["store"])
}
