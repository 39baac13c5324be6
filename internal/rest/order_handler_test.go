package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mechoci-be/internal/order"
	"mechoci-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, userID string, input order.CreateInput) (*order.Order, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, requested order.Status, callerIsAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, orderID, requested, callerIsAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, callerID string, callerIsAdmin bool) ([]*order.Order, error) {
	args := m.Called(ctx, callerID, callerIsAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, orderID, callerID string, callerIsAdmin bool) (*order.Order, error) {
	args := m.Called(ctx, orderID, callerID, callerIsAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func newOrderRouter(t *testing.T, orders order.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(Services{Orders: orders})
}

func bearerFor(t *testing.T, userID string, isAdmin bool) string {
	t.Helper()
	token, err := user.GenerateJWT(userID, userID+"@mechoci.bg", isAdmin)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(router *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_Create(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	body := gin.H{
		"items":            []gin.H{{"productId": "donut-1", "quantity": 2}},
		"deliveryLocation": gin.H{"latitude": 42.69, "longitude": 23.32},
		"deliveryTime":     time.Now().Add(time.Hour).Format(time.RFC3339),
	}

	t.Run("Created", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		created := &order.Order{
			ID: "order-1", UserID: "user-1", Total: 300, Status: order.StatusPending,
			Items: []order.Item{{ProductID: "donut-1", ProductName: "Поничка", Quantity: 2, Price: 150}},
		}
		mockOrders.On("Create", mock.Anything, "user-1", mock.AnythingOfType("order.CreateInput")).
			Return(created, nil)

		w := doJSON(router, http.MethodPost, "/api/orders", bearerFor(t, "user-1", false), body)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"total":300`)
		assert.Contains(t, w.Body.String(), `"status":"pending"`)
	})

	t.Run("NoToken", func(t *testing.T) {
		router := newOrderRouter(t, new(MockOrderService))

		w := doJSON(router, http.MethodPost, "/api/orders", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingItems", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		w := doJSON(router, http.MethodPost, "/api/orders", bearerFor(t, "user-1", false), gin.H{
			"items":            []gin.H{},
			"deliveryLocation": gin.H{"latitude": 42.69, "longitude": 23.32},
			"deliveryTime":     time.Now().Add(time.Hour).Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockOrders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnavailableProduct", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		mockOrders.On("Create", mock.Anything, "user-1", mock.AnythingOfType("order.CreateInput")).
			Return(nil, &order.UnavailableProductError{ProductID: "donut-1"})

		w := doJSON(router, http.MethodPost, "/api/orders", bearerFor(t, "user-1", false), body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "donut-1")
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	body := gin.H{"status": "confirmed"}

	t.Run("NonAdminBlocked", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		w := doJSON(router, http.MethodPatch, "/api/orders/order-1/status", bearerFor(t, "user-1", false), body)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Updated", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		mockOrders.On("UpdateStatus", mock.Anything, "order-1", order.StatusConfirmed, true).
			Return(&order.Order{ID: "order-1", Status: order.StatusConfirmed}, nil)

		w := doJSON(router, http.MethodPatch, "/api/orders/order-1/status", bearerFor(t, "admin-1", true), body)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"confirmed"`)
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		mockOrders.On("UpdateStatus", mock.Anything, "order-1", order.StatusConfirmed, true).
			Return(nil, &order.TransitionError{From: order.StatusCompleted, To: order.StatusConfirmed})

		w := doJSON(router, http.MethodPatch, "/api/orders/order-1/status", bearerFor(t, "admin-1", true), body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ConcurrentConflict", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		mockOrders.On("UpdateStatus", mock.Anything, "order-1", order.StatusConfirmed, true).
			Return(nil, order.ErrStatusConflict)

		w := doJSON(router, http.MethodPatch, "/api/orders/order-1/status", bearerFor(t, "admin-1", true), body)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		mockOrders.On("UpdateStatus", mock.Anything, "missing", order.StatusConfirmed, true).
			Return(nil, order.ErrOrderNotFound)

		w := doJSON(router, http.MethodPatch, "/api/orders/missing/status", bearerFor(t, "admin-1", true), body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderHandler_Listing(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("MyOrders", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		own := []*order.Order{{ID: "order-1", UserID: "user-1"}}
		mockOrders.On("List", mock.Anything, "user-1", false).Return(own, nil)

		w := doJSON(router, http.MethodGet, "/api/orders/my-orders", bearerFor(t, "user-1", false), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "order-1")
	})

	t.Run("MyOrdersEmptyIsArray", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		mockOrders.On("List", mock.Anything, "user-1", false).Return(nil, nil)

		w := doJSON(router, http.MethodGet, "/api/orders/my-orders", bearerFor(t, "user-1", false), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", w.Body.String())
	})

	t.Run("ListAllRequiresAdmin", func(t *testing.T) {
		router := newOrderRouter(t, new(MockOrderService))

		w := doJSON(router, http.MethodGet, "/api/orders", bearerFor(t, "user-1", false), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("GetForbiddenForStranger", func(t *testing.T) {
		mockOrders := new(MockOrderService)
		router := newOrderRouter(t, mockOrders)

		mockOrders.On("Get", mock.Anything, "order-1", "user-2", false).
			Return(nil, order.ErrForbidden)

		w := doJSON(router, http.MethodGet, "/api/orders/order-1", bearerFor(t, "user-2", false), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
