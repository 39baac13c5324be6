package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"mechoci-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Insert(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, userID *string) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetByID(ctx context.Context, id string) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func validInput() CreateInput {
	return CreateInput{
		Items: []ItemInput{
			{ProductID: "donut-1", Quantity: 2},
		},
		DeliveryLocation: Location{Latitude: 42.6977, Longitude: 23.3219},
		DeliveryTime:     time.Now().Add(45 * time.Minute),
	}
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog)

		input := CreateInput{
			Items: []ItemInput{
				{ProductID: "donut-1", Quantity: 2},
				{ProductID: "corn-1", Quantity: 3},
			},
			DeliveryLocation: Location{Latitude: 42.6977, Longitude: 23.3219},
			DeliveryTime:     time.Now().Add(45 * time.Minute),
		}

		mockCatalog.On("GetByID", ctx, "donut-1").
			Return(&product.Product{ID: "donut-1", Name: "Поничка", Price: 150, Available: true}, nil)
		mockCatalog.On("GetByID", ctx, "corn-1").
			Return(&product.Product{ID: "corn-1", Name: "Царевица", Price: 200, Available: true}, nil)
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

		o, err := svc.Create(ctx, "user-1", input)
		require.NoError(t, err)

		// total is the exact sum over snapshotted prices
		assert.Equal(t, int64(2*150+3*200), o.Total)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, "user-1", o.UserID)
		require.Len(t, o.Items, 2)
		assert.Equal(t, int64(150), o.Items[0].Price)
		assert.Equal(t, "Поничка", o.Items[0].ProductName)
		assert.Equal(t, int64(200), o.Items[1].Price)
		mockRepo.AssertExpectations(t)
	})

	t.Run("UnavailableProductAbortsWholeOrder", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog)

		input := CreateInput{
			Items: []ItemInput{
				{ProductID: "donut-1", Quantity: 2},
				{ProductID: "corn-1", Quantity: 1},
			},
			DeliveryLocation: Location{Latitude: 42.6977, Longitude: 23.3219},
			DeliveryTime:     time.Now().Add(45 * time.Minute),
		}

		mockCatalog.On("GetByID", ctx, "donut-1").
			Return(&product.Product{ID: "donut-1", Price: 150, Available: true}, nil)
		mockCatalog.On("GetByID", ctx, "corn-1").
			Return(&product.Product{ID: "corn-1", Price: 200, Available: false}, nil)

		_, err := svc.Create(ctx, "user-1", input)

		var unavailable *UnavailableProductError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "corn-1", unavailable.ProductID)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog)

		mockCatalog.On("GetByID", ctx, "donut-1").Return(nil, product.ErrProductNotFound)

		_, err := svc.Create(ctx, "user-1", validInput())

		var unavailable *UnavailableProductError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "donut-1", unavailable.ProductID)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("FirstInvalidItemWins", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog)

		input := CreateInput{
			Items: []ItemInput{
				{ProductID: "corn-1", Quantity: 1},
				{ProductID: "corn-2", Quantity: 1},
			},
			DeliveryLocation: Location{Latitude: 42.6977, Longitude: 23.3219},
			DeliveryTime:     time.Now().Add(45 * time.Minute),
		}

		mockCatalog.On("GetByID", ctx, "corn-1").
			Return(&product.Product{ID: "corn-1", Available: false}, nil)

		_, err := svc.Create(ctx, "user-1", input)

		var unavailable *UnavailableProductError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "corn-1", unavailable.ProductID)
		mockCatalog.AssertNotCalled(t, "GetByID", ctx, "corn-2")
	})

	t.Run("PastDeliveryTime", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog)

		input := validInput()
		input.DeliveryTime = time.Now().Add(-time.Minute)

		_, err := svc.Create(ctx, "user-1", input)

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "deliveryTime", validation.Field)
		mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		mockCatalog.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog))

		input := validInput()
		input.Items = nil

		_, err := svc.Create(ctx, "user-1", input)

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "items", validation.Field)
	})

	t.Run("ZeroQuantity", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog))

		input := validInput()
		input.Items[0].Quantity = 0

		_, err := svc.Create(ctx, "user-1", input)

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "items.quantity", validation.Field)
	})

	t.Run("OutOfRangeLatitude", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockCatalog))

		input := validInput()
		input.DeliveryLocation.Latitude = 91

		_, err := svc.Create(ctx, "user-1", input)

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "deliveryLocation.latitude", validation.Field)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockCatalog := new(MockCatalog)
		svc := NewService(mockRepo, mockCatalog)

		mockCatalog.On("GetByID", ctx, "donut-1").
			Return(&product.Product{ID: "donut-1", Price: 150, Available: true}, nil)
		mockRepo.On("Insert", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("db error"))

		_, err := svc.Create(ctx, "user-1", validInput())
		assert.Error(t, err)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("NonAdminForbidden", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		_, err := svc.UpdateStatus(ctx, "order-1", StatusConfirmed, false)
		assert.ErrorIs(t, err, ErrForbidden)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PendingToConfirmed", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "order-1").
			Return(&Order{ID: "order-1", Status: StatusPending}, nil)
		mockRepo.On("UpdateStatus", ctx, "order-1", StatusPending, StatusConfirmed).
			Return(true, nil)

		o, err := svc.UpdateStatus(ctx, "order-1", StatusConfirmed, true)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, o.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("OutOfTerminalState", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "order-1").
			Return(&Order{ID: "order-1", Status: StatusCompleted}, nil)

		_, err := svc.UpdateStatus(ctx, "order-1", StatusConfirmed, true)

		var transition *TransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, StatusCompleted, transition.From)
		assert.Equal(t, StatusConfirmed, transition.To)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PendingToCompletedSkipsConfirm", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "order-1").
			Return(&Order{ID: "order-1", Status: StatusPending}, nil)

		_, err := svc.UpdateStatus(ctx, "order-1", StatusCompleted, true)

		var transition *TransitionError
		assert.ErrorAs(t, err, &transition)
	})

	t.Run("UnknownStatusValue", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		_, err := svc.UpdateStatus(ctx, "order-1", Status("shipped"), true)

		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "status", validation.Field)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "missing").Return(nil, ErrOrderNotFound)

		_, err := svc.UpdateStatus(ctx, "missing", StatusConfirmed, true)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("ConcurrentStatusChange", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "order-1").
			Return(&Order{ID: "order-1", Status: StatusPending}, nil)
		mockRepo.On("UpdateStatus", ctx, "order-1", StatusPending, StatusConfirmed).
			Return(false, nil)

		_, err := svc.UpdateStatus(ctx, "order-1", StatusConfirmed, true)
		assert.ErrorIs(t, err, ErrStatusConflict)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("AdminSeesAll", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		all := []*Order{{ID: "o-1", UserID: "user-1"}, {ID: "o-2", UserID: "user-2"}}
		mockRepo.On("List", ctx, (*string)(nil)).Return(all, nil)

		orders, err := svc.List(ctx, "admin-1", true)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("UserSeesOnlyOwn", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		own := []*Order{{ID: "o-1", UserID: "user-1"}}
		mockRepo.On("List", ctx, mock.MatchedBy(func(id *string) bool {
			return id != nil && *id == "user-1"
		})).Return(own, nil)

		orders, err := svc.List(ctx, "user-1", false)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "user-1", orders[0].UserID)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerAllowed", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "o-1").
			Return(&Order{ID: "o-1", UserID: "user-1"}, nil)

		o, err := svc.Get(ctx, "o-1", "user-1", false)
		require.NoError(t, err)
		assert.Equal(t, "o-1", o.ID)
	})

	t.Run("OtherUserForbidden", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "o-1").
			Return(&Order{ID: "o-1", UserID: "user-1"}, nil)

		_, err := svc.Get(ctx, "o-1", "user-2", false)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockCatalog))

		mockRepo.On("GetByID", ctx, "o-1").
			Return(&Order{ID: "o-1", UserID: "user-1"}, nil)

		_, err := svc.Get(ctx, "o-1", "admin-1", true)
		assert.NoError(t, err)
	})
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}
