package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/farmstore/backend/internal/domain/cart"
	"github.com/farmstore/backend/internal/domain/catalog"
	"github.com/farmstore/backend/internal/domain/checkout"
	"github.com/farmstore/backend/internal/domain/order"
	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/farmstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateWithLines(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// failingGateway is a PaymentGateway that always declines
type failingGateway struct{}

func (failingGateway) Authorize(ctx context.Context, total decimal.Decimal) error {
	return errors.New("declined")
}

func completedForm() checkout.FormData {
	return checkout.FormData{
		Email:    "jo@farm.example",
		FullName: "Jo Farmer",
		Address:  "1 Barn Rd",
		City:     "Dell",
		State:    "VT",
		ZipCode:  "05001",
	}
}

func chickenLine(t *testing.T, quantity int) cart.Line {
	t.Helper()
	p, err := catalog.NewProduct("Whole Chicken", valueobject.NewMoneyUSDFromFloat(12.99), "per kg", catalog.CategoryPoultry)
	require.NoError(t, err)
	return cart.Line{Product: *p, Quantity: quantity}
}

func TestSubmissionService_Submit(t *testing.T) {
	t.Run("creates the order with snapshot lines", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewSubmissionService(repo, nil, nil)

		line := chickenLine(t, 2)
		total := decimal.RequireFromString("25.98")

		var created *order.Order
		repo.On("CreateWithLines", mock.Anything, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*order.Order)
			}).
			Return(nil)

		orderID, err := svc.Submit(context.Background(), completedForm(), []cart.Line{line}, total)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, orderID)
		require.NotNil(t, created)
		assert.Equal(t, orderID, created.ID)
		assert.Equal(t, order.StatusPending, created.Status)
		assert.True(t, created.Total.Equal(total))
		require.Equal(t, 1, created.LineCount())
		assert.Equal(t, "Whole Chicken", created.Lines[0].ProductName)
		assert.Equal(t, 2, created.Lines[0].Quantity)
		assert.True(t, created.Lines[0].UnitPrice.Equal(decimal.RequireFromString("12.99")))
		assert.True(t, created.Lines[0].LineTotal.Equal(total))
		repo.AssertExpectations(t)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewSubmissionService(repo, nil, nil)

		_, err := svc.Submit(context.Background(), completedForm(), nil, decimal.Zero)

		assert.Equal(t, shared.ErrEmptyCart, err)
		repo.AssertNotCalled(t, "CreateWithLines", mock.Anything, mock.Anything)
	})

	t.Run("surfaces repository failure as submission error", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewSubmissionService(repo, nil, nil)

		repo.On("CreateWithLines", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

		_, err := svc.Submit(context.Background(), completedForm(),
			[]cart.Line{chickenLine(t, 1)}, decimal.RequireFromString("12.99"))

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SUBMISSION_FAILED", domainErr.Code)
	})

	t.Run("does not write when payment authorization fails", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewSubmissionService(repo, failingGateway{}, nil)

		_, err := svc.Submit(context.Background(), completedForm(),
			[]cart.Line{chickenLine(t, 1)}, decimal.RequireFromString("12.99"))

		require.Error(t, err)
		repo.AssertNotCalled(t, "CreateWithLines", mock.Anything, mock.Anything)
	})

	t.Run("rejects an incomplete form", func(t *testing.T) {
		repo := new(MockOrderRepository)
		svc := NewSubmissionService(repo, nil, nil)

		form := completedForm()
		form.ZipCode = ""

		_, err := svc.Submit(context.Background(), form,
			[]cart.Line{chickenLine(t, 1)}, decimal.RequireFromString("12.99"))

		assert.Error(t, err)
		repo.AssertNotCalled(t, "CreateWithLines", mock.Anything, mock.Anything)
	})
}

func TestSimulatedSubmitter_Submit(t *testing.T) {
	t.Run("returns a synthesized order id after the delay", func(t *testing.T) {
		sub := NewSimulatedSubmitter(5*time.Millisecond, nil)

		orderID, err := sub.Submit(context.Background(), completedForm(),
			[]cart.Line{chickenLine(t, 2)}, decimal.RequireFromString("25.98"))

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, orderID)
	})

	t.Run("applies the same validation as the real path", func(t *testing.T) {
		sub := NewSimulatedSubmitter(time.Millisecond, nil)

		_, err := sub.Submit(context.Background(), completedForm(), nil, decimal.Zero)
		assert.Equal(t, shared.ErrEmptyCart, err)

		form := completedForm()
		form.Email = ""
		_, err = sub.Submit(context.Background(), form,
			[]cart.Line{chickenLine(t, 1)}, decimal.RequireFromString("12.99"))
		assert.Error(t, err)
	})

	t.Run("respects context cancellation during the delay", func(t *testing.T) {
		sub := NewSimulatedSubmitter(time.Minute, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := sub.Submit(ctx, completedForm(),
			[]cart.Line{chickenLine(t, 1)}, decimal.RequireFromString("12.99"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
