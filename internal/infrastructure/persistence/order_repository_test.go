package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/farmstore/backend/internal/domain/order"
	"github.com/farmstore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("jo@farm.example", "Jo Farmer", "", "1 Barn Rd", "Dell", "VT", "05001", "", decimal.RequireFromString("25.98"))
	require.NoError(t, err)
	_, err = o.AddLine(uuid.New(), "Whole Chicken", decimal.RequireFromString("12.99"), 2)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_CreateWithLines(t *testing.T) {
	t.Run("writes order and lines in one transaction", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		o := pendingOrder(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "orders"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO "order_lines"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.CreateWithLines(context.Background(), o)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the line insert fails", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		o := pendingOrder(t)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "orders"`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO "order_lines"`).
			WillReturnError(errors.New("constraint violation"))
		mock.ExpectRollback()

		err := repo.CreateWithLines(context.Background(), o)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an order without lines", func(t *testing.T) {
		db, _, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		o, err := order.NewOrder("jo@farm.example", "Jo Farmer", "", "1 Barn Rd", "Dell", "VT", "05001", "", decimal.Zero)
		require.NoError(t, err)

		err = repo.CreateWithLines(context.Background(), o)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMPTY_ORDER", domainErr.Code)
	})
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds order with lines preloaded", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		orderID := uuid.New()
		lineID := uuid.New()
		productID := uuid.New()
		now := time.Now()

		orderRows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "customer_email", "customer_name", "customer_phone", "address", "city", "state", "zip_code", "notes", "total", "status"}).
			AddRow(orderID, now, now, "jo@farm.example", "Jo Farmer", "", "1 Barn Rd", "Dell", "VT", "05001", "", decimal.RequireFromString("25.98"), "pending")
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)

		lineRows := sqlmock.NewRows([]string{"id", "order_id", "product_id", "product_name", "unit_price", "quantity", "line_total", "created_at"}).
			AddRow(lineID, orderID, productID, "Whole Chicken", decimal.RequireFromString("12.99"), 2, decimal.RequireFromString("25.98"), now)
		mock.ExpectQuery(`SELECT \* FROM "order_lines" WHERE "order_lines"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(lineRows)

		found, err := repo.FindByID(context.Background(), orderID)

		require.NoError(t, err)
		assert.Equal(t, orderID, found.ID)
		assert.Equal(t, order.StatusPending, found.Status)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, 2, found.Lines[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormOrderRepository(db)

		orderID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		found, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, found)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
