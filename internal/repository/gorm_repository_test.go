package repository

import (
	"context"
	"puredrop/internal/models"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestOwnerRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	owners := NewOwnerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "owners"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := owners.Create(context.Background(), &models.ShopOwner{Phone: "9000000001", Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	owners := NewOwnerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "owners"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	owner := &models.ShopOwner{Phone: "9000000001", Password: "hash"}
	require.NoError(t, owners.Create(context.Background(), owner))
	assert.NotEmpty(t, owner.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerRepository_GetByPhoneNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	owners := NewOwnerRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "owners" WHERE phone = \$1`).
		WithArgs("9000000001").
		WillReturnRows(sqlmock.NewRows([]string{"id", "phone"}))

	_, err := owners.GetByPhone(context.Background(), "9000000001")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOwnerRepository_UpdateMissing(t *testing.T) {
	db, mock := newMockDB(t)
	owners := NewOwnerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "owners" SET .* WHERE phone = \$\d+`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := owners.Update(context.Background(), &models.ShopOwner{Phone: "9000000001", Address: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByShopNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	orders := NewOrderRepository(db)
	newer := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)

	rows := sqlmock.NewRows([]string{"id", "shop_phone", "delivery_status", "item_water_tins", "created_at"}).
		AddRow("6f1d7f0e-0000-4000-8000-000000000002", "9000000001", "Delivered", 2, newer).
		AddRow("6f1d7f0e-0000-4000-8000-000000000001", "9000000001", "Delivered", 1, older)
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE shop_phone = \$1 AND delivery_status = \$2 ORDER BY created_at DESC`).
		WithArgs("9000000001", "Delivered").
		WillReturnRows(rows)

	list, err := orders.ListByShop(context.Background(), "9000000001", models.OrderFilter{Status: models.StatusDelivered})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "6f1d7f0e-0000-4000-8000-000000000002", list[0].ID)
	assert.Equal(t, 2, list[0].OrderItems.WaterTins)
	assert.Equal(t, models.StatusDelivered, list[1].DeliveryStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByShopEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	orders := NewOrderRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE shop_phone = \$1 ORDER BY created_at DESC`).
		WithArgs("9000000001").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	list, err := orders.ListByShop(context.Background(), "9000000001", models.OrderFilter{})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	const id = "6f1d7f0e-0000-4000-8000-000000000001"

	t.Run("missing order", func(t *testing.T) {
		db, mock := newMockDB(t)
		orders := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET "delivery_status"=\$1 WHERE id = \$2`).
			WithArgs("Delivered", id).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		_, err := orders.UpdateStatus(context.Background(), id, models.StatusDelivered)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		orders := NewOrderRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "orders" SET "delivery_status"=\$1 WHERE id = \$2`).
			WithArgs("Delivered", id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "shop_phone", "delivery_status"}).
				AddRow(id, "9000000001", "Delivered"))

		order, err := orders.UpdateStatus(context.Background(), id, models.StatusDelivered)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDelivered, order.DeliveryStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed id", func(t *testing.T) {
		db, mock := newMockDB(t)
		orders := NewOrderRepository(db)

		_, err := orders.UpdateStatus(context.Background(), "not-a-uuid", models.StatusDelivered)
		assert.ErrorIs(t, err, ErrInvalidID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
