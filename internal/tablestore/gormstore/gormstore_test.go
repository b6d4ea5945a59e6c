package gormstore

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"house_management/internal/domain"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return New(db), mock
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "u:p@tcp(h:3306)/house?parseTime=true&charset=utf8mb4", DSN("u", "p", "h", "3306", "house"))
}

func TestSelectAll(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `Rooms`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "floor_id", "number", "type", "position"}).
			AddRow("r1", "f1", "A101", "SINGLE", 0).
			AddRow("r2", "f1", "A102", "DOUBLE", 1))

	var rows []domain.RoomRow
	require.NoError(t, store.SelectAll(context.Background(), domain.TableRooms, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, domain.RoomDouble, rows[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectAllUnknownTable(t *testing.T) {
	store, mock := newMock(t)
	var rows []domain.RoomRow
	require.Error(t, store.SelectAll(context.Background(), "Wallets", &rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec("INSERT INTO `Buildings` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Upsert(context.Background(), &domain.BuildingRow{ID: "b1", Name: "อาคาร A", Position: 2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	store, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `Residents` WHERE id = ?")).
		WithArgs("res-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), domain.TableResidents, "res-1"), "missing rows are not an error")
	require.Error(t, store.Delete(context.Background(), "Wallets", "w1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRollsBackOnError(t *testing.T) {
	store, mock := newMock(t)
	snap := domain.Snapshot{
		Buildings: []domain.BuildingRow{{ID: "b1", Name: "A"}},
		Floors:    []domain.FloorRow{{ID: "f1", BuildingID: "b1", Number: 1}},
	}
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `Buildings`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `Floors`").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := store.Seed(context.Background(), snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Floors f1")
	assert.NoError(t, mock.ExpectationsWereMet())
}
