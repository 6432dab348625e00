package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inkubator_backend/internals/features/tenants/registrations/model"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *GormRepository) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return mock, NewGormRepository(gdb)
}

func TestFindByUserID_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "tenant_registrations" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByUserID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_PreloadsDocuments(t *testing.T) {
	mock, repo := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "tenant_registrations" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nama_bisnis", "status"}).
			AddRow(id.String(), "Kopi Kampus", "pending"))
	mock.ExpectQuery(`SELECT \* FROM "business_documents" WHERE "business_documents"."tenant_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "logo_url"}).
			AddRow(3, id.String(), "https://cdn.test/logo.webp"))

	reg, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Kopi Kampus", reg.NamaBisnis)
	assert.Equal(t, model.StatusPending, reg.Status)
	require.NotNil(t, reg.BusinessDocuments)
	assert.Equal(t, "https://cdn.test/logo.webp", reg.BusinessDocuments.LogoURL)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_FilterAndCount(t *testing.T) {
	mock, repo := setupMockDB(t)
	status := model.StatusPending

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tenant_registrations" WHERE status = \$1 AND \(nama_bisnis ILIKE \$2 OR nama_ketua_tim ILIKE \$3 OR nim_nidn_ketua ILIKE \$4\)`).
		WithArgs("pending", "%kopi%", "%kopi%", "%kopi%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "tenant_registrations" WHERE status = \$1 .* ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows, total, err := repo.List(context.Background(), ListFilter{Status: &status, Q: " kopi ", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_StaleWhenNoRowsMatch(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tenant_registrations" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	reason := "Dokumen tidak lengkap"
	err := repo.UpdateStatus(context.Background(), StatusChange{
		ID:         uuid.New(),
		From:       model.StatusPending,
		To:         model.StatusRejected,
		Reason:     &reason,
		ReviewedBy: uuid.New(),
		At:         time.Now(),
	})
	assert.ErrorIs(t, err, ErrStaleRegistration)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_OK(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "tenant_registrations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), StatusChange{
		ID: uuid.New(), From: model.StatusPending, To: model.StatusApproved, ReviewedBy: uuid.New(), At: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
