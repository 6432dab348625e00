package user

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
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
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestSeedUsers_SkipsExistingAndInvalid(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM users WHERE LOWER\(email\) = \$1\)`).
		WithArgs("admin@inkubator.local").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("dosen@inkubator.local").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	n, err := SeedUsers(context.Background(), db, []UserSeed{
		{DisplayName: "Admin", Email: " Admin@Inkubator.local ", Password: "rahasia123", Role: "ADMIN"},
		{DisplayName: "Tanpa NIDN", Email: "x@inkubator.local", Role: "LECTURER"},
		{DisplayName: "Role aneh", Email: "y@inkubator.local", Role: "ROOT"},
		{DisplayName: "Dosen", Email: "dosen@inkubator.local", Role: "LECTURER", NIDN: "0011223344"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserSeed_Validate(t *testing.T) {
	assert.Error(t, UserSeed{Role: "ADMIN"}.validate())
	assert.NoError(t, UserSeed{Email: "a@b.c", Role: "TENANT"}.validate())
}
