package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kesif-backend/internal/domain"
)

func setupMockAdminsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresAdminsRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresAdminsRepository(db)
}

func adminRows(passwordHash string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "full_name", "role",
		"is_active", "last_login", "created_at", "updated_at",
	}).AddRow(int64(1), "admin", "admin@kesif.com", passwordHash, "Kesif Admin",
		domain.RoleSuperAdmin, true, nil, now, now)
}

func TestVerifyCredentials_Success(t *testing.T) {
	db, mock, repo := setupMockAdminsDB(t)
	defer db.Close()

	// 测试里用低成本哈希，避免拖慢用例
	hash, err := bcrypt.GenerateFromPassword([]byte("gizli-parola"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM admin_users`).
		WithArgs("admin@kesif.com").
		WillReturnRows(adminRows(string(hash)))
	mock.ExpectExec(`UPDATE admin_users SET last_login`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := repo.VerifyCredentials(context.Background(), "admin@kesif.com", "gizli-parola")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.RoleSuperAdmin, u.Role)
	assert.Nil(t, u.LastLoginAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyCredentials_WrongPassword(t *testing.T) {
	db, mock, repo := setupMockAdminsDB(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("gizli-parola"), bcrypt.MinCost)
	require.NoError(t, err)

	// 密码不符时不应刷新 last_login
	mock.ExpectQuery(`SELECT .+ FROM admin_users`).
		WithArgs("admin@kesif.com").
		WillReturnRows(adminRows(string(hash)))

	u, err := repo.VerifyCredentials(context.Background(), "admin@kesif.com", "yanlis")
	require.NoError(t, err)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyCredentials_UnknownEmail(t *testing.T) {
	db, mock, repo := setupMockAdminsDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM admin_users`).
		WithArgs("nobody@kesif.com").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.VerifyCredentials(context.Background(), "nobody@kesif.com", "x")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestCreateAdmin_HashesPassword(t *testing.T) {
	db, mock, repo := setupMockAdminsDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO admin_users`).
		WithArgs("editor", "editor@kesif.com", sqlmock.AnyArg(), "Editör", domain.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(2)))

	id, err := repo.Create(context.Background(), NewAdminUser{
		Username: "editor",
		Email:    "editor@kesif.com",
		Password: "parola123",
		FullName: "Editör",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdmin_MissingFields(t *testing.T) {
	db, _, repo := setupMockAdminsDB(t)
	defer db.Close()

	_, err := repo.Create(context.Background(), NewAdminUser{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = repo.Create(context.Background(), NewAdminUser{Username: "a", Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestChangePassword_EmptyRejected(t *testing.T) {
	db, _, repo := setupMockAdminsDB(t)
	defer db.Close()

	err := repo.ChangePassword(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrMissingField)
}
