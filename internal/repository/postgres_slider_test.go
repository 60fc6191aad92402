package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockSliderDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresSliderRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresSliderRepository(db)
}

func TestMoveSlider_SwapUp(t *testing.T) {
	db, mock, repo := setupMockSliderDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sort_order FROM slider_images`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(3))
	mock.ExpectQuery(`SELECT id, sort_order FROM slider_images`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sort_order"}).AddRow(int64(2), 2))
	// 两行互换 sort_order
	mock.ExpectExec(`UPDATE slider_images SET sort_order`).
		WithArgs(int64(5), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE slider_images SET sort_order`).
		WithArgs(int64(2), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Move(context.Background(), 5, MoveUp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveSlider_AtBoundaryIsNoop(t *testing.T) {
	db, mock, repo := setupMockSliderDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sort_order FROM slider_images`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"sort_order"}).AddRow(0))
	// 最顶部没有相邻行：什么都不改
	mock.ExpectQuery(`SELECT id, sort_order FROM slider_images`).
		WithArgs(0).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	require.NoError(t, repo.Move(context.Background(), 1, MoveUp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMoveSlider_UnknownImage(t *testing.T) {
	db, mock, repo := setupMockSliderDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT sort_order FROM slider_images`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Move(context.Background(), 404, MoveDown)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMoveSlider_InvalidDirection(t *testing.T) {
	db, _, repo := setupMockSliderDB(t)
	defer db.Close()

	err := repo.Move(context.Background(), 1, "sideways")
	assert.Error(t, err)
}

func TestCreateSliderImage_RequiresImageURL(t *testing.T) {
	db, _, repo := setupMockSliderDB(t)
	defer db.Close()

	_, err := repo.Create(context.Background(), NewSliderImage{Title: "kampanya"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestSoftDeleteSliderImage_NotFound(t *testing.T) {
	db, mock, repo := setupMockSliderDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE slider_images`).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SoftDelete(context.Background(), 404)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
