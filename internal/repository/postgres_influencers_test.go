package repository

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockInfluencersDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresInfluencersRepository) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresInfluencersRepository(db)
}

func TestCreateInfluencer_Success(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO influencers`).
		WithArgs(
			"Ayşe Demir",
			"ayse-demir", // slug 由 Name 派生
			"moda",
			"https://cdn.example.com/ayse.jpg",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			3,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	id, err := repo.Create(context.Background(), NewInfluencer{
		Name:         "Ayşe Demir",
		Category:     "moda",
		ImageURL:     "https://cdn.example.com/ayse.jpg",
		Specialties:  []string{"moda", "güzellik"},
		SocialCounts: map[string]string{"instagram": "250K"},
		SortOrder:    3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInfluencer_MissingRequiredFields(t *testing.T) {
	db, _, repo := setupMockInfluencersDB(t)
	defer db.Close()

	_, err := repo.Create(context.Background(), NewInfluencer{ImageURL: "x.jpg"})
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = repo.Create(context.Background(), NewInfluencer{Name: "Ayşe"})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestUpdateInfluencer_SingleField(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	category := "yaşam"
	// 只动 category 一列
	mock.ExpectExec(`UPDATE influencers`).
		WithArgs(int64(7), "yaşam").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 7, InfluencerPatch{Category: &category})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInfluencer_NameRegeneratesSlug(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	name := "Çağla Öztürk"
	mock.ExpectExec(`UPDATE influencers`).
		WithArgs(int64(7), "Çağla Öztürk", "cagla-ozturk").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 7, InfluencerPatch{Name: &name})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateInfluencer_EmptyPatch(t *testing.T) {
	db, _, repo := setupMockInfluencersDB(t)
	defer db.Close()

	err := repo.Update(context.Background(), 7, InfluencerPatch{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestUpdateInfluencer_NotFound(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	category := "moda"
	mock.ExpectExec(`UPDATE influencers`).
		WithArgs(int64(999), "moda").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), 999, InfluencerPatch{Category: &category})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSoftDeleteInfluencer(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE influencers`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SoftDelete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetInfluencerByID_NotFound(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	inf, err := repo.GetByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, inf)
}

// 软删除的行按 id 仍可读取（审计路径），查询不得附加 is_active 过滤
func TestGetInfluencerByID_IncludesSoftDeleted(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "slug", "category", "image_url", "specialties", "social_counts",
		"sort_order", "is_active", "created_at", "updated_at",
		"influencer_id", "bio", "location", "rating", "join_date", "total_reach",
		"campaigns_count", "email", "phone", "portfolio", "achievements",
		"recent_campaigns", "engagement_rate",
	}).AddRow(
		int64(7), "Ayşe Demir", "ayse-demir", "moda", "a.jpg", `["moda"]`, `{"instagram":"250K"}`,
		0, false, now, now,
		nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil,
		nil, nil,
	)

	// $ 锚定查询以 id 条件结尾
	mock.ExpectQuery(`WHERE i\.id = \$1$`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	inf, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, inf)
	assert.False(t, inf.Active)
	assert.Equal(t, "ayse-demir", inf.Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInfluencerSpecialties(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectQuery(`jsonb_array_elements_text`).
		WillReturnRows(sqlmock.NewRows([]string{"specialty"}).
			AddRow("gezi").AddRow("makyaj").AddRow("moda çekimi"))

	specialties, err := repo.Specialties(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"gezi", "makyaj", "moda çekimi"}, specialties)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInfluencerSpecialties_Search(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectQuery(`ILIKE`).
		WithArgs("mod").
		WillReturnRows(sqlmock.NewRows([]string{"specialty"}).AddRow("moda çekimi"))

	specialties, err := repo.Specialties(context.Background(), "mod")
	require.NoError(t, err)
	assert.Equal(t, []string{"moda çekimi"}, specialties)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDetail_InsertRequiresContact(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	bio := "moda içerik üreticisi"
	err := repo.UpsertDetail(context.Background(), 7, InfluencerDetailPatch{Bio: &bio})
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestUpsertDetail_InsertPath(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO influencer_details`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	email := "ayse@example.com"
	phone := "+90 555 111 22 33"
	err := repo.UpsertDetail(context.Background(), 7, InfluencerDetailPatch{
		Email: &email,
		Phone: &phone,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDetail_UpdatePath(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	// 更新路径和 influencers 表一样要带 updated_at = NOW()
	mock.ExpectExec(`UPDATE influencer_details\s+SET location = \$2, updated_at = NOW\(\)`).
		WithArgs(int64(7), "istanbul").
		WillReturnResult(sqlmock.NewResult(0, 1))

	location := "istanbul"
	err := repo.UpsertDetail(context.Background(), 7, InfluencerDetailPatch{Location: &location})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// updateDetail 依赖 influencer_details.updated_at，列必须在建表脚本里声明
func TestInfluencerDetailsSchemaHasUpdatedAt(t *testing.T) {
	ddl, err := os.ReadFile("../../db/migrations/0001_core.sql")
	require.NoError(t, err)

	start := strings.Index(string(ddl), "CREATE TABLE IF NOT EXISTS influencer_details")
	require.GreaterOrEqual(t, start, 0)
	rest := string(ddl)[start:]
	end := strings.Index(rest, ");")
	require.GreaterOrEqual(t, end, 0)

	table := rest[:end]
	assert.Contains(t, table, "updated_at")
	assert.Contains(t, table, "created_at")
}

func TestListInfluencers_ActiveOnlyOrdered(t *testing.T) {
	db, mock, repo := setupMockInfluencersDB(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "slug", "category", "image_url", "specialties", "social_counts",
		"sort_order", "is_active", "created_at", "updated_at",
	}).
		AddRow(int64(1), "Ayşe Demir", "ayse-demir", "moda", "a.jpg", `["moda"]`, `{"instagram":"250K"}`, 0, true, now, now).
		AddRow(int64(2), "Mert Kaya", "mert-kaya", "oyun", "m.jpg", nil, nil, 1, true, now, now)

	mock.ExpectQuery(`FROM influencers`).
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "ayse-demir", items[0].Slug)
	assert.Equal(t, []string{"moda"}, items[0].Specialties)
	assert.Equal(t, "250K", items[0].SocialCounts["instagram"])
	assert.Nil(t, items[1].Specialties)
}
