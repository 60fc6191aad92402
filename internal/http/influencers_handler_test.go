package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kesif-backend/internal/domain"
	"kesif-backend/internal/repository"
)

// fakeInfluencersRepo 内存实现，只覆盖 handler 测试需要的行为
type fakeInfluencersRepo struct {
	items     []domain.Influencer
	created   []repository.NewInfluencer
	updates   map[int64]repository.InfluencerPatch
	deleted   []int64
	updateErr error
}

var _ repository.InfluencersRepo = (*fakeInfluencersRepo)(nil)

func (f *fakeInfluencersRepo) List(_ context.Context, category string) ([]domain.Influencer, error) {
	if category == "" || category == "all" {
		return f.items, nil
	}
	out := []domain.Influencer{}
	for _, it := range f.items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInfluencersRepo) GetByID(_ context.Context, id int64) (*domain.Influencer, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInfluencersRepo) GetBySlug(_ context.Context, slug string) (*domain.Influencer, error) {
	for i := range f.items {
		if f.items[i].Slug == slug {
			return &f.items[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInfluencersRepo) Categories(context.Context) ([]string, error) {
	return []string{"moda", "oyun"}, nil
}

func (f *fakeInfluencersRepo) Specialties(_ context.Context, search string) ([]string, error) {
	all := []string{"gezi", "makyaj", "moda çekimi"}
	if search == "" {
		return all, nil
	}
	out := []string{}
	for _, s := range all {
		if strings.Contains(strings.ToLower(s), strings.ToLower(search)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeInfluencersRepo) Create(_ context.Context, in repository.NewInfluencer) (int64, error) {
	if in.Name == "" || in.ImageURL == "" {
		return 0, repository.ErrMissingField
	}
	f.created = append(f.created, in)
	return int64(len(f.created)), nil
}

func (f *fakeInfluencersRepo) Update(_ context.Context, id int64, patch repository.InfluencerPatch) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.updates == nil {
		f.updates = map[int64]repository.InfluencerPatch{}
	}
	f.updates[id] = patch
	return nil
}

func (f *fakeInfluencersRepo) SoftDelete(_ context.Context, id int64) error {
	for _, it := range f.items {
		if it.ID == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeInfluencersRepo) UpsertDetail(_ context.Context, _ int64, patch repository.InfluencerDetailPatch) error {
	if patch.Email == nil || patch.Phone == nil {
		return repository.ErrMissingField
	}
	return nil
}

// fakeLogsSink 只记录写入的埋点，读端返回空
type fakeLogsSink struct {
	auditLogs []domain.AuditLog
	pageViews []domain.PageView
	clicks    []domain.InfluencerClick
	insertErr error
}

var _ repository.LogsRepo = (*fakeLogsSink)(nil)

func (f *fakeLogsSink) InsertAuditLog(_ context.Context, e domain.AuditLog) error {
	f.auditLogs = append(f.auditLogs, e)
	return nil
}

func (f *fakeLogsSink) InsertPageView(_ context.Context, v domain.PageView) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.pageViews = append(f.pageViews, v)
	return nil
}

func (f *fakeLogsSink) InsertClick(_ context.Context, c domain.InfluencerClick) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.clicks = append(f.clicks, c)
	return nil
}

func (f *fakeLogsSink) ListAuditLogs(context.Context, int, int) ([]domain.AuditLog, int, error) {
	return f.auditLogs, len(f.auditLogs), nil
}

func (f *fakeLogsSink) ListPageViews(context.Context, int, int) ([]domain.PageView, int, error) {
	return f.pageViews, len(f.pageViews), nil
}

func (f *fakeLogsSink) ListClicks(context.Context, int, int) ([]domain.InfluencerClick, int, error) {
	return f.clicks, len(f.clicks), nil
}

func (f *fakeLogsSink) DashboardStats(context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{}, nil
}

func testInfluencer(id int64, name, slug, category string) domain.Influencer {
	return domain.Influencer{
		ID:           id,
		Name:         name,
		Slug:         slug,
		Category:     category,
		ImageURL:     "https://cdn.example.com/" + slug + ".jpg",
		SocialCounts: map[string]string{"instagram": "250K"},
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) Result {
	t.Helper()
	var res Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestInfluencersPublicList(t *testing.T) {
	repo := &fakeInfluencersRepo{items: []domain.Influencer{
		testInfluencer(1, "Ayşe Demir", "ayse-demir", "moda"),
		testInfluencer(2, "Mert Kaya", "mert-kaya", "oyun"),
	}}
	h := NewInfluencersHandler(repo, &fakeLogsSink{}, zap.NewNop())

	w := httptest.NewRecorder()
	h.PublicByPath(w, httptest.NewRequest(http.MethodGet, "/api/influencers?category=moda", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.True(t, res.Success)

	items, ok := res.Data.([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "ayse-demir", first["slug"])
	// 社媒计数对外用 social_media 字段名
	assert.Contains(t, first, "social_media")
}

func TestInfluencersPublicBySlug_NotFound(t *testing.T) {
	h := NewInfluencersHandler(&fakeInfluencersRepo{}, &fakeLogsSink{}, zap.NewNop())

	w := httptest.NewRecorder()
	h.PublicByPath(w, httptest.NewRequest(http.MethodGet, "/api/influencers/kimse-yok", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decodeResult(t, w).Success)
}

func TestInfluencersPublicCategories(t *testing.T) {
	h := NewInfluencersHandler(&fakeInfluencersRepo{}, &fakeLogsSink{}, zap.NewNop())

	w := httptest.NewRecorder()
	h.PublicByPath(w, httptest.NewRequest(http.MethodGet, "/api/influencers/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.Equal(t, []any{"moda", "oyun"}, res.Data)
}

func TestInfluencerSpecialties_SearchFilter(t *testing.T) {
	h := NewInfluencersHandler(&fakeInfluencersRepo{}, &fakeLogsSink{}, zap.NewNop())

	w := httptest.NewRecorder()
	h.Specialties(w, httptest.NewRequest(http.MethodGet, "/api/admin/specialties", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"gezi", "makyaj", "moda çekimi"}, decodeResult(t, w).Data)

	w = httptest.NewRecorder()
	h.Specialties(w, httptest.NewRequest(http.MethodGet, "/api/admin/specialties?search=mod", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"moda çekimi"}, decodeResult(t, w).Data)
}

func TestCreateInfluencer_WritesAuditLog(t *testing.T) {
	repo := &fakeInfluencersRepo{}
	logs := &fakeLogsSink{}
	h := NewInfluencersHandler(repo, logs, zap.NewNop())

	body, _ := json.Marshal(map[string]any{
		"name":         "Ayşe Demir",
		"category":     "moda",
		"image_url":    "https://cdn.example.com/a.jpg",
		"social_media": map[string]string{"instagram": "250K"},
	})
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/influencers", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "Ayşe Demir", repo.created[0].Name)
	require.Len(t, logs.auditLogs, 1)
	assert.Equal(t, "influencer_created", logs.auditLogs[0].Action)
}

func TestCreateInfluencer_MissingFields(t *testing.T) {
	h := NewInfluencersHandler(&fakeInfluencersRepo{}, &fakeLogsSink{}, zap.NewNop())

	body, _ := json.Marshal(map[string]any{"category": "moda"})
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/admin/influencers", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateInfluencer_PartialPatch(t *testing.T) {
	repo := &fakeInfluencersRepo{}
	h := NewInfluencersHandler(repo, &fakeLogsSink{}, zap.NewNop())

	body := []byte(`{"id": 7, "category": "yaşam"}`)
	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPut, "/api/admin/influencers", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	patch := repo.updates[7]
	require.NotNil(t, patch.Category)
	assert.Equal(t, "yaşam", *patch.Category)
	// 缺席字段必须保持 nil，否则会覆盖存储值
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Active)
}

func TestUpdateInfluencer_ErrorMapping(t *testing.T) {
	h := NewInfluencersHandler(&fakeInfluencersRepo{updateErr: repository.ErrNoFields}, &fakeLogsSink{}, zap.NewNop())

	w := httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPut, "/api/admin/influencers", bytes.NewReader([]byte(`{"id": 7}`))))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	h = NewInfluencersHandler(&fakeInfluencersRepo{updateErr: sql.ErrNoRows}, &fakeLogsSink{}, zap.NewNop())
	w = httptest.NewRecorder()
	h.Update(w, httptest.NewRequest(http.MethodPut, "/api/admin/influencers", bytes.NewReader([]byte(`{"id": 7, "category": "x"}`))))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteInfluencer(t *testing.T) {
	repo := &fakeInfluencersRepo{items: []domain.Influencer{testInfluencer(7, "Ayşe", "ayse", "moda")}}
	h := NewInfluencersHandler(repo, &fakeLogsSink{}, zap.NewNop())

	w := httptest.NewRecorder()
	h.Delete(w, httptest.NewRequest(http.MethodDelete, "/api/admin/influencers?id=7", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{7}, repo.deleted)

	// 未知 id → 404
	w = httptest.NewRecorder()
	h.Delete(w, httptest.NewRequest(http.MethodDelete, "/api/admin/influencers?id=999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
