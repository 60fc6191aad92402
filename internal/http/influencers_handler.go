package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kesif-backend/internal/domain"
	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// InfluencersHandler 网红公开读 + 后台 CRUD
type InfluencersHandler struct {
	repo   repository.InfluencersRepo
	audit  *auditor
	logger *zap.Logger
}

func NewInfluencersHandler(repo repository.InfluencersRepo, logs repository.LogsRepo, logger *zap.Logger) *InfluencersHandler {
	return &InfluencersHandler{
		repo:   repo,
		audit:  &auditor{logs: logs, logger: logger},
		logger: logger,
	}
}

// List GET /api/influencers?category=
func (h *InfluencersHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := h.repo.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("List influencers failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load influencers"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(toInfluencerViews(items)))
}

// Categories GET /api/influencers/categories
func (h *InfluencersHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	categories, err := h.repo.Categories(r.Context())
	if err != nil {
		h.logger.Error("List influencer categories failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load categories"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(categories))
}

// Specialties GET /api/admin/specialties?search=（向导第二步自动补全）
func (h *InfluencersHandler) Specialties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	specialties, err := h.repo.Specialties(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("List influencer specialties failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load specialties"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(specialties))
}

// GetBySlug GET /api/influencers/{slug}
func (h *InfluencersHandler) GetBySlug(w http.ResponseWriter, r *http.Request, slug string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	inf, err := h.repo.GetBySlug(r.Context(), slug)
	if err != nil {
		h.logger.Error("Get influencer by slug failed", zap.String("slug", slug), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load influencer"))
		return
	}
	if inf == nil {
		writeJSON(w, http.StatusNotFound, Fail("influencer not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(toInfluencerView(*inf)))
}

type createInfluencerRequest struct {
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	ImageURL     string            `json:"image_url"`
	Specialties  []string          `json:"specialties"`
	SocialCounts map[string]string `json:"social_media"`
	SortOrder    int               `json:"sort_order"`
}

// Create POST /api/admin/influencers（向导第一步）
func (h *InfluencersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInfluencerRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	id, err := h.repo.Create(r.Context(), repository.NewInfluencer{
		Name:         req.Name,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Specialties:  req.Specialties,
		SocialCounts: req.SocialCounts,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMissingField) {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("Create influencer failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to create influencer"))
		return
	}

	h.audit.record(r, "influencer_created", "influencer", &id, map[string]any{
		"name": req.Name, "category": req.Category,
	})
	writeJSON(w, http.StatusOK, OkMsg("influencer created", map[string]any{"id": id}))
}

type updateInfluencerRequest struct {
	ID           int64              `json:"id"`
	Name         *string            `json:"name"`
	Category     *string            `json:"category"`
	ImageURL     *string            `json:"image_url"`
	Specialties  *[]string          `json:"specialties"`
	SocialCounts *map[string]string `json:"social_media"`
	SortOrder    *int               `json:"sort_order"`
	Active       *bool              `json:"is_active"`
}

// Update PUT /api/admin/influencers（稀疏更新，缺席字段不动）
func (h *InfluencersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateInfluencerRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("influencer id is required"))
		return
	}

	err := h.repo.Update(r.Context(), req.ID, repository.InfluencerPatch{
		Name:         req.Name,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		Specialties:  req.Specialties,
		SocialCounts: req.SocialCounts,
		SortOrder:    req.SortOrder,
		Active:       req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFields):
			writeJSON(w, http.StatusBadRequest, Fail("no fields to update"))
		case errors.Is(err, sql.ErrNoRows):
			writeJSON(w, http.StatusNotFound, Fail("influencer not found"))
		default:
			h.logger.Error("Update influencer failed", zap.Int64("id", req.ID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to update influencer"))
		}
		return
	}

	h.audit.record(r, "influencer_updated", "influencer", &req.ID, nil)
	writeJSON(w, http.StatusOK, OkMsg("influencer updated", nil))
}

// Delete DELETE /api/admin/influencers?id=（软删除）
func (h *InfluencersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("influencer id is required"))
		return
	}
	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, Fail("influencer not found"))
			return
		}
		h.logger.Error("Delete influencer failed", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to delete influencer"))
		return
	}

	h.audit.record(r, "influencer_deleted", "influencer", &id, nil)
	writeJSON(w, http.StatusOK, OkMsg("influencer deleted", nil))
}

type upsertDetailRequest struct {
	InfluencerID    int64                    `json:"influencer_id"`
	Bio             *string                  `json:"bio"`
	Location        *string                  `json:"location"`
	Rating          *float64                 `json:"rating"`
	JoinDate        *string                  `json:"join_date"`
	TotalReach      *string                  `json:"total_reach"`
	CampaignsCount  *int                     `json:"campaigns_count"`
	Email           *string                  `json:"email"`
	Phone           *string                  `json:"phone"`
	EngagementRate  *string                  `json:"engagement_rate"`
	Portfolio       *[]string                `json:"portfolio"`
	Achievements    *[]string                `json:"achievements"`
	RecentCampaigns *[]domain.RecentCampaign `json:"recent_campaigns"`
}

// UpsertDetails POST /api/admin/influencers/details（向导第二步，可重试）
func (h *InfluencersHandler) UpsertDetails(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req upsertDetailRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.InfluencerID == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("influencer id is required"))
		return
	}

	err := h.repo.UpsertDetail(r.Context(), req.InfluencerID, repository.InfluencerDetailPatch{
		Bio:             req.Bio,
		Location:        req.Location,
		Rating:          req.Rating,
		JoinDate:        req.JoinDate,
		TotalReach:      req.TotalReach,
		CampaignsCount:  req.CampaignsCount,
		Email:           req.Email,
		Phone:           req.Phone,
		EngagementRate:  req.EngagementRate,
		Portfolio:       req.Portfolio,
		Achievements:    req.Achievements,
		RecentCampaigns: req.RecentCampaigns,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMissingField) {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("Upsert influencer details failed", zap.Int64("influencer_id", req.InfluencerID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to save influencer details"))
		return
	}

	details := map[string]any{}
	if req.Email != nil {
		details["email"] = *req.Email
	}
	if req.Phone != nil {
		details["phone"] = *req.Phone
	}
	h.audit.record(r, "influencer_details_added", "influencer_details", &req.InfluencerID, details)
	writeJSON(w, http.StatusOK, OkMsg("influencer details saved", nil))
}

// AdminCollection 按方法分发 /api/admin/influencers
func (h *InfluencersHandler) AdminCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.Create(w, r)
	case http.MethodPut:
		h.Update(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// PublicByPath 分发 /api/influencers 与 /api/influencers/{slug|categories}
func (h *InfluencersHandler) PublicByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/influencers")
	rest = strings.Trim(rest, "/")
	switch {
	case rest == "":
		h.List(w, r)
	case rest == "categories":
		h.Categories(w, r)
	case !strings.Contains(rest, "/"):
		h.GetBySlug(w, r, rest)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
