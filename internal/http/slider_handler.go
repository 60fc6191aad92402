package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// SliderHandler 首页轮播图公开读 + 后台 CRUD + 排序移动
type SliderHandler struct {
	repo   repository.SliderRepo
	audit  *auditor
	logger *zap.Logger
}

func NewSliderHandler(repo repository.SliderRepo, logs repository.LogsRepo, logger *zap.Logger) *SliderHandler {
	return &SliderHandler{
		repo:   repo,
		audit:  &auditor{logs: logs, logger: logger},
		logger: logger,
	}
}

// List GET /api/slider
func (h *SliderHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("List slider images failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load slider images"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(toSliderViews(items)))
}

type createSliderRequest struct {
	ImageURL    string `json:"image_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

func (h *SliderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSliderRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	id, err := h.repo.Create(r.Context(), repository.NewSliderImage{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMissingField) {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("Create slider image failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to create slider image"))
		return
	}

	h.audit.record(r, "slider_created", "slider_image", &id, nil)
	writeJSON(w, http.StatusOK, OkMsg("slider image created", map[string]any{"id": id}))
}

type updateSliderRequest struct {
	ID          int64   `json:"id"`
	ImageURL    *string `json:"image_url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	Active      *bool   `json:"is_active"`
}

func (h *SliderHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSliderRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("slider image id is required"))
		return
	}

	err := h.repo.Update(r.Context(), req.ID, repository.SliderImagePatch{
		ImageURL:    req.ImageURL,
		Title:       req.Title,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		Active:      req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFields):
			writeJSON(w, http.StatusBadRequest, Fail("no fields to update"))
		case errors.Is(err, sql.ErrNoRows):
			writeJSON(w, http.StatusNotFound, Fail("slider image not found"))
		default:
			h.logger.Error("Update slider image failed", zap.Int64("id", req.ID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to update slider image"))
		}
		return
	}

	h.audit.record(r, "slider_updated", "slider_image", &req.ID, nil)
	writeJSON(w, http.StatusOK, OkMsg("slider image updated", nil))
}

func (h *SliderHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("slider image id is required"))
		return
	}
	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, Fail("slider image not found"))
			return
		}
		h.logger.Error("Delete slider image failed", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to delete slider image"))
		return
	}

	h.audit.record(r, "slider_deleted", "slider_image", &id, nil)
	writeJSON(w, http.StatusOK, OkMsg("slider image deleted", nil))
}

type moveSliderRequest struct {
	ID        int64  `json:"id"`
	Direction string `json:"direction"` // "up" | "down"
}

// Move POST /api/admin/slider/move：与相邻行交换 sort_order，边界是 no-op
func (h *SliderHandler) Move(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req moveSliderRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("slider image id is required"))
		return
	}
	if req.Direction != repository.MoveUp && req.Direction != repository.MoveDown {
		writeJSON(w, http.StatusBadRequest, Fail("direction must be up or down"))
		return
	}

	if err := h.repo.Move(r.Context(), req.ID, req.Direction); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, Fail("slider image not found"))
			return
		}
		h.logger.Error("Move slider image failed", zap.Int64("id", req.ID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to move slider image"))
		return
	}

	h.audit.record(r, "slider_moved", "slider_image", &req.ID, map[string]any{"direction": req.Direction})
	writeJSON(w, http.StatusOK, OkMsg("slider image moved", nil))
}

// AdminCollection 按方法分发 /api/admin/slider
func (h *SliderHandler) AdminCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
