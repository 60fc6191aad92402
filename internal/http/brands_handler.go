package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// BrandsHandler 品牌公开读 + 后台 CRUD
type BrandsHandler struct {
	repo   repository.BrandsRepo
	audit  *auditor
	logger *zap.Logger
}

func NewBrandsHandler(repo repository.BrandsRepo, logs repository.LogsRepo, logger *zap.Logger) *BrandsHandler {
	return &BrandsHandler{
		repo:   repo,
		audit:  &auditor{logs: logs, logger: logger},
		logger: logger,
	}
}

// List GET /api/brands?category=
func (h *BrandsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := h.repo.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("List brands failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load brands"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(toBrandViews(items)))
}

type createBrandRequest struct {
	Name       string `json:"name"`
	LogoURL    string `json:"logo_url"`
	WebsiteURL string `json:"website_url"`
	Category   string `json:"category"`
	SortOrder  int    `json:"sort_order"`
}

func (h *BrandsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createBrandRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	id, err := h.repo.Create(r.Context(), repository.NewBrand{
		Name:       req.Name,
		LogoURL:    req.LogoURL,
		WebsiteURL: req.WebsiteURL,
		Category:   req.Category,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMissingField) {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("Create brand failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to create brand"))
		return
	}

	h.audit.record(r, "brand_created", "brand", &id, map[string]any{"name": req.Name})
	writeJSON(w, http.StatusOK, OkMsg("brand created", map[string]any{"id": id}))
}

type updateBrandRequest struct {
	ID         int64   `json:"id"`
	Name       *string `json:"name"`
	LogoURL    *string `json:"logo_url"`
	WebsiteURL *string `json:"website_url"`
	Category   *string `json:"category"`
	SortOrder  *int    `json:"sort_order"`
	Active     *bool   `json:"is_active"`
}

func (h *BrandsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateBrandRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("brand id is required"))
		return
	}

	err := h.repo.Update(r.Context(), req.ID, repository.BrandPatch{
		Name:       req.Name,
		LogoURL:    req.LogoURL,
		WebsiteURL: req.WebsiteURL,
		Category:   req.Category,
		SortOrder:  req.SortOrder,
		Active:     req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFields):
			writeJSON(w, http.StatusBadRequest, Fail("no fields to update"))
		case errors.Is(err, sql.ErrNoRows):
			writeJSON(w, http.StatusNotFound, Fail("brand not found"))
		default:
			h.logger.Error("Update brand failed", zap.Int64("id", req.ID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to update brand"))
		}
		return
	}

	h.audit.record(r, "brand_updated", "brand", &req.ID, nil)
	writeJSON(w, http.StatusOK, OkMsg("brand updated", nil))
}

func (h *BrandsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("brand id is required"))
		return
	}
	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, Fail("brand not found"))
			return
		}
		h.logger.Error("Delete brand failed", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to delete brand"))
		return
	}

	h.audit.record(r, "brand_deleted", "brand", &id, nil)
	writeJSON(w, http.StatusOK, OkMsg("brand deleted", nil))
}

// AdminCollection 按方法分发 /api/admin/brands
func (h *BrandsHandler) AdminCollection(w http.ResponseWriter, r *http.Request) {
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
