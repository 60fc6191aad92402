package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// AboutHandler 关于页内容：公开整页读 + 后台分族维护
type AboutHandler struct {
	repo   repository.AboutRepo
	audit  *auditor
	logger *zap.Logger
}

func NewAboutHandler(repo repository.AboutRepo, logs repository.LogsRepo, logger *zap.Logger) *AboutHandler {
	return &AboutHandler{
		repo:   repo,
		audit:  &auditor{logs: logs, logger: logger},
		logger: logger,
	}
}

// Get GET /api/about（mission/vision + stats + values + team 一次取回）
func (h *AboutHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	page, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.logger.Error("Load about page failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load about page"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(toAboutPageView(page)))
}

type updateAboutContentRequest struct {
	ID          int64     `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Icon        *string   `json:"icon"`
	Color       *string   `json:"color"`
	Features    *[]string `json:"features"`
	Active      *bool     `json:"is_active"`
}

func (h *AboutHandler) updateContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req updateAboutContentRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("content id is required"))
		return
	}

	err := h.repo.UpdateContent(r.Context(), req.ID, repository.AboutContentPatch{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		Features:    req.Features,
		Active:      req.Active,
	})
	if err != nil {
		h.writeUpdateError(w, "about content", req.ID, err)
		return
	}

	h.audit.record(r, "about_content_updated", "about_content", &req.ID, nil)
	writeJSON(w, http.StatusOK, OkMsg("about content updated", nil))
}

type aboutStatRequest struct {
	ID        int64   `json:"id"`
	Icon      *string `json:"icon"`
	Value     *string `json:"value"`
	Label     *string `json:"label"`
	Color     *string `json:"color"`
	SortOrder *int    `json:"sort_order"`
	Active    *bool   `json:"is_active"`
}

func (h *AboutHandler) stats(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req aboutStatRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		id, err := h.repo.CreateStat(r.Context(), repository.NewAboutStat{
			Icon:      strOrEmptyDeref(req.Icon),
			Value:     strOrEmptyDeref(req.Value),
			Label:     strOrEmptyDeref(req.Label),
			Color:     strOrEmptyDeref(req.Color),
			SortOrder: intOrZeroDeref(req.SortOrder),
		})
		if err != nil {
			h.writeCreateError(w, "about stat", err)
			return
		}
		h.audit.record(r, "about_stat_created", "about_stat", &id, nil)
		writeJSON(w, http.StatusOK, OkMsg("about stat created", map[string]any{"id": id}))

	case http.MethodPut:
		var req aboutStatRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		if req.ID == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("stat id is required"))
			return
		}
		err := h.repo.UpdateStat(r.Context(), req.ID, repository.AboutStatPatch{
			Icon:      req.Icon,
			Value:     req.Value,
			Label:     req.Label,
			Color:     req.Color,
			SortOrder: req.SortOrder,
			Active:    req.Active,
		})
		if err != nil {
			h.writeUpdateError(w, "about stat", req.ID, err)
			return
		}
		h.audit.record(r, "about_stat_updated", "about_stat", &req.ID, nil)
		writeJSON(w, http.StatusOK, OkMsg("about stat updated", nil))

	case http.MethodDelete:
		h.softDelete(w, r, "about stat", "about_stat_deleted", "about_stat", h.repo.SoftDeleteStat)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type aboutValueRequest struct {
	ID          int64   `json:"id"`
	Icon        *string `json:"icon"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	SortOrder   *int    `json:"sort_order"`
	Active      *bool   `json:"is_active"`
}

func (h *AboutHandler) values(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req aboutValueRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		id, err := h.repo.CreateValue(r.Context(), repository.NewAboutValue{
			Icon:        strOrEmptyDeref(req.Icon),
			Title:       strOrEmptyDeref(req.Title),
			Description: strOrEmptyDeref(req.Description),
			Color:       strOrEmptyDeref(req.Color),
			SortOrder:   intOrZeroDeref(req.SortOrder),
		})
		if err != nil {
			h.writeCreateError(w, "about value", err)
			return
		}
		h.audit.record(r, "about_value_created", "about_value", &id, nil)
		writeJSON(w, http.StatusOK, OkMsg("about value created", map[string]any{"id": id}))

	case http.MethodPut:
		var req aboutValueRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		if req.ID == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("value id is required"))
			return
		}
		err := h.repo.UpdateValue(r.Context(), req.ID, repository.AboutValuePatch{
			Icon:        req.Icon,
			Title:       req.Title,
			Description: req.Description,
			Color:       req.Color,
			SortOrder:   req.SortOrder,
			Active:      req.Active,
		})
		if err != nil {
			h.writeUpdateError(w, "about value", req.ID, err)
			return
		}
		h.audit.record(r, "about_value_updated", "about_value", &req.ID, nil)
		writeJSON(w, http.StatusOK, OkMsg("about value updated", nil))

	case http.MethodDelete:
		h.softDelete(w, r, "about value", "about_value_deleted", "about_value", h.repo.SoftDeleteValue)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type aboutTeamRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	ImageURL    *string `json:"image_url"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	Active      *bool   `json:"is_active"`
}

func (h *AboutHandler) team(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req aboutTeamRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		id, err := h.repo.CreateTeamMember(r.Context(), repository.NewAboutTeamMember{
			Name:        strOrEmptyDeref(req.Name),
			Role:        strOrEmptyDeref(req.Role),
			ImageURL:    strOrEmptyDeref(req.ImageURL),
			Description: strOrEmptyDeref(req.Description),
			SortOrder:   intOrZeroDeref(req.SortOrder),
		})
		if err != nil {
			h.writeCreateError(w, "team member", err)
			return
		}
		h.audit.record(r, "about_team_created", "about_team", &id, nil)
		writeJSON(w, http.StatusOK, OkMsg("team member created", map[string]any{"id": id}))

	case http.MethodPut:
		var req aboutTeamRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		if req.ID == 0 {
			writeJSON(w, http.StatusBadRequest, Fail("team member id is required"))
			return
		}
		err := h.repo.UpdateTeamMember(r.Context(), req.ID, repository.AboutTeamMemberPatch{
			Name:        req.Name,
			Role:        req.Role,
			ImageURL:    req.ImageURL,
			Description: req.Description,
			SortOrder:   req.SortOrder,
			Active:      req.Active,
		})
		if err != nil {
			h.writeUpdateError(w, "team member", req.ID, err)
			return
		}
		h.audit.record(r, "about_team_updated", "about_team", &req.ID, nil)
		writeJSON(w, http.StatusOK, OkMsg("team member updated", nil))

	case http.MethodDelete:
		h.softDelete(w, r, "team member", "about_team_deleted", "about_team", h.repo.SoftDeleteTeamMember)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// AdminByPath 分发 /api/admin/about/{content|stats|values|team}
func (h *AboutHandler) AdminByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/about/")
	switch strings.Trim(rest, "/") {
	case "content":
		h.updateContent(w, r)
	case "stats":
		h.stats(w, r)
	case "values":
		h.values(w, r)
	case "team":
		h.team(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *AboutHandler) softDelete(w http.ResponseWriter, r *http.Request, label, action, resourceType string, fn func(context.Context, int64) error) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id == 0 {
		writeJSON(w, http.StatusBadRequest, Fail(label+" id is required"))
		return
	}
	if err := fn(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, Fail(label+" not found"))
			return
		}
		h.logger.Error("Delete failed", zap.String("resource", label), zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to delete "+label))
		return
	}
	h.audit.record(r, action, resourceType, &id, nil)
	writeJSON(w, http.StatusOK, OkMsg(label+" deleted", nil))
}

func (h *AboutHandler) writeCreateError(w http.ResponseWriter, label string, err error) {
	if errors.Is(err, repository.ErrMissingField) {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	h.logger.Error("Create failed", zap.String("resource", label), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, Fail("failed to create "+label))
}

func (h *AboutHandler) writeUpdateError(w http.ResponseWriter, label string, id int64, err error) {
	switch {
	case errors.Is(err, repository.ErrNoFields):
		writeJSON(w, http.StatusBadRequest, Fail("no fields to update"))
	case errors.Is(err, sql.ErrNoRows):
		writeJSON(w, http.StatusNotFound, Fail(label+" not found"))
	default:
		h.logger.Error("Update failed", zap.String("resource", label), zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to update "+label))
	}
}

func strOrEmptyDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrZeroDeref(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
