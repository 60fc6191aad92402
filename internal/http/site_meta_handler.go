package httpapi

import (
	"net/http"

	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// SiteMetaHandler 页面 SEO 元数据：公开按路径读 + 后台 upsert
type SiteMetaHandler struct {
	repo   repository.SiteMetaRepo
	audit  *auditor
	logger *zap.Logger
}

func NewSiteMetaHandler(repo repository.SiteMetaRepo, logs repository.LogsRepo, logger *zap.Logger) *SiteMetaHandler {
	return &SiteMetaHandler{
		repo:   repo,
		audit:  &auditor{logs: logs, logger: logger},
		logger: logger,
	}
}

// Get GET /api/meta?path=/influencers
func (h *SiteMetaHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pagePath := r.URL.Query().Get("path")
	if pagePath == "" {
		writeJSON(w, http.StatusBadRequest, Fail("path is required"))
		return
	}
	meta, err := h.repo.GetByPath(r.Context(), pagePath)
	if err != nil {
		h.logger.Error("Get site meta failed", zap.String("path", pagePath), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load site meta"))
		return
	}
	if meta == nil {
		writeJSON(w, http.StatusNotFound, Fail("site meta not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(toSiteMetaView(meta)))
}

type siteMetaUpsertRequest struct {
	PagePath           string `json:"page_path"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords"`
	OGTitle            string `json:"og_title"`
	OGDescription      string `json:"og_description"`
	OGImage            string `json:"og_image"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
	TwitterImage       string `json:"twitter_image"`
	CanonicalURL       string `json:"canonical_url"`
}

// Admin /api/admin/meta：GET 列表，POST/PUT upsert
func (h *SiteMetaHandler) Admin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := h.repo.List(r.Context())
		if err != nil {
			h.logger.Error("List site meta failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to load site meta"))
			return
		}
		views := make([]siteMetaView, 0, len(items))
		for i := range items {
			views = append(views, toSiteMetaView(&items[i]))
		}
		writeJSON(w, http.StatusOK, Ok(views))

	case http.MethodPost, http.MethodPut:
		var req siteMetaUpsertRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
			return
		}
		if req.PagePath == "" || req.Title == "" || req.Description == "" {
			writeJSON(w, http.StatusBadRequest, Fail("page_path, title and description are required"))
			return
		}
		err := h.repo.Upsert(r.Context(), repository.SiteMetaUpsert{
			PagePath:           req.PagePath,
			Title:              req.Title,
			Description:        req.Description,
			Keywords:           req.Keywords,
			OGTitle:            req.OGTitle,
			OGDescription:      req.OGDescription,
			OGImage:            req.OGImage,
			TwitterTitle:       req.TwitterTitle,
			TwitterDescription: req.TwitterDescription,
			TwitterImage:       req.TwitterImage,
			CanonicalURL:       req.CanonicalURL,
		})
		if err != nil {
			h.logger.Error("Upsert site meta failed", zap.String("path", req.PagePath), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to save site meta"))
			return
		}
		h.audit.record(r, "site_meta_saved", "site_meta", nil, map[string]any{"page_path": req.PagePath})
		writeJSON(w, http.StatusOK, OkMsg("site meta saved", nil))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
