package httpapi

import (
	"net/http"
	"strings"

	"kesif-backend/internal/domain"
	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// LogsHandler 公开埋点写入（fire-and-forget）+ 后台日志分页读 + dashboard
type LogsHandler struct {
	repo   repository.LogsRepo
	logger *zap.Logger
}

func NewLogsHandler(repo repository.LogsRepo, logger *zap.Logger) *LogsHandler {
	return &LogsHandler{repo: repo, logger: logger}
}

type pageViewRequest struct {
	PagePath        string `json:"page_path"`
	PageTitle       string `json:"page_title"`
	SessionID       string `json:"session_id"`
	Referrer        string `json:"referrer"`
	DurationSeconds int    `json:"duration_seconds"`
}

// PageView POST /api/log/page-view
// 埋点失败只记日志，响应总是 success：不能让统计故障影响前台页面
func (h *LogsHandler) PageView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req pageViewRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil || req.PagePath == "" {
		writeJSON(w, http.StatusOK, Ok(nil))
		return
	}

	if err := h.repo.InsertPageView(r.Context(), domain.PageView{
		PagePath:        req.PagePath,
		PageTitle:       req.PageTitle,
		SessionID:       req.SessionID,
		IPAddress:       clientIP(r),
		UserAgent:       r.UserAgent(),
		Referrer:        req.Referrer,
		DurationSeconds: req.DurationSeconds,
	}); err != nil {
		h.logger.Warn("Failed to record page view", zap.String("page_path", req.PagePath), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, Ok(nil))
}

type influencerClickRequest struct {
	InfluencerID   int64  `json:"influencer_id"`
	SessionID      string `json:"session_id"`
	SourcePage     string `json:"source_page"`
	ClickType      string `json:"click_type"`
	SocialPlatform string `json:"social_platform"`
}

// InfluencerClick POST /api/log/influencer-click，同样 fire-and-forget
func (h *LogsHandler) InfluencerClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req influencerClickRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil || req.InfluencerID == 0 {
		writeJSON(w, http.StatusOK, Ok(nil))
		return
	}
	if req.ClickType == "" {
		req.ClickType = domain.ClickProfileView
	}

	if err := h.repo.InsertClick(r.Context(), domain.InfluencerClick{
		InfluencerID:   req.InfluencerID,
		SessionID:      req.SessionID,
		IPAddress:      clientIP(r),
		UserAgent:      r.UserAgent(),
		SourcePage:     req.SourcePage,
		ClickType:      req.ClickType,
		SocialPlatform: req.SocialPlatform,
	}); err != nil {
		h.logger.Warn("Failed to record influencer click", zap.Int64("influencer_id", req.InfluencerID), zap.Error(err))
	}
	writeJSON(w, http.StatusOK, Ok(nil))
}

// AdminByPath 分发 /api/admin/logs/{audit|page-views|clicks}（分页）
func (h *LogsHandler) AdminByPath(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	page := parseInt(r.URL.Query().Get("page"), 1)
	size := parseInt(r.URL.Query().Get("size"), 50)

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/admin/logs/"), "/")
	switch rest {
	case "audit":
		items, total, err := h.repo.ListAuditLogs(r.Context(), page, size)
		if err != nil {
			h.logger.Error("List audit logs failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to load audit logs"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(pagedView{Items: toAuditLogViews(items), Total: total, Page: page, Size: size}))

	case "page-views":
		items, total, err := h.repo.ListPageViews(r.Context(), page, size)
		if err != nil {
			h.logger.Error("List page views failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to load page views"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(pagedView{Items: toPageViewViews(items), Total: total, Page: page, Size: size}))

	case "clicks":
		items, total, err := h.repo.ListClicks(r.Context(), page, size)
		if err != nil {
			h.logger.Error("List influencer clicks failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to load influencer clicks"))
			return
		}
		writeJSON(w, http.StatusOK, Ok(pagedView{Items: toClickViews(items), Total: total, Page: page, Size: size}))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// Dashboard GET /api/admin/dashboard
func (h *LogsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stats, err := h.repo.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("Load dashboard stats failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load dashboard"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(toDashboardView(stats)))
}
