package httpapi

import (
	"fmt"
	"net/http"

	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// ExportHandler 后台 xlsx 导出
type ExportHandler struct {
	influencers repository.InfluencersRepo
	logs        repository.LogsRepo
	logger      *zap.Logger
}

func NewExportHandler(influencers repository.InfluencersRepo, logs repository.LogsRepo, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{influencers: influencers, logs: logs, logger: logger}
}

// Influencers GET /api/admin/influencers/export
func (h *ExportHandler) Influencers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	items, err := h.influencers.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("Export influencers failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to export influencers"))
		return
	}
	data, err := GenerateInfluencerExport(items)
	if err != nil {
		h.logger.Error("Generate influencer export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}
	writeExcel(w, exportFilename("influencers"), data)
}

// PageViews GET /api/admin/logs/page-views/export
func (h *ExportHandler) PageViews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	// 导出最多取前 10000 条
	items, _, err := h.logs.ListPageViews(r.Context(), 1, 10000)
	if err != nil {
		h.logger.Error("Export page views failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to export page views"))
		return
	}
	data, err := GeneratePageViewExport(items)
	if err != nil {
		h.logger.Error("Generate page view export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}
	writeExcel(w, exportFilename("page_views"), data)
}

func writeExcel(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	_, _ = w.Write(data)
}
