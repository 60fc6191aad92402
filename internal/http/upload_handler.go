package httpapi

import (
	"errors"
	"net/http"

	"kesif-backend/internal/storage"

	"go.uber.org/zap"
)

// UploadHandler POST /api/admin/upload：multipart 图片上传，返回公开 URL
type UploadHandler struct {
	uploader storage.Uploader
	logger   *zap.Logger
}

func NewUploadHandler(uploader storage.Uploader, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, logger: logger}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// 5MB 限制 + multipart 解析余量
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxUploadBytes+(1<<20))
	if err := r.ParseMultipartForm(storage.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("file too large or malformed upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("file field is required"))
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(r.Context(), file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrTooLarge):
			writeJSON(w, http.StatusBadRequest, Fail("file exceeds 5MB limit"))
		case errors.Is(err, storage.ErrUnsupportedType):
			writeJSON(w, http.StatusBadRequest, Fail("only jpeg, png and webp images are allowed"))
		default:
			h.logger.Error("Upload failed", zap.String("filename", header.Filename), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("upload failed"))
		}
		return
	}

	writeJSON(w, http.StatusOK, OkMsg("file uploaded", map[string]any{"url": url}))
}
