package httpapi

import (
	"encoding/json"
	"net/http"

	"kesif-backend/internal/domain"
	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// auditor 把后台写操作落到 audit_logs。写失败只记日志，从不影响主操作
type auditor struct {
	logs   repository.LogsRepo
	logger *zap.Logger
}

func (a *auditor) record(r *http.Request, action, resourceType string, resourceID *int64, details map[string]any) {
	var raw json.RawMessage
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			raw = b
		}
	}
	var userID *int64
	if sess := sessionFromContext(r.Context()); sess != nil {
		userID = &sess.UserID
	}
	if err := a.logs.InsertAuditLog(r.Context(), domain.AuditLog{
		UserID:       userID,
		IPAddress:    clientIP(r),
		UserAgent:    r.UserAgent(),
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      raw,
	}); err != nil {
		a.logger.Warn("Failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
