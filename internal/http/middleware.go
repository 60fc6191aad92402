package httpapi

import (
	"context"
	"net/http"

	"kesif-backend/internal/service"
	"kesif-backend/internal/store"

	"go.uber.org/zap"
)

type sessionContextKey struct{}

// sessionFromContext 取经过中间件校验的会话，未登录为 nil
func sessionFromContext(ctx context.Context) *store.Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*store.Session)
	return sess
}

// RequireSession 保护 /api/admin/* 路由：无有效会话一律 401
func RequireSession(auth service.AuthService, logger *zap.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, Fail("authentication required"))
			return
		}
		sess, err := auth.Authenticate(r.Context(), token)
		if err != nil {
			logger.Error("Session lookup failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("server error"))
			return
		}
		if sess == nil {
			writeJSON(w, http.StatusUnauthorized, Fail("session expired"))
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey{}, sess)
		next(w, r.WithContext(ctx))
	}
}
