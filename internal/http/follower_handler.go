package httpapi

import (
	"net/http"
	"strings"

	"kesif-backend/internal/service"
)

// FollowerHandler GET /api/follower/{username}
// 查询结果总是 200：查不到时 followers 为 NOT_FOUND 哨兵值
type FollowerHandler struct {
	lookup *service.FollowerLookupService
}

func NewFollowerHandler(lookup *service.FollowerLookupService) *FollowerHandler {
	return &FollowerHandler{lookup: lookup}
}

func (h *FollowerHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	username := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/follower/"), "/")
	if username == "" || strings.Contains(username, "/") {
		writeJSON(w, http.StatusBadRequest, Fail("username is required"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.lookup.Lookup(r.Context(), username)))
}
