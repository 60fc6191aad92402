package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"kesif-backend/internal/domain"
	"kesif-backend/internal/repository"

	"go.uber.org/zap"
)

// AdminsHandler 管理员账号维护，仅 super_admin 可用
type AdminsHandler struct {
	repo   repository.AdminsRepo
	audit  *auditor
	logger *zap.Logger
}

func NewAdminsHandler(repo repository.AdminsRepo, logs repository.LogsRepo, logger *zap.Logger) *AdminsHandler {
	return &AdminsHandler{
		repo:   repo,
		audit:  &auditor{logs: logs, logger: logger},
		logger: logger,
	}
}

func (h *AdminsHandler) requireSuperAdmin(w http.ResponseWriter, r *http.Request) bool {
	sess := sessionFromContext(r.Context())
	if sess == nil || sess.Role != domain.RoleSuperAdmin {
		writeJSON(w, http.StatusForbidden, Fail("super admin required"))
		return false
	}
	return true
}

func (h *AdminsHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("List admin users failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load admin users"))
		return
	}
	views := make([]adminUserView, 0, len(users))
	for i := range users {
		views = append(views, toAdminUserView(&users[i]))
	}
	writeJSON(w, http.StatusOK, Ok(views))
}

type createAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (h *AdminsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	id, err := h.repo.Create(r.Context(), repository.NewAdminUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrMissingField) {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		h.logger.Error("Create admin user failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to create admin user"))
		return
	}

	h.audit.record(r, "admin_user_created", "admin_user", &id, map[string]any{"email": req.Email})
	writeJSON(w, http.StatusOK, OkMsg("admin user created", map[string]any{"id": id}))
}

type updateAdminRequest struct {
	ID       int64   `json:"id"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Active   *bool   `json:"is_active"`
	Password *string `json:"password"`
}

func (h *AdminsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateAdminRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("admin user id is required"))
		return
	}

	if req.Password != nil && *req.Password != "" {
		if err := h.repo.ChangePassword(r.Context(), req.ID, *req.Password); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeJSON(w, http.StatusNotFound, Fail("admin user not found"))
				return
			}
			h.logger.Error("Change admin password failed", zap.Int64("id", req.ID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to change password"))
			return
		}
		h.audit.record(r, "admin_password_changed", "admin_user", &req.ID, nil)
	}

	patch := repository.AdminUserPatch{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		Active:   req.Active,
	}
	if patch.Username == nil && patch.Email == nil && patch.FullName == nil && patch.Role == nil && patch.Active == nil {
		// 纯改密请求
		writeJSON(w, http.StatusOK, OkMsg("admin user updated", nil))
		return
	}

	if err := h.repo.Update(r.Context(), req.ID, patch); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoFields):
			writeJSON(w, http.StatusBadRequest, Fail("no fields to update"))
		case errors.Is(err, sql.ErrNoRows):
			writeJSON(w, http.StatusNotFound, Fail("admin user not found"))
		default:
			h.logger.Error("Update admin user failed", zap.Int64("id", req.ID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("failed to update admin user"))
		}
		return
	}

	h.audit.record(r, "admin_user_updated", "admin_user", &req.ID, nil)
	writeJSON(w, http.StatusOK, OkMsg("admin user updated", nil))
}

func (h *AdminsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id == 0 {
		writeJSON(w, http.StatusBadRequest, Fail("admin user id is required"))
		return
	}
	if sess := sessionFromContext(r.Context()); sess != nil && sess.UserID == id {
		writeJSON(w, http.StatusBadRequest, Fail("cannot delete your own account"))
		return
	}
	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, Fail("admin user not found"))
			return
		}
		h.logger.Error("Delete admin user failed", zap.Int64("id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to delete admin user"))
		return
	}

	h.audit.record(r, "admin_user_deleted", "admin_user", &id, nil)
	writeJSON(w, http.StatusOK, OkMsg("admin user deleted", nil))
}

// Collection 按方法分发 /api/admin/users
func (h *AdminsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if !h.requireSuperAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
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
