package httpapi

import (
	"errors"
	"net/http"

	"kesif-backend/internal/service"

	"go.uber.org/zap"
)

// AuthHandler 后台登录：第一步邮箱+密码，第二步邮件验证码
type AuthHandler struct {
	auth   service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	OTPCode  string `json:"otp_code"`
}

// Login POST /api/admin/auth/login
// 带 otp_code 走第二步验证，否则走第一步密码校验并发码
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.Email == "" {
		writeJSON(w, http.StatusBadRequest, Fail("email is required"))
		return
	}

	ip := clientIP(r)
	ua := r.UserAgent()

	if req.OTPCode != "" {
		result, err := h.auth.VerifyCode(r.Context(), service.VerifyCodeRequest{
			Email:     req.Email,
			Code:      req.OTPCode,
			IPAddress: ip,
			UserAgent: ua,
		})
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				writeJSON(w, http.StatusUnauthorized, Fail("invalid verification code"))
				return
			}
			h.logger.Error("Verify code failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail("server error"))
			return
		}
		writeJSON(w, http.StatusOK, OkMsg("login successful", map[string]any{
			"token": result.Token,
			"user":  toAdminUserView(result.User),
		}))
		return
	}

	if req.Password == "" {
		writeJSON(w, http.StatusBadRequest, Fail("password is required"))
		return
	}
	if err := h.auth.Login(r.Context(), service.LoginRequest{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: ip,
		UserAgent: ua,
	}); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, Fail("invalid email or password"))
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("server error"))
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("verification code sent", map[string]any{
		"requires_otp": true,
	}))
}

// Logout POST /api/admin/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := h.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("server error"))
		return
	}
	writeJSON(w, http.StatusOK, OkMsg("logged out", nil))
}
