package service

import (
	"context"
	"encoding/json"
	"fmt"

	"kesif-backend/internal/domain"
	"kesif-backend/internal/repository"
	"kesif-backend/internal/store"

	"go.uber.org/zap"
)

// AuthService 后台认证：密码 + 邮件验证码两步登录
type AuthService interface {
	// Login 校验邮箱密码，通过后签发验证码并发邮件；不回传会话
	Login(ctx context.Context, req LoginRequest) error

	// VerifyCode 校验验证码，通过后建立会话并返回 token 和用户信息
	VerifyCode(ctx context.Context, req VerifyCodeRequest) (*LoginResult, error)

	// Logout 注销会话，token 无效也视为成功
	Logout(ctx context.Context, token string) error

	// Authenticate 按 token 取会话，无效返回 (nil, nil)
	Authenticate(ctx context.Context, token string) (*store.Session, error)
}

// LoginRequest 第一步登录请求
type LoginRequest struct {
	Email     string
	Password  string
	IPAddress string
	UserAgent string
}

// VerifyCodeRequest 第二步验证码请求
type VerifyCodeRequest struct {
	Email     string
	Code      string
	IPAddress string
	UserAgent string
}

// LoginResult 登录成功响应
type LoginResult struct {
	Token string            `json:"token"`
	User  *domain.AdminUser `json:"user"`
}

// ErrInvalidCredentials 账号不存在、密码不符、验证码无效时统一返回，不区分原因
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

type authService struct {
	admins   repository.AdminsRepo
	codes    repository.AccessCodesRepo
	logs     repository.LogsRepo
	sessions *store.SessionStore
	mailer   *Mailer
	logger   *zap.Logger
}

func NewAuthService(
	admins repository.AdminsRepo,
	codes repository.AccessCodesRepo,
	logs repository.LogsRepo,
	sessions *store.SessionStore,
	mailer *Mailer,
	logger *zap.Logger,
) AuthService {
	return &authService{
		admins:   admins,
		codes:    codes,
		logs:     logs,
		sessions: sessions,
		mailer:   mailer,
		logger:   logger,
	}
}

func (s *authService) Login(ctx context.Context, req LoginRequest) error {
	if req.Email == "" || req.Password == "" {
		return ErrInvalidCredentials
	}

	user, err := s.admins.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	if user == nil {
		s.logger.Warn("Admin login failed: invalid credentials",
			zap.String("email", req.Email),
			zap.String("ip_address", req.IPAddress),
		)
		s.audit(ctx, nil, req.IPAddress, req.UserAgent, "admin_login_failed", map[string]any{"email": req.Email})
		return ErrInvalidCredentials
	}

	code, err := s.codes.Issue(ctx, req.Email, domain.CodePurposeLogin)
	if err != nil {
		return fmt.Errorf("issue access code: %w", err)
	}
	if err := s.mailer.SendAccessCode(req.Email, code, domain.CodePurposeLogin); err != nil {
		return fmt.Errorf("send access code: %w", err)
	}

	s.logger.Info("Admin password verified, access code sent",
		zap.String("email", req.Email),
		zap.Int64("user_id", user.ID),
	)
	s.audit(ctx, &user.ID, req.IPAddress, req.UserAgent, "admin_password_verified", nil)
	return nil
}

func (s *authService) VerifyCode(ctx context.Context, req VerifyCodeRequest) (*LoginResult, error) {
	if req.Email == "" || req.Code == "" {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.codes.Verify(ctx, req.Email, req.Code, domain.CodePurposeLogin)
	if err != nil {
		return nil, fmt.Errorf("verify access code: %w", err)
	}
	if !ok {
		s.logger.Warn("Admin login failed: invalid access code",
			zap.String("email", req.Email),
			zap.String("ip_address", req.IPAddress),
		)
		s.audit(ctx, nil, req.IPAddress, req.UserAgent, "admin_code_rejected", map[string]any{"email": req.Email})
		return nil, ErrInvalidCredentials
	}

	user, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("load admin user: %w", err)
	}
	if user == nil {
		// 验证码通过但用户在两步之间被停用
		return nil, ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, store.Session{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("Admin login success",
		zap.String("email", user.Email),
		zap.Int64("user_id", user.ID),
	)
	s.audit(ctx, &user.ID, req.IPAddress, req.UserAgent, "admin_login_success", nil)

	return &LoginResult{Token: token, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if sess != nil {
		s.audit(ctx, &sess.UserID, "", "", "admin_logout", nil)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*store.Session, error) {
	return s.sessions.Get(ctx, token)
}

// audit 尽力而为地落一条操作日志，失败只记日志
func (s *authService) audit(ctx context.Context, userID *int64, ip, ua, action string, details map[string]any) {
	var raw json.RawMessage
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			raw = b
		}
	}
	if err := s.logs.InsertAuditLog(ctx, domain.AuditLog{
		UserID:    userID,
		IPAddress: ip,
		UserAgent: ua,
		Action:    action,
		Details:   raw,
	}); err != nil {
		s.logger.Warn("Failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
