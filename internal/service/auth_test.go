package service

import (
	"context"
	"testing"

	"kesif-backend/internal/config"
	"kesif-backend/internal/domain"
	"kesif-backend/internal/repository"
	"kesif-backend/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAdminsRepo struct {
	user     *domain.AdminUser
	password string
}

func (f *fakeAdminsRepo) VerifyCredentials(ctx context.Context, email, password string) (*domain.AdminUser, error) {
	if f.user != nil && f.user.Email == email && f.password == password {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeAdminsRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeAdminsRepo) List(ctx context.Context) ([]domain.AdminUser, error) { return nil, nil }
func (f *fakeAdminsRepo) Create(ctx context.Context, in repository.NewAdminUser) (int64, error) {
	return 0, nil
}
func (f *fakeAdminsRepo) Update(ctx context.Context, id int64, patch repository.AdminUserPatch) error {
	return nil
}
func (f *fakeAdminsRepo) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	return nil
}
func (f *fakeAdminsRepo) SoftDelete(ctx context.Context, id int64) error { return nil }

type fakeCodesRepo struct {
	issued string
}

func (f *fakeCodesRepo) Issue(ctx context.Context, email, purpose string) (string, error) {
	f.issued = "482913"
	return f.issued, nil
}

func (f *fakeCodesRepo) Verify(ctx context.Context, email, code, purpose string) (bool, error) {
	ok := f.issued != "" && code == f.issued
	if ok {
		f.issued = "" // 单次使用
	}
	return ok, nil
}

type fakeLogsRepo struct {
	actions []string
}

func (f *fakeLogsRepo) InsertAuditLog(ctx context.Context, e domain.AuditLog) error {
	f.actions = append(f.actions, e.Action)
	return nil
}
func (f *fakeLogsRepo) InsertPageView(ctx context.Context, v domain.PageView) error      { return nil }
func (f *fakeLogsRepo) InsertClick(ctx context.Context, c domain.InfluencerClick) error  { return nil }
func (f *fakeLogsRepo) ListAuditLogs(ctx context.Context, page, size int) ([]domain.AuditLog, int, error) {
	return nil, 0, nil
}
func (f *fakeLogsRepo) ListPageViews(ctx context.Context, page, size int) ([]domain.PageView, int, error) {
	return nil, 0, nil
}
func (f *fakeLogsRepo) ListClicks(ctx context.Context, page, size int) ([]domain.InfluencerClick, int, error) {
	return nil, 0, nil
}
func (f *fakeLogsRepo) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return nil, nil
}

func setupAuthService(t *testing.T) (AuthService, *fakeAdminsRepo, *fakeCodesRepo, *fakeLogsRepo) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	admins := &fakeAdminsRepo{
		user:     &domain.AdminUser{ID: 1, Username: "admin", Email: "admin@kesif.agency", Role: domain.RoleSuperAdmin, Active: true},
		password: "correct-horse",
	}
	codes := &fakeCodesRepo{}
	logs := &fakeLogsRepo{}
	sessions := store.NewSessionStore(store.NewRedisKV(client))
	mailer := NewMailer(config.SMTPConfig{}, zap.NewNop()) // dev 模式，不发信

	svc := NewAuthService(admins, codes, logs, sessions, mailer, zap.NewNop())
	return svc, admins, codes, logs
}

func TestLoginThenVerifyCode(t *testing.T) {
	svc, _, codes, logs := setupAuthService(t)
	ctx := context.Background()

	err := svc.Login(ctx, LoginRequest{Email: "admin@kesif.agency", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, codes.issued)

	result, err := svc.VerifyCode(ctx, VerifyCodeRequest{Email: "admin@kesif.agency", Code: "482913"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(1), result.User.ID)

	sess, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, domain.RoleSuperAdmin, sess.Role)

	assert.Contains(t, logs.actions, "admin_password_verified")
	assert.Contains(t, logs.actions, "admin_login_success")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, codes, logs := setupAuthService(t)

	err := svc.Login(context.Background(), LoginRequest{Email: "admin@kesif.agency", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, codes.issued)
	assert.Contains(t, logs.actions, "admin_login_failed")
}

func TestVerifyCodeWrongCode(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, LoginRequest{Email: "admin@kesif.agency", Password: "correct-horse"}))

	result, err := svc.VerifyCode(ctx, VerifyCodeRequest{Email: "admin@kesif.agency", Code: "000000"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)
}

func TestVerifyCodeSingleUse(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, LoginRequest{Email: "admin@kesif.agency", Password: "correct-horse"}))

	_, err := svc.VerifyCode(ctx, VerifyCodeRequest{Email: "admin@kesif.agency", Code: "482913"})
	require.NoError(t, err)

	// 同一个码不能二次使用
	_, err = svc.VerifyCode(ctx, VerifyCodeRequest{Email: "admin@kesif.agency", Code: "482913"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Login(ctx, LoginRequest{Email: "admin@kesif.agency", Password: "correct-horse"}))
	result, err := svc.VerifyCode(ctx, VerifyCodeRequest{Email: "admin@kesif.agency", Code: "482913"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.Token))

	sess, err := svc.Authenticate(ctx, result.Token)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
