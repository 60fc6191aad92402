package repository

import (
	"context"

	"kesif-backend/internal/domain"
)

// NewAdminUser 创建管理员的入参；密码在 repository 内做 bcrypt 哈希
type NewAdminUser struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string // 缺省为 admin
}

// AdminUserPatch 部分更新（密码走 ChangePassword，不在补丁内）
type AdminUserPatch struct {
	Username *string
	Email    *string
	FullName *string
	Role     *string
	Active   *bool
}

// AdminsRepo 管理员数据访问接口
type AdminsRepo interface {
	// VerifyCredentials 凭证正确返回用户并刷新 last_login；
	// 用户不存在或密码不符返回 (nil, nil)
	VerifyCredentials(ctx context.Context, email, password string) (*domain.AdminUser, error)

	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	List(ctx context.Context) ([]domain.AdminUser, error)
	Create(ctx context.Context, in NewAdminUser) (int64, error)
	Update(ctx context.Context, id int64, patch AdminUserPatch) error
	ChangePassword(ctx context.Context, id int64, newPassword string) error
	SoftDelete(ctx context.Context, id int64) error
}

// AccessCodesRepo 一次性验证码数据访问接口
type AccessCodesRepo interface {
	// Issue 先清掉 (email, purpose) 下已用/过期/未用的旧码，再签发新码
	// 返回明文验证码，交给上层通过邮件带外投递
	Issue(ctx context.Context, email, purpose string) (string, error)

	// Verify 匹配到未用未过期的码时置 used 并返回 true；否则返回 false 且不落任何变更
	Verify(ctx context.Context, email, code, purpose string) (bool, error)
}
