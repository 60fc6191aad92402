package domain

import "time"

// 管理员角色
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
)

// AdminUser 后台管理员（对应 admin_users 表）
type AdminUser struct {
	ID int64 `db:"id"`

	Username     string `db:"username"`      // VARCHAR(100), UNIQUE, NOT NULL
	Email        string `db:"email"`         // VARCHAR(255), UNIQUE, NOT NULL
	PasswordHash string `db:"password_hash"` // VARCHAR(255), bcrypt
	FullName     string `db:"full_name"`     // VARCHAR(255), NOT NULL
	Role         string `db:"role"`          // super_admin / admin / moderator

	Active      bool       `db:"is_active"`
	LastLoginAt *time.Time `db:"last_login"` // nullable
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// OTP 用途
const (
	CodePurposeLogin         = "login"
	CodePurposePasswordReset = "password_reset"
)

// AccessCode 一次性验证码（对应 access_codes 表）
// 状态机：issued -> used（verify 成功，终态）或 issued -> expired（按时间判定，
// verify 时检查，不做后台清扫）
type AccessCode struct {
	ID int64 `db:"id"`

	Email   string `db:"email"`   // VARCHAR(255), NOT NULL
	Code    string `db:"code"`    // VARCHAR(6), 6 位数字
	Purpose string `db:"purpose"` // 'login' | 'password_reset'
	Used    bool   `db:"is_used"`

	ExpiresAt time.Time `db:"expires_at"` // 签发时间 + 10 分钟
	CreatedAt time.Time `db:"created_at"`
}

// SiteMeta 页面 SEO 元数据（对应 site_meta 表）
type SiteMeta struct {
	ID int64 `db:"id"`

	PagePath    string `db:"page_path"` // VARCHAR(255), UNIQUE, NOT NULL
	Title       string `db:"title"`
	Description string `db:"description"`
	Keywords    string `db:"keywords"`

	OGTitle       string `db:"og_title"`
	OGDescription string `db:"og_description"`
	OGImage       string `db:"og_image"`

	TwitterTitle       string `db:"twitter_title"`
	TwitterDescription string `db:"twitter_description"`
	TwitterImage       string `db:"twitter_image"`

	CanonicalURL string `db:"canonical_url"`

	Active    bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
