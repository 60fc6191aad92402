package domain

import (
	"encoding/json"
	"time"
)

// 使用日志：三张只追加表，无更新/删除路径。
// 写入是主操作的副作用，失败只记日志，绝不让主操作失败。

// AuditLog 后台操作日志（对应 audit_logs 表）
type AuditLog struct {
	ID int64 `db:"id"`

	UserID    *int64 `db:"user_id"`    // nullable，未登录操作为 NULL
	SessionID string `db:"session_id"` // VARCHAR(255), nullable
	IPAddress string `db:"ip_address"` // VARCHAR(45), nullable
	UserAgent string `db:"user_agent"` // TEXT, nullable

	Action       string          `db:"action"`        // VARCHAR(100), NOT NULL（如 admin_login_success）
	ResourceType string          `db:"resource_type"` // VARCHAR(50), nullable
	ResourceID   *int64          `db:"resource_id"`   // nullable
	Details      json.RawMessage `db:"details"`       // JSONB, nullable

	CreatedAt time.Time `db:"created_at"`
}

// PageView 页面访问记录（对应 page_views 表）
type PageView struct {
	ID int64 `db:"id"`

	PagePath  string `db:"page_path"`  // VARCHAR(255), NOT NULL
	PageTitle string `db:"page_title"` // VARCHAR(255), nullable
	SessionID string `db:"session_id"`
	IPAddress string `db:"ip_address"`
	UserAgent string `db:"user_agent"`
	Referrer  string `db:"referrer"`

	DurationSeconds int `db:"duration_seconds"` // nullable

	CreatedAt time.Time `db:"created_at"`
}

// 点击类型
const (
	ClickProfileView = "profile_view"
	ClickContact     = "contact_click"
	ClickSocialMedia = "social_media_click"
)

// InfluencerClick 网红卡片点击记录（对应 influencer_clicks 表）
type InfluencerClick struct {
	ID int64 `db:"id"`

	InfluencerID int64  `db:"influencer_id"` // FK -> influencers(id) ON DELETE CASCADE
	SessionID    string `db:"session_id"`
	IPAddress    string `db:"ip_address"`
	UserAgent    string `db:"user_agent"`
	SourcePage   string `db:"source_page"`

	ClickType      string `db:"click_type"`      // profile_view / contact_click / social_media_click
	SocialPlatform string `db:"social_platform"` // nullable，click_type 为 social_media_click 时有值

	CreatedAt time.Time `db:"created_at"`
}

// TopInfluencer 点击排行条目（dashboard 用）
type TopInfluencer struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
	ClickCount int64  `json:"click_count"`
}

// DashboardStats 后台首页统计
type DashboardStats struct {
	InfluencerCount  int64           `json:"influencer_count"`
	BrandCount       int64           `json:"brand_count"`
	TodayViews       int64           `json:"today_views"`
	WeeklyViews      int64           `json:"weekly_views"`
	TopInfluencers   []TopInfluencer `json:"top_influencers"`
	RecentActivities []AuditLog      `json:"recent_activities"`
}
