package domain

import "time"

// Influencer 网红领域模型（对应 influencers 表）
type Influencer struct {
	// 主键
	ID int64 `db:"id"` // BIGSERIAL, PRIMARY KEY

	// 基本信息
	Name     string `db:"name"`      // VARCHAR(255), NOT NULL
	Slug     string `db:"slug"`      // VARCHAR(255), UNIQUE，由 Name 派生，Name 变更时重新生成
	Category string `db:"category"`  // VARCHAR(100), NOT NULL
	ImageURL string `db:"image_url"` // VARCHAR(500), NOT NULL

	// JSONB 字段
	Specialties  []string          `db:"specialties"`   // JSONB, 有序字符串列表
	SocialCounts map[string]string `db:"social_counts"` // JSONB, 平台名 -> 展示字符串（如 {"instagram":"250K"}）

	// 展示控制
	SortOrder int  `db:"sort_order"` // INT, DEFAULT 0
	Active    bool `db:"is_active"`  // BOOLEAN, DEFAULT TRUE（软删除标记）

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// 详情（GetByID/GetBySlug 时 LEFT JOIN 填充；向导第二步之前为 nil）
	Detail *InfluencerDetail `db:"-"`
}

// InfluencerDetail 网红详情（对应 influencer_details 表，1:1 扩展）
// Email/Phone 是仅有的两个插入时必填字段
type InfluencerDetail struct {
	InfluencerID int64 `db:"influencer_id"` // FK -> influencers(id) ON DELETE CASCADE

	Bio            string  `db:"bio"`             // TEXT, nullable
	Location       string  `db:"location"`        // VARCHAR(255), nullable
	Rating         float64 `db:"rating"`          // NUMERIC(3,1), nullable
	JoinDate       string  `db:"join_date"`       // VARCHAR(50), nullable
	TotalReach     string  `db:"total_reach"`     // VARCHAR(50), nullable
	CampaignsCount int     `db:"campaigns_count"` // INT, nullable
	Email          string  `db:"email"`           // VARCHAR(255), NOT NULL
	Phone          string  `db:"phone"`           // VARCHAR(50), NOT NULL
	EngagementRate string  `db:"engagement_rate"` // VARCHAR(20), nullable

	// JSONB 字段
	Portfolio       []string         `db:"portfolio"`
	Achievements    []string         `db:"achievements"`
	RecentCampaigns []RecentCampaign `db:"recent_campaigns"`
}

// RecentCampaign 近期合作记录（influencer_details.recent_campaigns 的元素）
type RecentCampaign struct {
	Brand string `json:"brand"`
	Type  string `json:"type"`
	Date  string `json:"date"`
}
