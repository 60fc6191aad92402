package repository

import (
	"context"

	"kesif-backend/internal/domain"
)

// NewInfluencer 创建网红的入参（向导第一步）
// Name 和 ImageURL 必填
type NewInfluencer struct {
	Name         string
	Category     string
	ImageURL     string
	Specialties  []string
	SocialCounts map[string]string
	SortOrder    int
}

// InfluencerPatch 部分更新：nil 字段保持存储值不变
// Name 变更会连带重新生成 slug
type InfluencerPatch struct {
	Name         *string
	Category     *string
	ImageURL     *string
	Specialties  *[]string
	SocialCounts *map[string]string
	SortOrder    *int
	Active       *bool
}

// InfluencerDetailPatch 详情 upsert 的入参（向导第二步）
// 插入路径要求 Email 和 Phone；更新路径缺席字段保持不变
type InfluencerDetailPatch struct {
	Bio             *string
	Location        *string
	Rating          *float64
	JoinDate        *string
	TotalReach      *string
	CampaignsCount  *int
	Email           *string
	Phone           *string
	Portfolio       *[]string
	Achievements    *[]string
	RecentCampaigns *[]domain.RecentCampaign
	EngagementRate  *string
}

// InfluencersRepo 网红数据访问接口
type InfluencersRepo interface {
	// List 只返回 active 行，按 (sort_order ASC, created_at DESC) 排序
	// category 为空时不过滤
	List(ctx context.Context, category string) ([]domain.Influencer, error)

	// GetByID / GetBySlug 带详情 LEFT JOIN；未找到返回 (nil, nil)
	// GetByID 不过滤软删除（按 id 审计读取）；GetBySlug 只返回 active 行
	GetByID(ctx context.Context, id int64) (*domain.Influencer, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Influencer, error)

	// Categories 返回 active 行的去重分类列表
	Categories(ctx context.Context) ([]string, error)

	// Specialties 汇总 active 行去重后的专长列表（后台向导自动补全）
	// search 非空时做不区分大小写的子串过滤；结果按字母序
	Specialties(ctx context.Context, search string) ([]string, error)

	// Create 校验必填字段、派生 slug，返回生成的 id
	Create(ctx context.Context, in NewInfluencer) (int64, error)

	// Update 稀疏更新；空补丁返回 ErrNoFields
	Update(ctx context.Context, id int64, patch InfluencerPatch) error

	// SoftDelete 置 is_active = FALSE，行保留
	SoftDelete(ctx context.Context, id int64) error

	// UpsertDetail 详情存在则稀疏更新，不存在则插入（可安全重试）
	UpsertDetail(ctx context.Context, influencerID int64, patch InfluencerDetailPatch) error
}
