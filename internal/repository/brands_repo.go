package repository

import (
	"context"

	"kesif-backend/internal/domain"
)

// NewBrand 创建品牌的入参；Name 和 LogoURL 必填
type NewBrand struct {
	Name       string
	LogoURL    string
	WebsiteURL string
	Category   string
	SortOrder  int
}

// BrandPatch 部分更新：nil 字段保持不变
type BrandPatch struct {
	Name       *string
	LogoURL    *string
	WebsiteURL *string
	Category   *string
	SortOrder  *int
	Active     *bool
}

// BrandsRepo 品牌数据访问接口
// 与 InfluencersRepo 同形，少了详情扩展
type BrandsRepo interface {
	List(ctx context.Context, category string) ([]domain.Brand, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, in NewBrand) (int64, error)
	Update(ctx context.Context, id int64, patch BrandPatch) error
	SoftDelete(ctx context.Context, id int64) error
}
