package repository

import (
	"context"

	"kesif-backend/internal/domain"
)

// 轮播图移动方向
const (
	MoveUp   = "up"
	MoveDown = "down"
)

// NewSliderImage 创建轮播图的入参；ImageURL 必填
type NewSliderImage struct {
	ImageURL    string
	Title       string
	Description string
	SortOrder   int
}

// SliderImagePatch 部分更新：nil 字段保持不变
type SliderImagePatch struct {
	ImageURL    *string
	Title       *string
	Description *string
	SortOrder   *int
	Active      *bool
}

// SliderRepo 轮播图数据访问接口
type SliderRepo interface {
	List(ctx context.Context) ([]domain.SliderImage, error)
	Create(ctx context.Context, in NewSliderImage) (int64, error)
	Update(ctx context.Context, id int64, patch SliderImagePatch) error
	SoftDelete(ctx context.Context, id int64) error

	// Move 与排序方向上的相邻 active 行交换 sort_order（单事务，两行同换或都不换）
	// 边界（第一行上移/最后一行下移）是 no-op
	Move(ctx context.Context, id int64, direction string) error
}
