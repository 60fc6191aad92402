package repository

import (
	"context"

	"kesif-backend/internal/domain"
)

// 关于页四个记录族的入参/补丁类型

type NewAboutStat struct {
	Icon      string
	Value     string
	Label     string
	Color     string
	SortOrder int
}

type AboutStatPatch struct {
	Icon      *string
	Value     *string
	Label     *string
	Color     *string
	SortOrder *int
	Active    *bool
}

type NewAboutValue struct {
	Icon        string
	Title       string
	Description string
	Color       string
	SortOrder   int
}

type AboutValuePatch struct {
	Icon        *string
	Title       *string
	Description *string
	Color       *string
	SortOrder   *int
	Active      *bool
}

type NewAboutTeamMember struct {
	Name        string
	Role        string
	ImageURL    string
	Description string
	SortOrder   int
}

type AboutTeamMemberPatch struct {
	Name        *string
	Role        *string
	ImageURL    *string
	Description *string
	SortOrder   *int
	Active      *bool
}

// AboutContentPatch mission/vision 内容块的部分更新
type AboutContentPatch struct {
	Title       *string
	Description *string
	Icon        *string
	Color       *string
	Features    *[]string
	Active      *bool
}

// AboutRepo 关于页数据访问接口
type AboutRepo interface {
	// GetAll 一次取回整页（active 行，按约定排序）
	GetAll(ctx context.Context) (*domain.AboutPage, error)

	UpdateContent(ctx context.Context, id int64, patch AboutContentPatch) error

	CreateStat(ctx context.Context, in NewAboutStat) (int64, error)
	UpdateStat(ctx context.Context, id int64, patch AboutStatPatch) error
	SoftDeleteStat(ctx context.Context, id int64) error

	CreateValue(ctx context.Context, in NewAboutValue) (int64, error)
	UpdateValue(ctx context.Context, id int64, patch AboutValuePatch) error
	SoftDeleteValue(ctx context.Context, id int64) error

	CreateTeamMember(ctx context.Context, in NewAboutTeamMember) (int64, error)
	UpdateTeamMember(ctx context.Context, id int64, patch AboutTeamMemberPatch) error
	SoftDeleteTeamMember(ctx context.Context, id int64) error
}
