package repository

import (
	"context"

	"kesif-backend/internal/domain"
)

// SiteMetaUpsert 页面元数据 upsert 的入参
// PagePath/Title/Description 必填，其余可空
type SiteMetaUpsert struct {
	PagePath           string
	Title              string
	Description        string
	Keywords           string
	OGTitle            string
	OGDescription      string
	OGImage            string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string
	CanonicalURL       string
}

// SiteMetaRepo 页面 SEO 元数据访问接口
type SiteMetaRepo interface {
	List(ctx context.Context) ([]domain.SiteMeta, error)
	// GetByPath 未找到返回 (nil, nil)
	GetByPath(ctx context.Context, pagePath string) (*domain.SiteMeta, error)
	// Upsert 以 page_path 为冲突键：存在则整体覆盖，不存在则插入
	Upsert(ctx context.Context, in SiteMetaUpsert) error
}
