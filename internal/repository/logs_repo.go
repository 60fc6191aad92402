package repository

import (
	"context"

	"kesif-backend/internal/domain"
)

// LogsRepo 使用日志访问接口（只追加，无更新/删除路径）
// 写入方把错误当作不致命事件处理：记日志后继续，绝不让主操作失败
type LogsRepo interface {
	InsertAuditLog(ctx context.Context, entry domain.AuditLog) error
	InsertPageView(ctx context.Context, view domain.PageView) error
	InsertClick(ctx context.Context, click domain.InfluencerClick) error

	// 后台日志页的分页读取
	ListAuditLogs(ctx context.Context, page, size int) ([]domain.AuditLog, int, error)
	ListPageViews(ctx context.Context, page, size int) ([]domain.PageView, int, error)
	ListClicks(ctx context.Context, page, size int) ([]domain.InfluencerClick, int, error)

	// DashboardStats 后台首页统计聚合
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
