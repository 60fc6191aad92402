package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kesif-backend/internal/domain"
)

// PostgresLogsRepository 使用日志Repository实现
type PostgresLogsRepository struct {
	db *sql.DB
}

func NewPostgresLogsRepository(db *sql.DB) *PostgresLogsRepository {
	return &PostgresLogsRepository{db: db}
}

var _ LogsRepo = (*PostgresLogsRepository)(nil)

// InsertAuditLog 追加后台操作日志
func (r *PostgresLogsRepository) InsertAuditLog(ctx context.Context, entry domain.AuditLog) error {
	if entry.Action == "" {
		return fmt.Errorf("%w: action", ErrMissingField)
	}
	var details any
	if len(entry.Details) > 0 {
		details = string(entry.Details)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (user_id, session_id, ip_address, user_agent, action, resource_type, resource_id, details, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8::jsonb, NOW())
	`, entry.UserID, entry.SessionID, entry.IPAddress, entry.UserAgent,
		entry.Action, entry.ResourceType, entry.ResourceID, details)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// InsertPageView 追加页面访问记录
func (r *PostgresLogsRepository) InsertPageView(ctx context.Context, view domain.PageView) error {
	if view.PagePath == "" {
		return fmt.Errorf("%w: page_path", ErrMissingField)
	}
	var duration any
	if view.DurationSeconds > 0 {
		duration = view.DurationSeconds
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO page_views (page_path, page_title, session_id, ip_address, user_agent, referrer, duration_seconds, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NOW())
	`, view.PagePath, view.PageTitle, view.SessionID, view.IPAddress, view.UserAgent, view.Referrer, duration)
	if err != nil {
		return fmt.Errorf("insert page view: %w", err)
	}
	return nil
}

// InsertClick 追加网红点击记录
func (r *PostgresLogsRepository) InsertClick(ctx context.Context, click domain.InfluencerClick) error {
	if click.InfluencerID == 0 {
		return fmt.Errorf("%w: influencer_id", ErrMissingField)
	}
	if click.ClickType == "" {
		return fmt.Errorf("%w: click_type", ErrMissingField)
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO influencer_clicks (influencer_id, session_id, ip_address, user_agent, source_page, click_type, social_platform, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, NULLIF($7, ''), NOW())
	`, click.InfluencerID, click.SessionID, click.IPAddress, click.UserAgent,
		click.SourcePage, click.ClickType, click.SocialPlatform)
	if err != nil {
		return fmt.Errorf("insert influencer click: %w", err)
	}
	return nil
}

// ListAuditLogs 分页读取操作日志（新的在前）
func (r *PostgresLogsRepository) ListAuditLogs(ctx context.Context, page, size int) ([]domain.AuditLog, int, error) {
	offset, limit := pageToRange(page, size)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, COALESCE(session_id, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''),
		       action, COALESCE(resource_type, ''), resource_id, details, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query audit logs: %w", err)
	}
	defer rows.Close()

	items := make([]domain.AuditLog, 0)
	for rows.Next() {
		var e domain.AuditLog
		var details []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.SessionID, &e.IPAddress, &e.UserAgent,
			&e.Action, &e.ResourceType, &e.ResourceID, &details, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		e.Details = details
		items = append(items, e)
	}
	return items, total, rows.Err()
}

// ListPageViews 分页读取页面访问记录
func (r *PostgresLogsRepository) ListPageViews(ctx context.Context, page, size int) ([]domain.PageView, int, error) {
	offset, limit := pageToRange(page, size)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_views`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count page views: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, page_path, COALESCE(page_title, ''), COALESCE(session_id, ''), COALESCE(ip_address, ''),
		       COALESCE(user_agent, ''), COALESCE(referrer, ''), COALESCE(duration_seconds, 0), created_at
		FROM page_views
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query page views: %w", err)
	}
	defer rows.Close()

	items := make([]domain.PageView, 0)
	for rows.Next() {
		var v domain.PageView
		if err := rows.Scan(&v.ID, &v.PagePath, &v.PageTitle, &v.SessionID, &v.IPAddress,
			&v.UserAgent, &v.Referrer, &v.DurationSeconds, &v.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan page view: %w", err)
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

// ListClicks 分页读取点击记录
func (r *PostgresLogsRepository) ListClicks(ctx context.Context, page, size int) ([]domain.InfluencerClick, int, error) {
	offset, limit := pageToRange(page, size)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM influencer_clicks`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count influencer clicks: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, influencer_id, COALESCE(session_id, ''), COALESCE(ip_address, ''), COALESCE(user_agent, ''),
		       COALESCE(source_page, ''), click_type, COALESCE(social_platform, ''), created_at
		FROM influencer_clicks
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query influencer clicks: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InfluencerClick, 0)
	for rows.Next() {
		var c domain.InfluencerClick
		if err := rows.Scan(&c.ID, &c.InfluencerID, &c.SessionID, &c.IPAddress, &c.UserAgent,
			&c.SourcePage, &c.ClickType, &c.SocialPlatform, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan influencer click: %w", err)
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

// DashboardStats 后台首页统计
func (r *PostgresLogsRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM influencers WHERE is_active = TRUE`,
	).Scan(&stats.InfluencerCount); err != nil {
		return nil, fmt.Errorf("count influencers: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM brands WHERE is_active = TRUE`,
	).Scan(&stats.BrandCount); err != nil {
		return nil, fmt.Errorf("count brands: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page_views WHERE created_at::date = CURRENT_DATE`,
	).Scan(&stats.TodayViews); err != nil {
		return nil, fmt.Errorf("count today views: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM page_views WHERE created_at >= NOW() - INTERVAL '7 days'`,
	).Scan(&stats.WeeklyViews); err != nil {
		return nil, fmt.Errorf("count weekly views: %w", err)
	}

	// 点击排行前 5
	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.image_url, COUNT(ic.id) AS click_count
		FROM influencers i
		LEFT JOIN influencer_clicks ic ON i.id = ic.influencer_id
		WHERE i.is_active = TRUE
		GROUP BY i.id, i.name, i.image_url
		ORDER BY click_count DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("query top influencers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t domain.TopInfluencer
		if err := rows.Scan(&t.ID, &t.Name, &t.ImageURL, &t.ClickCount); err != nil {
			return nil, fmt.Errorf("scan top influencer: %w", err)
		}
		stats.TopInfluencers = append(stats.TopInfluencers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 最近 10 条后台操作
	recent, _, err := r.ListAuditLogs(ctx, 1, 10)
	if err != nil {
		return nil, err
	}
	stats.RecentActivities = recent

	return stats, nil
}

func pageToRange(page, size int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 10000 {
		size = 50
	}
	return (page - 1) * size, size
}
