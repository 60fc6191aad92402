package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kesif-backend/internal/domain"
)

// PostgresSiteMetaRepository 页面元数据Repository实现
type PostgresSiteMetaRepository struct {
	db *sql.DB
}

func NewPostgresSiteMetaRepository(db *sql.DB) *PostgresSiteMetaRepository {
	return &PostgresSiteMetaRepository{db: db}
}

var _ SiteMetaRepo = (*PostgresSiteMetaRepository)(nil)

const siteMetaColumns = `id, page_path, title, description,
	COALESCE(keywords, ''), COALESCE(og_title, ''), COALESCE(og_description, ''), COALESCE(og_image, ''),
	COALESCE(twitter_title, ''), COALESCE(twitter_description, ''), COALESCE(twitter_image, ''),
	COALESCE(canonical_url, ''), is_active, created_at, updated_at`

func scanSiteMeta(row interface{ Scan(...any) error }) (*domain.SiteMeta, error) {
	var m domain.SiteMeta
	err := row.Scan(&m.ID, &m.PagePath, &m.Title, &m.Description,
		&m.Keywords, &m.OGTitle, &m.OGDescription, &m.OGImage,
		&m.TwitterTitle, &m.TwitterDescription, &m.TwitterImage,
		&m.CanonicalURL, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// List 全部 active 元数据，按路径排序
func (r *PostgresSiteMetaRepository) List(ctx context.Context) ([]domain.SiteMeta, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+siteMetaColumns+` FROM site_meta WHERE is_active = TRUE ORDER BY page_path`)
	if err != nil {
		return nil, fmt.Errorf("query site meta: %w", err)
	}
	defer rows.Close()

	items := make([]domain.SiteMeta, 0)
	for rows.Next() {
		m, err := scanSiteMeta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan site meta: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// GetByPath 按页面路径取元数据；未找到返回 (nil, nil)
func (r *PostgresSiteMetaRepository) GetByPath(ctx context.Context, pagePath string) (*domain.SiteMeta, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+siteMetaColumns+` FROM site_meta WHERE page_path = $1 AND is_active = TRUE`, pagePath)
	m, err := scanSiteMeta(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query site meta by path: %w", err)
	}
	return m, nil
}

// Upsert ON CONFLICT (page_path) DO UPDATE
func (r *PostgresSiteMetaRepository) Upsert(ctx context.Context, in SiteMetaUpsert) error {
	if in.PagePath == "" {
		return fmt.Errorf("%w: page_path", ErrMissingField)
	}
	if in.Title == "" {
		return fmt.Errorf("%w: title", ErrMissingField)
	}
	if in.Description == "" {
		return fmt.Errorf("%w: description", ErrMissingField)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO site_meta
			(page_path, title, description, keywords, og_title, og_description, og_image,
			 twitter_title, twitter_description, twitter_image, canonical_url, is_active, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
		        NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), TRUE, NOW())
		ON CONFLICT (page_path)
		DO UPDATE SET title = EXCLUDED.title,
		              description = EXCLUDED.description,
		              keywords = EXCLUDED.keywords,
		              og_title = EXCLUDED.og_title,
		              og_description = EXCLUDED.og_description,
		              og_image = EXCLUDED.og_image,
		              twitter_title = EXCLUDED.twitter_title,
		              twitter_description = EXCLUDED.twitter_description,
		              twitter_image = EXCLUDED.twitter_image,
		              canonical_url = EXCLUDED.canonical_url,
		              updated_at = NOW()
	`, in.PagePath, in.Title, in.Description, in.Keywords, in.OGTitle, in.OGDescription, in.OGImage,
		in.TwitterTitle, in.TwitterDescription, in.TwitterImage, in.CanonicalURL)
	if err != nil {
		return fmt.Errorf("upsert site meta: %w", err)
	}
	return nil
}
