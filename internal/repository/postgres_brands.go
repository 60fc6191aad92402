package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kesif-backend/internal/domain"
)

// PostgresBrandsRepository 品牌Repository实现
type PostgresBrandsRepository struct {
	db *sql.DB
}

func NewPostgresBrandsRepository(db *sql.DB) *PostgresBrandsRepository {
	return &PostgresBrandsRepository{db: db}
}

var _ BrandsRepo = (*PostgresBrandsRepository)(nil)

// List 获取 active 品牌列表，可按分类过滤
func (r *PostgresBrandsRepository) List(ctx context.Context, category string) ([]domain.Brand, error) {
	query := `
		SELECT id, name, logo_url, website_url, category, sort_order, is_active, created_at, updated_at
		FROM brands
		WHERE is_active = TRUE
	`
	args := []any{}
	if category != "" && category != "all" {
		query += ` AND category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY sort_order ASC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Brand, 0)
	for rows.Next() {
		var b domain.Brand
		var websiteURL, cat sql.NullString
		if err := rows.Scan(
			&b.ID, &b.Name, &b.LogoURL, &websiteURL, &cat,
			&b.SortOrder, &b.Active, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		b.WebsiteURL = websiteURL.String
		b.Category = cat.String
		items = append(items, b)
	}
	return items, rows.Err()
}

// Categories 获取 active 品牌的去重分类
func (r *PostgresBrandsRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM brands
		WHERE is_active = TRUE AND category IS NOT NULL AND category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("query brand categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan brand category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create 插入新品牌
func (r *PostgresBrandsRepository) Create(ctx context.Context, in NewBrand) (int64, error) {
	if in.Name == "" {
		return 0, fmt.Errorf("%w: name", ErrMissingField)
	}
	if in.LogoURL == "" {
		return 0, fmt.Errorf("%w: logo_url", ErrMissingField)
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO brands (name, logo_url, website_url, category, sort_order, is_active, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, TRUE, NOW())
		RETURNING id
	`, in.Name, in.LogoURL, in.WebsiteURL, in.Category, in.SortOrder).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert brand: %w", err)
	}
	return id, nil
}

// Update 稀疏更新
func (r *PostgresBrandsRepository) Update(ctx context.Context, id int64, patch BrandPatch) error {
	b := newUpdateBuilder(2)
	if patch.Name != nil {
		b.Set("name", *patch.Name)
	}
	if patch.LogoURL != nil {
		b.Set("logo_url", *patch.LogoURL)
	}
	if patch.WebsiteURL != nil {
		b.Set("website_url", *patch.WebsiteURL)
	}
	if patch.Category != nil {
		b.Set("category", *patch.Category)
	}
	if patch.SortOrder != nil {
		b.Set("sort_order", *patch.SortOrder)
	}
	if patch.Active != nil {
		b.Set("is_active", *patch.Active)
	}
	if b.Empty() {
		return ErrNoFields
	}

	query := fmt.Sprintf(`
		UPDATE brands
		SET %s, updated_at = NOW()
		WHERE id = $1
	`, b.Assignments())

	result, err := r.db.ExecContext(ctx, query, append([]any{id}, b.Args()...)...)
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete 软删除
func (r *PostgresBrandsRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE brands
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete brand: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
