package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kesif-backend/internal/domain"
)

// PostgresSliderRepository 轮播图Repository实现
type PostgresSliderRepository struct {
	db *sql.DB
}

func NewPostgresSliderRepository(db *sql.DB) *PostgresSliderRepository {
	return &PostgresSliderRepository{db: db}
}

var _ SliderRepo = (*PostgresSliderRepository)(nil)

// List 获取 active 轮播图
func (r *PostgresSliderRepository) List(ctx context.Context) ([]domain.SliderImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, image_url, title, description, sort_order, is_active, created_at, updated_at
		FROM slider_images
		WHERE is_active = TRUE
		ORDER BY sort_order ASC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query slider images: %w", err)
	}
	defer rows.Close()

	items := make([]domain.SliderImage, 0)
	for rows.Next() {
		var s domain.SliderImage
		var title, description sql.NullString
		if err := rows.Scan(
			&s.ID, &s.ImageURL, &title, &description,
			&s.SortOrder, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan slider image: %w", err)
		}
		s.Title = title.String
		s.Description = description.String
		items = append(items, s)
	}
	return items, rows.Err()
}

// Create 插入新轮播图
func (r *PostgresSliderRepository) Create(ctx context.Context, in NewSliderImage) (int64, error) {
	if in.ImageURL == "" {
		return 0, fmt.Errorf("%w: image_url", ErrMissingField)
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO slider_images (image_url, title, description, sort_order, is_active, created_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, TRUE, NOW())
		RETURNING id
	`, in.ImageURL, in.Title, in.Description, in.SortOrder).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert slider image: %w", err)
	}
	return id, nil
}

// Update 稀疏更新
func (r *PostgresSliderRepository) Update(ctx context.Context, id int64, patch SliderImagePatch) error {
	b := newUpdateBuilder(2)
	if patch.ImageURL != nil {
		b.Set("image_url", *patch.ImageURL)
	}
	if patch.Title != nil {
		b.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
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
		UPDATE slider_images
		SET %s, updated_at = NOW()
		WHERE id = $1
	`, b.Assignments())

	result, err := r.db.ExecContext(ctx, query, append([]any{id}, b.Args()...)...)
	if err != nil {
		return fmt.Errorf("update slider image: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete 软删除
func (r *PostgresSliderRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE slider_images
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete slider image: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Move 与相邻行交换 sort_order
// 两条 UPDATE 在同一事务内提交（两行同换或都不换）
func (r *PostgresSliderRepository) Move(ctx context.Context, id int64, direction string) error {
	if direction != MoveUp && direction != MoveDown {
		return fmt.Errorf("invalid move direction: %q", direction)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin move tx: %w", err)
	}
	defer tx.Rollback()

	var curOrder int
	err = tx.QueryRowContext(ctx,
		`SELECT sort_order FROM slider_images WHERE id = $1 AND is_active = TRUE`,
		id,
	).Scan(&curOrder)
	if err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("load slider image for move: %w", err)
	}

	// 找排序方向上的相邻行
	adjacentQuery := `
		SELECT id, sort_order FROM slider_images
		WHERE is_active = TRUE AND sort_order < $1
		ORDER BY sort_order DESC
		LIMIT 1
	`
	if direction == MoveDown {
		adjacentQuery = `
			SELECT id, sort_order FROM slider_images
			WHERE is_active = TRUE AND sort_order > $1
			ORDER BY sort_order ASC
			LIMIT 1
		`
	}

	var adjID int64
	var adjOrder int
	err = tx.QueryRowContext(ctx, adjacentQuery, curOrder).Scan(&adjID, &adjOrder)
	if err == sql.ErrNoRows {
		// 已在边界，no-op
		return nil
	}
	if err != nil {
		return fmt.Errorf("find adjacent slider image: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE slider_images SET sort_order = $2, updated_at = NOW() WHERE id = $1`,
		id, adjOrder,
	); err != nil {
		return fmt.Errorf("move slider image: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE slider_images SET sort_order = $2, updated_at = NOW() WHERE id = $1`,
		adjID, curOrder,
	); err != nil {
		return fmt.Errorf("move adjacent slider image: %w", err)
	}

	return tx.Commit()
}
