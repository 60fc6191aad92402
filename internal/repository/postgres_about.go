package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kesif-backend/internal/domain"
)

// PostgresAboutRepository 关于页Repository实现
type PostgresAboutRepository struct {
	db *sql.DB
}

func NewPostgresAboutRepository(db *sql.DB) *PostgresAboutRepository {
	return &PostgresAboutRepository{db: db}
}

var _ AboutRepo = (*PostgresAboutRepository)(nil)

// GetAll 取回整页内容（content + stats + values + team）
func (r *PostgresAboutRepository) GetAll(ctx context.Context) (*domain.AboutPage, error) {
	page := &domain.AboutPage{}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, title, description, icon, color, features, is_active, created_at, updated_at
		FROM about_content
		WHERE is_active = TRUE
		ORDER BY kind
	`)
	if err != nil {
		return nil, fmt.Errorf("query about content: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c domain.AboutContent
		var features []byte
		if err := rows.Scan(&c.ID, &c.Kind, &c.Title, &c.Description, &c.Icon, &c.Color,
			&features, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan about content: %w", err)
		}
		c.Features = unmarshalStringList(features)
		page.Content = append(page.Content, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statRows, err := r.db.QueryContext(ctx, `
		SELECT id, icon, value, label, color, sort_order, is_active, created_at, updated_at
		FROM about_stats
		WHERE is_active = TRUE
		ORDER BY sort_order ASC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query about stats: %w", err)
	}
	defer statRows.Close()
	for statRows.Next() {
		var s domain.AboutStat
		if err := statRows.Scan(&s.ID, &s.Icon, &s.Value, &s.Label, &s.Color,
			&s.SortOrder, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan about stat: %w", err)
		}
		page.Stats = append(page.Stats, s)
	}
	if err := statRows.Err(); err != nil {
		return nil, err
	}

	valueRows, err := r.db.QueryContext(ctx, `
		SELECT id, icon, title, description, color, sort_order, is_active, created_at, updated_at
		FROM about_values
		WHERE is_active = TRUE
		ORDER BY sort_order ASC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query about values: %w", err)
	}
	defer valueRows.Close()
	for valueRows.Next() {
		var v domain.AboutValue
		if err := valueRows.Scan(&v.ID, &v.Icon, &v.Title, &v.Description, &v.Color,
			&v.SortOrder, &v.Active, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan about value: %w", err)
		}
		page.Values = append(page.Values, v)
	}
	if err := valueRows.Err(); err != nil {
		return nil, err
	}

	teamRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, role, image_url, description, sort_order, is_active, created_at, updated_at
		FROM about_team
		WHERE is_active = TRUE
		ORDER BY sort_order ASC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query about team: %w", err)
	}
	defer teamRows.Close()
	for teamRows.Next() {
		var m domain.AboutTeamMember
		if err := teamRows.Scan(&m.ID, &m.Name, &m.Role, &m.ImageURL, &m.Description,
			&m.SortOrder, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan about team member: %w", err)
		}
		page.Team = append(page.Team, m)
	}
	return page, teamRows.Err()
}

// UpdateContent mission/vision 内容块稀疏更新
func (r *PostgresAboutRepository) UpdateContent(ctx context.Context, id int64, patch AboutContentPatch) error {
	b := newUpdateBuilder(2)
	if patch.Title != nil {
		b.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.Icon != nil {
		b.Set("icon", *patch.Icon)
	}
	if patch.Color != nil {
		b.Set("color", *patch.Color)
	}
	if patch.Features != nil {
		b.SetJSON("features", *patch.Features)
	}
	if patch.Active != nil {
		b.Set("is_active", *patch.Active)
	}
	if b.Empty() {
		return ErrNoFields
	}
	return r.execUpdate(ctx, "about_content", id, b)
}

// CreateStat 插入统计条目
func (r *PostgresAboutRepository) CreateStat(ctx context.Context, in NewAboutStat) (int64, error) {
	if in.Value == "" {
		return 0, fmt.Errorf("%w: value", ErrMissingField)
	}
	if in.Label == "" {
		return 0, fmt.Errorf("%w: label", ErrMissingField)
	}
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO about_stats (icon, value, label, color, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
		RETURNING id
	`, in.Icon, in.Value, in.Label, in.Color, in.SortOrder).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert about stat: %w", err)
	}
	return id, nil
}

// UpdateStat 稀疏更新
func (r *PostgresAboutRepository) UpdateStat(ctx context.Context, id int64, patch AboutStatPatch) error {
	b := newUpdateBuilder(2)
	if patch.Icon != nil {
		b.Set("icon", *patch.Icon)
	}
	if patch.Value != nil {
		b.Set("value", *patch.Value)
	}
	if patch.Label != nil {
		b.Set("label", *patch.Label)
	}
	if patch.Color != nil {
		b.Set("color", *patch.Color)
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
	return r.execUpdate(ctx, "about_stats", id, b)
}

func (r *PostgresAboutRepository) SoftDeleteStat(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "about_stats", id)
}

// CreateValue 插入价值观条目
func (r *PostgresAboutRepository) CreateValue(ctx context.Context, in NewAboutValue) (int64, error) {
	if in.Title == "" {
		return 0, fmt.Errorf("%w: title", ErrMissingField)
	}
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO about_values (icon, title, description, color, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
		RETURNING id
	`, in.Icon, in.Title, in.Description, in.Color, in.SortOrder).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert about value: %w", err)
	}
	return id, nil
}

// UpdateValue 稀疏更新
func (r *PostgresAboutRepository) UpdateValue(ctx context.Context, id int64, patch AboutValuePatch) error {
	b := newUpdateBuilder(2)
	if patch.Icon != nil {
		b.Set("icon", *patch.Icon)
	}
	if patch.Title != nil {
		b.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		b.Set("description", *patch.Description)
	}
	if patch.Color != nil {
		b.Set("color", *patch.Color)
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
	return r.execUpdate(ctx, "about_values", id, b)
}

func (r *PostgresAboutRepository) SoftDeleteValue(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "about_values", id)
}

// CreateTeamMember 插入团队成员
func (r *PostgresAboutRepository) CreateTeamMember(ctx context.Context, in NewAboutTeamMember) (int64, error) {
	if in.Name == "" {
		return 0, fmt.Errorf("%w: name", ErrMissingField)
	}
	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO about_team (name, role, image_url, description, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, NOW())
		RETURNING id
	`, in.Name, in.Role, in.ImageURL, in.Description, in.SortOrder).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert about team member: %w", err)
	}
	return id, nil
}

// UpdateTeamMember 稀疏更新
func (r *PostgresAboutRepository) UpdateTeamMember(ctx context.Context, id int64, patch AboutTeamMemberPatch) error {
	b := newUpdateBuilder(2)
	if patch.Name != nil {
		b.Set("name", *patch.Name)
	}
	if patch.Role != nil {
		b.Set("role", *patch.Role)
	}
	if patch.ImageURL != nil {
		b.Set("image_url", *patch.ImageURL)
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
	return r.execUpdate(ctx, "about_team", id, b)
}

func (r *PostgresAboutRepository) SoftDeleteTeamMember(ctx context.Context, id int64) error {
	return r.softDelete(ctx, "about_team", id)
}

func (r *PostgresAboutRepository) execUpdate(ctx context.Context, table string, id int64, b *updateBuilder) error {
	query := fmt.Sprintf(`UPDATE %s SET %s, updated_at = NOW() WHERE id = $1`, table, b.Assignments())
	result, err := r.db.ExecContext(ctx, query, append([]any{id}, b.Args()...)...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresAboutRepository) softDelete(ctx context.Context, table string, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, table)
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete from %s: %w", table, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
