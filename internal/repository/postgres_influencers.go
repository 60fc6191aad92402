package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"kesif-backend/internal/domain"
)

// PostgresInfluencersRepository 网红Repository实现
type PostgresInfluencersRepository struct {
	db *sql.DB
}

// NewPostgresInfluencersRepository 创建网红Repository
func NewPostgresInfluencersRepository(db *sql.DB) *PostgresInfluencersRepository {
	return &PostgresInfluencersRepository{db: db}
}

// 确保实现了接口
var _ InfluencersRepo = (*PostgresInfluencersRepository)(nil)

// List 获取 active 网红列表，可按分类过滤
func (r *PostgresInfluencersRepository) List(ctx context.Context, category string) ([]domain.Influencer, error) {
	query := `
		SELECT id, name, slug, category, image_url, specialties, social_counts,
		       sort_order, is_active, created_at, updated_at
		FROM influencers
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
		return nil, fmt.Errorf("query influencers: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Influencer, 0)
	for rows.Next() {
		var inf domain.Influencer
		var specialties, socialCounts []byte
		if err := rows.Scan(
			&inf.ID, &inf.Name, &inf.Slug, &inf.Category, &inf.ImageURL,
			&specialties, &socialCounts,
			&inf.SortOrder, &inf.Active, &inf.CreatedAt, &inf.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan influencer: %w", err)
		}
		inf.Specialties = unmarshalStringList(specialties)
		inf.SocialCounts = unmarshalStringMap(socialCounts)
		items = append(items, inf)
	}
	return items, rows.Err()
}

const influencerJoinQuery = `
	SELECT i.id, i.name, i.slug, i.category, i.image_url, i.specialties, i.social_counts,
	       i.sort_order, i.is_active, i.created_at, i.updated_at,
	       d.influencer_id, d.bio, d.location, d.rating, d.join_date, d.total_reach,
	       d.campaigns_count, d.email, d.phone, d.portfolio, d.achievements,
	       d.recent_campaigns, d.engagement_rate
	FROM influencers i
	LEFT JOIN influencer_details d ON i.id = d.influencer_id
`

// GetByID 按 id 获取网红（含详情）；未找到返回 (nil, nil)
// 不过滤 is_active：软删除的行仍可按 id 读取（审计路径）
func (r *PostgresInfluencersRepository) GetByID(ctx context.Context, id int64) (*domain.Influencer, error) {
	row := r.db.QueryRowContext(ctx, influencerJoinQuery+` WHERE i.id = $1`, id)
	return scanInfluencerWithDetail(row)
}

// GetBySlug 按 slug 获取网红（含详情）；未找到返回 (nil, nil)
func (r *PostgresInfluencersRepository) GetBySlug(ctx context.Context, slug string) (*domain.Influencer, error) {
	row := r.db.QueryRowContext(ctx, influencerJoinQuery+` WHERE i.slug = $1 AND i.is_active = TRUE`, slug)
	return scanInfluencerWithDetail(row)
}

func scanInfluencerWithDetail(row *sql.Row) (*domain.Influencer, error) {
	var inf domain.Influencer
	var specialties, socialCounts []byte

	// 详情侧全部可空（LEFT JOIN 未命中时整行为 NULL）
	var detailID sql.NullInt64
	var bio, location, joinDate, totalReach, email, phone, engagementRate sql.NullString
	var rating sql.NullFloat64
	var campaignsCount sql.NullInt64
	var portfolio, achievements, recentCampaigns []byte

	err := row.Scan(
		&inf.ID, &inf.Name, &inf.Slug, &inf.Category, &inf.ImageURL,
		&specialties, &socialCounts,
		&inf.SortOrder, &inf.Active, &inf.CreatedAt, &inf.UpdatedAt,
		&detailID, &bio, &location, &rating, &joinDate, &totalReach,
		&campaignsCount, &email, &phone, &portfolio, &achievements,
		&recentCampaigns, &engagementRate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan influencer: %w", err)
	}

	inf.Specialties = unmarshalStringList(specialties)
	inf.SocialCounts = unmarshalStringMap(socialCounts)

	if detailID.Valid {
		detail := &domain.InfluencerDetail{
			InfluencerID:   detailID.Int64,
			Bio:            bio.String,
			Location:       location.String,
			Rating:         rating.Float64,
			JoinDate:       joinDate.String,
			TotalReach:     totalReach.String,
			CampaignsCount: int(campaignsCount.Int64),
			Email:          email.String,
			Phone:          phone.String,
			EngagementRate: engagementRate.String,
		}
		detail.Portfolio = unmarshalStringList(portfolio)
		detail.Achievements = unmarshalStringList(achievements)
		if len(recentCampaigns) > 0 {
			_ = json.Unmarshal(recentCampaigns, &detail.RecentCampaigns)
		}
		inf.Detail = detail
	}
	return &inf, nil
}

// Categories 获取 active 网红的去重分类
func (r *PostgresInfluencersRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM influencers
		WHERE is_active = TRUE
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Specialties 展开 active 网红的 specialties 数组并去重，供后台自动补全
func (r *PostgresInfluencersRepository) Specialties(ctx context.Context, search string) ([]string, error) {
	query := `
		SELECT DISTINCT TRIM(s.value) AS specialty
		FROM influencers i
		CROSS JOIN LATERAL jsonb_array_elements_text(i.specialties) AS s(value)
		WHERE i.is_active = TRUE AND TRIM(s.value) <> ''`
	args := make([]any, 0, 1)
	if search != "" {
		query += `
		AND s.value ILIKE '%' || $1 || '%'`
		args = append(args, search)
	}
	query += `
		ORDER BY specialty`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query specialties: %w", err)
	}
	defer rows.Close()

	specialties := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan specialty: %w", err)
		}
		specialties = append(specialties, s)
	}
	return specialties, rows.Err()
}

// Create 插入新网红，slug 由 Name 派生
func (r *PostgresInfluencersRepository) Create(ctx context.Context, in NewInfluencer) (int64, error) {
	if in.Name == "" {
		return 0, fmt.Errorf("%w: name", ErrMissingField)
	}
	if in.ImageURL == "" {
		return 0, fmt.Errorf("%w: image_url", ErrMissingField)
	}

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO influencers (name, slug, category, image_url, specialties, social_counts, sort_order, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, TRUE, NOW())
		RETURNING id
	`,
		in.Name,
		domain.Slugify(in.Name),
		in.Category,
		in.ImageURL,
		marshalJSON(in.Specialties),
		marshalJSON(in.SocialCounts),
		in.SortOrder,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert influencer: %w", err)
	}
	return id, nil
}

// Update 稀疏更新；Name 变更时重算 slug
func (r *PostgresInfluencersRepository) Update(ctx context.Context, id int64, patch InfluencerPatch) error {
	b := newUpdateBuilder(2)
	if patch.Name != nil {
		b.Set("name", *patch.Name)
		b.Set("slug", domain.Slugify(*patch.Name))
	}
	if patch.Category != nil {
		b.Set("category", *patch.Category)
	}
	if patch.ImageURL != nil {
		b.Set("image_url", *patch.ImageURL)
	}
	if patch.Specialties != nil {
		b.SetJSON("specialties", *patch.Specialties)
	}
	if patch.SocialCounts != nil {
		b.SetJSON("social_counts", *patch.SocialCounts)
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
		UPDATE influencers
		SET %s, updated_at = NOW()
		WHERE id = $1
	`, b.Assignments())

	result, err := r.db.ExecContext(ctx, query, append([]any{id}, b.Args()...)...)
	if err != nil {
		return fmt.Errorf("update influencer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SoftDelete 软删除：行保留，list 不再返回
func (r *PostgresInfluencersRepository) SoftDelete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE influencers
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete influencer: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertDetail 详情存在则稀疏更新，否则插入
// 两步向导不跨语句事务：第一步成功第二步失败时，重试本方法即可
func (r *PostgresInfluencersRepository) UpsertDetail(ctx context.Context, influencerID int64, patch InfluencerDetailPatch) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM influencer_details WHERE influencer_id = $1)`,
		influencerID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check influencer detail: %w", err)
	}

	if exists {
		return r.updateDetail(ctx, influencerID, patch)
	}
	return r.insertDetail(ctx, influencerID, patch)
}

func (r *PostgresInfluencersRepository) insertDetail(ctx context.Context, influencerID int64, patch InfluencerDetailPatch) error {
	// 插入路径校验必填联系方式
	if patch.Email == nil || *patch.Email == "" {
		return fmt.Errorf("%w: email", ErrMissingField)
	}
	if patch.Phone == nil || *patch.Phone == "" {
		return fmt.Errorf("%w: phone", ErrMissingField)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO influencer_details
			(influencer_id, bio, location, rating, join_date, total_reach, campaigns_count,
			 email, phone, portfolio, achievements, recent_campaigns, engagement_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11::jsonb, $12::jsonb, $13)
	`,
		influencerID,
		strOrEmpty(patch.Bio),
		strOrEmpty(patch.Location),
		floatOrZero(patch.Rating),
		strOrEmpty(patch.JoinDate),
		strOrEmpty(patch.TotalReach),
		intOrZero(patch.CampaignsCount),
		*patch.Email,
		*patch.Phone,
		marshalJSON(sliceOrNil(patch.Portfolio)),
		marshalJSON(sliceOrNil(patch.Achievements)),
		marshalJSON(campaignsOrNil(patch.RecentCampaigns)),
		strOrEmpty(patch.EngagementRate),
	)
	if err != nil {
		return fmt.Errorf("insert influencer detail: %w", err)
	}
	return nil
}

func (r *PostgresInfluencersRepository) updateDetail(ctx context.Context, influencerID int64, patch InfluencerDetailPatch) error {
	b := newUpdateBuilder(2)
	if patch.Bio != nil {
		b.Set("bio", *patch.Bio)
	}
	if patch.Location != nil {
		b.Set("location", *patch.Location)
	}
	if patch.Rating != nil {
		b.Set("rating", *patch.Rating)
	}
	if patch.JoinDate != nil {
		b.Set("join_date", *patch.JoinDate)
	}
	if patch.TotalReach != nil {
		b.Set("total_reach", *patch.TotalReach)
	}
	if patch.CampaignsCount != nil {
		b.Set("campaigns_count", *patch.CampaignsCount)
	}
	if patch.Email != nil {
		b.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		b.Set("phone", *patch.Phone)
	}
	if patch.Portfolio != nil {
		b.SetJSON("portfolio", *patch.Portfolio)
	}
	if patch.Achievements != nil {
		b.SetJSON("achievements", *patch.Achievements)
	}
	if patch.RecentCampaigns != nil {
		b.SetJSON("recent_campaigns", *patch.RecentCampaigns)
	}
	if patch.EngagementRate != nil {
		b.Set("engagement_rate", *patch.EngagementRate)
	}
	if b.Empty() {
		return ErrNoFields
	}

	query := fmt.Sprintf(`
		UPDATE influencer_details
		SET %s, updated_at = NOW()
		WHERE influencer_id = $1
	`, b.Assignments())

	_, err := r.db.ExecContext(ctx, query, append([]any{influencerID}, b.Args()...)...)
	if err != nil {
		return fmt.Errorf("update influencer detail: %w", err)
	}
	return nil
}

// 指针解引用辅助（插入路径缺席字段取零值）

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func sliceOrNil(p *[]string) []string {
	if p == nil {
		return nil
	}
	return *p
}

func campaignsOrNil(p *[]domain.RecentCampaign) []domain.RecentCampaign {
	if p == nil {
		return nil
	}
	return *p
}
