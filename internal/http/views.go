package httpapi

import (
	"encoding/json"
	"time"

	"kesif-backend/internal/domain"
)

// 对外 JSON 视图。domain 层只带 db 标签，字段命名在这里统一成前端字段名

type influencerView struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Slug         string               `json:"slug"`
	Category     string               `json:"category"`
	ImageURL     string               `json:"image_url"`
	Specialties  []string             `json:"specialties"`
	SocialCounts map[string]string    `json:"social_media"`
	SortOrder    int                  `json:"sort_order"`
	Active       bool                 `json:"is_active"`
	CreatedAt    time.Time            `json:"created_at"`
	Details      *influencerDetailView `json:"details,omitempty"`
}

type influencerDetailView struct {
	Bio             string                  `json:"bio"`
	Location        string                  `json:"location"`
	Rating          float64                 `json:"rating"`
	JoinDate        string                  `json:"join_date"`
	TotalReach      string                  `json:"total_reach"`
	CampaignsCount  int                     `json:"campaigns_count"`
	Email           string                  `json:"email"`
	Phone           string                  `json:"phone"`
	EngagementRate  string                  `json:"engagement_rate"`
	Portfolio       []string                `json:"portfolio"`
	Achievements    []string                `json:"achievements"`
	RecentCampaigns []domain.RecentCampaign `json:"recent_campaigns"`
}

func toInfluencerView(in domain.Influencer) influencerView {
	v := influencerView{
		ID:           in.ID,
		Name:         in.Name,
		Slug:         in.Slug,
		Category:     in.Category,
		ImageURL:     in.ImageURL,
		Specialties:  in.Specialties,
		SocialCounts: in.SocialCounts,
		SortOrder:    in.SortOrder,
		Active:       in.Active,
		CreatedAt:    in.CreatedAt,
	}
	if in.Detail != nil {
		v.Details = &influencerDetailView{
			Bio:             in.Detail.Bio,
			Location:        in.Detail.Location,
			Rating:          in.Detail.Rating,
			JoinDate:        in.Detail.JoinDate,
			TotalReach:      in.Detail.TotalReach,
			CampaignsCount:  in.Detail.CampaignsCount,
			Email:           in.Detail.Email,
			Phone:           in.Detail.Phone,
			EngagementRate:  in.Detail.EngagementRate,
			Portfolio:       in.Detail.Portfolio,
			Achievements:    in.Detail.Achievements,
			RecentCampaigns: in.Detail.RecentCampaigns,
		}
	}
	return v
}

func toInfluencerViews(items []domain.Influencer) []influencerView {
	out := make([]influencerView, 0, len(items))
	for _, in := range items {
		out = append(out, toInfluencerView(in))
	}
	return out
}

type brandView struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	LogoURL    string    `json:"logo_url"`
	WebsiteURL string    `json:"website_url"`
	Category   string    `json:"category"`
	SortOrder  int       `json:"sort_order"`
	Active     bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func toBrandViews(items []domain.Brand) []brandView {
	out := make([]brandView, 0, len(items))
	for _, b := range items {
		out = append(out, brandView{
			ID:         b.ID,
			Name:       b.Name,
			LogoURL:    b.LogoURL,
			WebsiteURL: b.WebsiteURL,
			Category:   b.Category,
			SortOrder:  b.SortOrder,
			Active:     b.Active,
			CreatedAt:  b.CreatedAt,
		})
	}
	return out
}

type sliderImageView struct {
	ID          int64     `json:"id"`
	ImageURL    string    `json:"image_url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	Active      bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toSliderViews(items []domain.SliderImage) []sliderImageView {
	out := make([]sliderImageView, 0, len(items))
	for _, s := range items {
		out = append(out, sliderImageView{
			ID:          s.ID,
			ImageURL:    s.ImageURL,
			Title:       s.Title,
			Description: s.Description,
			SortOrder:   s.SortOrder,
			Active:      s.Active,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out
}

type aboutContentView struct {
	ID          int64    `json:"id"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	Features    []string `json:"features"`
}

type aboutStatView struct {
	ID        int64  `json:"id"`
	Icon      string `json:"icon"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	SortOrder int    `json:"sort_order"`
}

type aboutValueView struct {
	ID          int64  `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
	SortOrder   int    `json:"sort_order"`
}

type aboutTeamView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type aboutPageView struct {
	Content []aboutContentView `json:"content"`
	Stats   []aboutStatView    `json:"stats"`
	Values  []aboutValueView   `json:"values"`
	Team    []aboutTeamView    `json:"team"`
}

func toAboutPageView(p *domain.AboutPage) aboutPageView {
	v := aboutPageView{
		Content: make([]aboutContentView, 0, len(p.Content)),
		Stats:   make([]aboutStatView, 0, len(p.Stats)),
		Values:  make([]aboutValueView, 0, len(p.Values)),
		Team:    make([]aboutTeamView, 0, len(p.Team)),
	}
	for _, c := range p.Content {
		v.Content = append(v.Content, aboutContentView{
			ID: c.ID, Kind: c.Kind, Title: c.Title, Description: c.Description,
			Icon: c.Icon, Color: c.Color, Features: c.Features,
		})
	}
	for _, s := range p.Stats {
		v.Stats = append(v.Stats, aboutStatView{
			ID: s.ID, Icon: s.Icon, Value: s.Value, Label: s.Label,
			Color: s.Color, SortOrder: s.SortOrder,
		})
	}
	for _, val := range p.Values {
		v.Values = append(v.Values, aboutValueView{
			ID: val.ID, Icon: val.Icon, Title: val.Title,
			Description: val.Description, Color: val.Color, SortOrder: val.SortOrder,
		})
	}
	for _, m := range p.Team {
		v.Team = append(v.Team, aboutTeamView{
			ID: m.ID, Name: m.Name, Role: m.Role, ImageURL: m.ImageURL,
			Description: m.Description, SortOrder: m.SortOrder,
		})
	}
	return v
}

// adminUserView 不回传密码哈希
type adminUserView struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Role        string     `json:"role"`
	Active      bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toAdminUserView(u *domain.AdminUser) adminUserView {
	return adminUserView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

type siteMetaView struct {
	ID                 int64  `json:"id"`
	PagePath           string `json:"page_path"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords"`
	OGTitle            string `json:"og_title"`
	OGDescription      string `json:"og_description"`
	OGImage            string `json:"og_image"`
	TwitterTitle       string `json:"twitter_title"`
	TwitterDescription string `json:"twitter_description"`
	TwitterImage       string `json:"twitter_image"`
	CanonicalURL       string `json:"canonical_url"`
}

func toSiteMetaView(m *domain.SiteMeta) siteMetaView {
	return siteMetaView{
		ID:                 m.ID,
		PagePath:           m.PagePath,
		Title:              m.Title,
		Description:        m.Description,
		Keywords:           m.Keywords,
		OGTitle:            m.OGTitle,
		OGDescription:      m.OGDescription,
		OGImage:            m.OGImage,
		TwitterTitle:       m.TwitterTitle,
		TwitterDescription: m.TwitterDescription,
		TwitterImage:       m.TwitterImage,
		CanonicalURL:       m.CanonicalURL,
	}
}

type auditLogView struct {
	ID           int64           `json:"id"`
	UserID       *int64          `json:"user_id,omitempty"`
	IPAddress    string          `json:"ip_address"`
	UserAgent    string          `json:"user_agent"`
	Action       string          `json:"action"`
	ResourceType string          `json:"resource_type"`
	ResourceID   *int64          `json:"resource_id,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toAuditLogViews(items []domain.AuditLog) []auditLogView {
	out := make([]auditLogView, 0, len(items))
	for _, e := range items {
		out = append(out, auditLogView{
			ID:           e.ID,
			UserID:       e.UserID,
			IPAddress:    e.IPAddress,
			UserAgent:    e.UserAgent,
			Action:       e.Action,
			ResourceType: e.ResourceType,
			ResourceID:   e.ResourceID,
			Details:      e.Details,
			CreatedAt:    e.CreatedAt,
		})
	}
	return out
}

type pageViewView struct {
	ID              int64     `json:"id"`
	PagePath        string    `json:"page_path"`
	PageTitle       string    `json:"page_title"`
	IPAddress       string    `json:"ip_address"`
	Referrer        string    `json:"referrer"`
	DurationSeconds int       `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
}

func toPageViewViews(items []domain.PageView) []pageViewView {
	out := make([]pageViewView, 0, len(items))
	for _, v := range items {
		out = append(out, pageViewView{
			ID:              v.ID,
			PagePath:        v.PagePath,
			PageTitle:       v.PageTitle,
			IPAddress:       v.IPAddress,
			Referrer:        v.Referrer,
			DurationSeconds: v.DurationSeconds,
			CreatedAt:       v.CreatedAt,
		})
	}
	return out
}

type influencerClickView struct {
	ID             int64     `json:"id"`
	InfluencerID   int64     `json:"influencer_id"`
	SourcePage     string    `json:"source_page"`
	ClickType      string    `json:"click_type"`
	SocialPlatform string    `json:"social_platform"`
	CreatedAt      time.Time `json:"created_at"`
}

func toClickViews(items []domain.InfluencerClick) []influencerClickView {
	out := make([]influencerClickView, 0, len(items))
	for _, c := range items {
		out = append(out, influencerClickView{
			ID:             c.ID,
			InfluencerID:   c.InfluencerID,
			SourcePage:     c.SourcePage,
			ClickType:      c.ClickType,
			SocialPlatform: c.SocialPlatform,
			CreatedAt:      c.CreatedAt,
		})
	}
	return out
}

type dashboardView struct {
	InfluencerCount  int64                  `json:"influencer_count"`
	BrandCount       int64                  `json:"brand_count"`
	TodayViews       int64                  `json:"today_views"`
	WeeklyViews      int64                  `json:"weekly_views"`
	TopInfluencers   []domain.TopInfluencer `json:"top_influencers"`
	RecentActivities []auditLogView         `json:"recent_activities"`
}

func toDashboardView(s *domain.DashboardStats) dashboardView {
	return dashboardView{
		InfluencerCount:  s.InfluencerCount,
		BrandCount:       s.BrandCount,
		TodayViews:       s.TodayViews,
		WeeklyViews:      s.WeeklyViews,
		TopInfluencers:   s.TopInfluencers,
		RecentActivities: toAuditLogViews(s.RecentActivities),
	}
}

// pagedView 分页响应负载
type pagedView struct {
	Items any `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}
