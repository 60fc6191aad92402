package domain

import "time"

// About 页内容的四个独立记录族：content（mission/vision 两块）、stats、values、team

// AboutContent 关于页内容块（对应 about_content 表）
// Kind 只有 mission / vision 两种
type AboutContent struct {
	ID int64 `db:"id"`

	Kind        string   `db:"kind"`        // VARCHAR(20), 'mission' | 'vision'
	Title       string   `db:"title"`       // VARCHAR(255), NOT NULL
	Description string   `db:"description"` // TEXT, NOT NULL
	Icon        string   `db:"icon"`        // VARCHAR(100)
	Color       string   `db:"color"`       // VARCHAR(50)
	Features    []string `db:"features"`    // JSONB, 有序字符串列表

	Active    bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AboutStat 关于页统计数字（对应 about_stats 表）
type AboutStat struct {
	ID int64 `db:"id"`

	Icon  string `db:"icon"`  // VARCHAR(100)
	Value string `db:"value"` // VARCHAR(50)
	Label string `db:"label"` // VARCHAR(255)
	Color string `db:"color"` // VARCHAR(50)

	SortOrder int       `db:"sort_order"`
	Active    bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AboutValue 关于页价值观条目（对应 about_values 表）
type AboutValue struct {
	ID int64 `db:"id"`

	Icon        string `db:"icon"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Color       string `db:"color"`

	SortOrder int       `db:"sort_order"`
	Active    bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AboutTeamMember 关于页团队成员（对应 about_team 表）
type AboutTeamMember struct {
	ID int64 `db:"id"`

	Name        string `db:"name"`
	Role        string `db:"role"`
	ImageURL    string `db:"image_url"`
	Description string `db:"description"`

	SortOrder int       `db:"sort_order"`
	Active    bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AboutPage 关于页聚合（GetAll 的返回）
type AboutPage struct {
	Content []AboutContent    `json:"content"`
	Stats   []AboutStat       `json:"stats"`
	Values  []AboutValue      `json:"values"`
	Team    []AboutTeamMember `json:"team"`
}
