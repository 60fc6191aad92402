package domain

import "time"

// Brand 品牌领域模型（对应 brands 表）
type Brand struct {
	ID int64 `db:"id"` // BIGSERIAL, PRIMARY KEY

	Name       string `db:"name"`        // VARCHAR(255), NOT NULL
	LogoURL    string `db:"logo_url"`    // VARCHAR(500), NOT NULL
	WebsiteURL string `db:"website_url"` // VARCHAR(500), nullable
	Category   string `db:"category"`    // VARCHAR(100), nullable

	SortOrder int  `db:"sort_order"` // INT, DEFAULT 0
	Active    bool `db:"is_active"`  // BOOLEAN, DEFAULT TRUE

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SliderImage 首页轮播图（对应 slider_images 表）
// 支持 move up/down：与相邻行交换 sort_order
type SliderImage struct {
	ID int64 `db:"id"` // BIGSERIAL, PRIMARY KEY

	ImageURL    string `db:"image_url"`   // VARCHAR(500), NOT NULL
	Title       string `db:"title"`       // VARCHAR(255), nullable
	Description string `db:"description"` // TEXT, nullable

	SortOrder int  `db:"sort_order"` // INT, DEFAULT 0
	Active    bool `db:"is_active"`  // BOOLEAN, DEFAULT TRUE

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
