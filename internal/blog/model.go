package blog

import (
	"time"

	"gorm.io/datatypes"
)

// ContentSection is one structured block of a long-form post
type ContentSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// ============================
// 🔷 GORM Blog Model
// Slug is immutable-unique. Views and likes are counters mutated only by
// the dedicated increment operations. PublishedAt is stamped at creation:
// it doubles as the display date of the article header, so drafts carry
// it too (events behave differently on purpose, see their model).
type Blog struct {
	ID              uint                                 `gorm:"primaryKey" json:"id"`
	Title           string                               `gorm:"type:varchar(255);not null" json:"title"`
	Slug            string                               `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Excerpt         string                               `gorm:"type:text" json:"excerpt"`
	Content         string                               `gorm:"type:text;not null" json:"content"`
	ContentSections datatypes.JSONType[[]ContentSection] `json:"contentSections"`
	Image           string                               `gorm:"type:varchar(512)" json:"image"`
	Author          string                               `gorm:"type:varchar(120)" json:"author"`
	Category        string                               `gorm:"type:varchar(100);index" json:"category"`
	Tags            datatypes.JSONType[[]string]         `json:"tags"`
	ReadTime        string                               `gorm:"type:varchar(32)" json:"readTime"`
	Featured        bool                                 `gorm:"default:false;index" json:"featured"`
	Published       bool                                 `gorm:"default:false;index" json:"published"`
	PublishedAt     time.Time                            `json:"publishedAt"`
	Views           int64                                `gorm:"default:0" json:"views"`
	Likes           int64                                `gorm:"default:0" json:"likes"`
	SEOTitle        string                               `gorm:"type:varchar(255)" json:"seoTitle"`
	SEODescription  string                               `gorm:"type:varchar(512)" json:"seoDescription"`
	CreatedAt       time.Time                            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time                            `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ============================
// 🟡 Create / Update Request (admin)
type BlogRequest struct {
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Excerpt         string           `json:"excerpt"`
	Content         string           `json:"content"`
	ContentSections []ContentSection `json:"contentSections"`
	Image           string           `json:"image"`
	Author          string           `json:"author"`
	Category        string           `json:"category"`
	Tags            []string         `json:"tags"`
	ReadTime        string           `json:"readTime"`
	Featured        *bool            `json:"featured,omitempty"`
	Published       *bool            `json:"published,omitempty"`
	SEOTitle        string           `json:"seoTitle"`
	SEODescription  string           `json:"seoDescription"`
}

// ListFilters narrows the public and admin list queries
type ListFilters struct {
	Category string
	Featured *bool
	Search   string
}

// StatsResponse summarizes the blog collection
type StatsResponse struct {
	TotalPosts     int64 `json:"totalPosts"`
	PublishedPosts int64 `json:"publishedPosts"`
	TotalViews     int64 `json:"totalViews"`
	TotalLikes     int64 `json:"totalLikes"`
}
