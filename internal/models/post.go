package models

import (
	"time"

	"gorm.io/gorm"
)

// ContentStatus defines the publication state of a post or page.
type ContentStatus string

const (
	StatusDraft     ContentStatus = "DRAFT"
	StatusPublished ContentStatus = "PUBLISHED"
	StatusScheduled ContentStatus = "SCHEDULED"
	StatusArchived  ContentStatus = "ARCHIVED"
)

// PostFormat defines the WordPress-style post format.
type PostFormat string

const (
	FormatStandard PostFormat = "STANDARD"
	FormatVideo    PostFormat = "VIDEO"
	FormatAudio    PostFormat = "AUDIO"
	FormatQuote    PostFormat = "QUOTE"
	FormatLink     PostFormat = "LINK"
)

// Post represents a blog post. The slug is the final path segment of its
// permalink and must be unique among posts.
type Post struct {
	gorm.Model
	Title         string `gorm:"size:255;not null"`
	Slug          string `gorm:"size:255;unique;not null"`
	Content       string `gorm:"type:text"`
	Excerpt       string
	FeaturedImage string        `gorm:"size:512"`
	Status        ContentStatus `gorm:"size:50;not null;default:'DRAFT';index"`
	Format        PostFormat    `gorm:"size:50;not null;default:'STANDARD'"`
	PublishedAt   *time.Time    `gorm:"index"`
	AllowComments bool          `gorm:"not null;default:true"`
	Sticky        bool          `gorm:"not null;default:false"`
	Password      string        `gorm:"size:255"`

	// Format-specific fields, only one group is populated per format.
	VideoURL    string `gorm:"size:512"`
	AudioURL    string `gorm:"size:512"`
	QuoteText   string
	QuoteAuthor string `gorm:"size:255"`
	LinkURL     string `gorm:"size:512"`
	LinkTitle   string `gorm:"size:255"`

	AuthorID   uint  `gorm:"not null;index"`
	CategoryID *uint `gorm:"index"`

	Author   User         `gorm:"foreignKey:AuthorID"`
	Category *Category    `gorm:"foreignKey:CategoryID"`
	Tags     []*Tag       `gorm:"many2many:post_tags;"`
	SEO      *SEOMetadata `gorm:"foreignKey:PostID"`
	Comments []Comment    `gorm:"foreignKey:PostID"`
}
