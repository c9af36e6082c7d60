package models

import (
	"time"

	"gorm.io/gorm"
)

// Page represents a static site page. Pages may be nested one level deep
// through ParentID and are ordered within their parent via Order.
type Page struct {
	gorm.Model
	Title         string `gorm:"size:255;not null"`
	Slug          string `gorm:"size:255;unique;not null"`
	Content       string `gorm:"type:text"`
	Excerpt       string
	FeaturedImage string        `gorm:"size:512"`
	Status        ContentStatus `gorm:"size:50;not null;default:'DRAFT';index"`
	Template      string        `gorm:"size:100;not null;default:'default'"`
	Order         int           `gorm:"not null;default:0"`
	PublishedAt   *time.Time

	AuthorID uint  `gorm:"not null;index"`
	ParentID *uint `gorm:"index"`

	Author   User         `gorm:"foreignKey:AuthorID"`
	Parent   *Page        `gorm:"foreignKey:ParentID"`
	Children []Page       `gorm:"foreignKey:ParentID"`
	SEO      *SEOMetadata `gorm:"foreignKey:PageID"`
}
