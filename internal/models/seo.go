package models

import "gorm.io/gorm"

// SEOMetadata holds per-content SEO fields. Exactly one of PostID or PageID
// is set; each post or page has at most one metadata row.
type SEOMetadata struct {
	gorm.Model
	MetaTitle       string `gorm:"size:255"`
	MetaDescription string `gorm:"size:512"`
	Keywords        string `gorm:"size:512"`
	OGTitle         string `gorm:"size:255"`
	OGDescription   string `gorm:"size:512"`
	OGImage         string `gorm:"size:512"`
	TwitterTitle    string `gorm:"size:255"`
	TwitterCard     string `gorm:"size:50"`
	CanonicalURL    string `gorm:"size:512"`
	NoIndex         bool   `gorm:"not null;default:false"`
	NoFollow        bool   `gorm:"not null;default:false"`

	PostID *uint `gorm:"uniqueIndex"`
	PageID *uint `gorm:"uniqueIndex"`
}
