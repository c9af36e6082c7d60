package models

import "gorm.io/gorm"

// Category represents a post category (e.g. "News", "Tutorials").
// A post belongs to at most one category.
type Category struct {
	gorm.Model
	Name        string `gorm:"size:100;unique;not null"`
	Slug        string `gorm:"size:100;unique;not null"`
	Description string
	Color       string `gorm:"size:20"`

	Posts []Post `gorm:"foreignKey:CategoryID"`
}

// Tag represents a free-form post tag. Tags are created lazily the first
// time a post references an unknown tag name; the slug is the identity key.
type Tag struct {
	gorm.Model
	Name  string `gorm:"size:100;unique;not null"`
	Slug  string `gorm:"size:100;unique;not null"`
	Color string `gorm:"size:20"`

	Posts []*Post `gorm:"many2many:post_tags;"`
}
