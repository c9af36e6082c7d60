package models

import "gorm.io/gorm"

// CommentStatus defines the moderation state of a comment.
type CommentStatus string

const (
	CommentPending  CommentStatus = "PENDING"
	CommentApproved CommentStatus = "APPROVED"
	CommentSpam     CommentStatus = "SPAM"
	CommentTrash    CommentStatus = "TRASH"
)

// Comment represents a visitor comment on a post. UserID is set when the
// comment was left by a logged-in CMS user, otherwise AuthorName and
// AuthorEmail identify the visitor.
type Comment struct {
	gorm.Model
	PostID      uint          `gorm:"not null;index"`
	UserID      *uint         `gorm:"index"`
	AuthorName  string        `gorm:"size:255"`
	AuthorEmail string        `gorm:"size:255"`
	Content     string        `gorm:"not null"`
	Status      CommentStatus `gorm:"size:50;not null;default:'PENDING';index"`

	Post Post  `gorm:"foreignKey:PostID"`
	User *User `gorm:"foreignKey:UserID"`
}
