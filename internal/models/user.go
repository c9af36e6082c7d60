package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole defines the access level of a CMS user.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleEditor     UserRole = "EDITOR"
	RoleAuthor     UserRole = "AUTHOR"
)

// User represents a CMS user (admin, editor or author).
type User struct {
	gorm.Model
	Email        string   `gorm:"size:255;unique;not null"`
	Username     string   `gorm:"size:255;unique;not null"`
	Name         string   `gorm:"size:255;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:50;not null;default:'AUTHOR';index"`
	Avatar       string   `gorm:"size:512"`
	Bio          string
	IsActive     bool `gorm:"not null;default:true"`
	LastLoginAt  *time.Time

	Posts []Post `gorm:"foreignKey:AuthorID"`
	Pages []Page `gorm:"foreignKey:AuthorID"`
}

// CanManageUsers reports whether the role may administer other users.
func (r UserRole) CanManageUsers() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}
