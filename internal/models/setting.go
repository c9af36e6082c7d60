package models

import "gorm.io/gorm"

// Setting is a single key/value site setting, grouped for the admin UI
// (e.g. "general", "reading", "discussion").
type Setting struct {
	gorm.Model
	Key   string `gorm:"size:100;unique;not null"`
	Value string
	Group string `gorm:"size:50;not null;default:'general';index"`
}
