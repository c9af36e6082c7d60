package models

import "gorm.io/gorm"

// MediaType classifies an uploaded file by its MIME type.
type MediaType string

const (
	MediaImage    MediaType = "IMAGE"
	MediaVideo    MediaType = "VIDEO"
	MediaAudio    MediaType = "AUDIO"
	MediaDocument MediaType = "DOCUMENT"
	MediaOther    MediaType = "OTHER"
)

// Media represents a file in the media library.
type Media struct {
	gorm.Model
	Filename     string    `gorm:"size:255;not null"`
	OriginalName string    `gorm:"size:255;not null"`
	FilePath     string    `gorm:"size:512;not null"`
	FileSize     int64     `gorm:"not null"`
	MimeType     string    `gorm:"size:100;not null"`
	Type         MediaType `gorm:"size:50;not null;index"`
	AltText      string    `gorm:"size:255"`
	Title        string    `gorm:"size:255"`
	Caption      string
	Description  string

	UploadedBy uint `gorm:"not null;index"`
	Uploader   User `gorm:"foreignKey:UploadedBy"`
}
