package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"presskit/backend/internal/config"
	"presskit/backend/internal/database"
	"presskit/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// maxUploadSize caps a single uploaded file at 50MB.
const maxUploadSize = 50 << 20

var allowedMimeTypes = map[string]bool{
	"image/jpeg": true, "image/jpg": true, "image/png": true, "image/gif": true,
	"image/webp": true, "image/svg+xml": true,
	"video/mp4": true, "video/webm": true, "video/ogg": true, "video/quicktime": true,
	"audio/mpeg": true, "audio/wav": true, "audio/ogg": true, "audio/webm": true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain": true, "text/csv": true,
}

// mediaTypeFor classifies a MIME type into a media library bucket.
func mediaTypeFor(mimeType string) models.MediaType {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return models.MediaImage
	case strings.HasPrefix(mimeType, "video/"):
		return models.MediaVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return models.MediaAudio
	case strings.Contains(mimeType, "pdf"), strings.Contains(mimeType, "document"),
		strings.Contains(mimeType, "sheet"), strings.Contains(mimeType, "presentation"),
		strings.HasPrefix(mimeType, "text/"):
		return models.MediaDocument
	}
	return models.MediaOther
}

// uploadPath builds the <type>/<year>/<month> directory for a MIME type,
// creating it under the configured upload root.
func uploadPath(mimeType string) (string, error) {
	now := time.Now()
	dir := filepath.Join(
		config.AppConfig.UploadDir,
		strings.ToLower(string(mediaTypeFor(mimeType))),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// region --- DTOs ---

// MediaUpdateInput defines the editable metadata of a media item.
type MediaUpdateInput struct {
	AltText     string `json:"alt_text"`
	Title       string `json:"title"`
	Caption     string `json:"caption"`
	Description string `json:"description"`
}

// MediaResponse defines the structure for a media library item.
type MediaResponse struct {
	ID           uint             `json:"id"`
	Filename     string           `json:"filename"`
	OriginalName string           `json:"original_name"`
	FilePath     string           `json:"file_path"`
	FileSize     int64            `json:"file_size"`
	MimeType     string           `json:"mime_type"`
	Type         models.MediaType `json:"type"`
	AltText      string           `json:"alt_text"`
	Title        string           `json:"title"`
	Caption      string           `json:"caption"`
	Description  string           `json:"description"`
	Uploader     AuthorResponse   `json:"uploader"`
	CreatedAt    time.Time        `json:"created_at"`
}

func newMediaResponse(media models.Media) MediaResponse {
	return MediaResponse{
		ID:           media.ID,
		Filename:     media.Filename,
		OriginalName: media.OriginalName,
		FilePath:     media.FilePath,
		FileSize:     media.FileSize,
		MimeType:     media.MimeType,
		Type:         media.Type,
		AltText:      media.AltText,
		Title:        media.Title,
		Caption:      media.Caption,
		Description:  media.Description,
		Uploader: AuthorResponse{
			ID:    media.Uploader.ID,
			Name:  media.Uploader.Name,
			Email: media.Uploader.Email,
		},
		CreatedAt: media.CreatedAt,
	}
}

// UploadResult reports per-file outcomes of a multi-file upload.
type UploadResult struct {
	Uploaded []MediaResponse `json:"uploaded"`
	Errors   []UploadError   `json:"errors"`
}

// UploadError describes why a single file was rejected.
type UploadError struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// endregion

// ListMedia godoc
// @Summary      List media library items
// @Tags         admin-media
// @Produce      json
// @Security     BearerAuth
// @Param        type   query  string  false  "Filter by media type"
// @Param        search query  string  false  "Search name, title or alt text"
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[MediaResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/media [get]
func ListMedia(c *gin.Context) {
	page, limit := pageParams(c, 20, 100)

	query := database.DB.Model(&models.Media{}).Preload("Uploader")
	if mediaType := c.Query("type"); mediaType != "" && mediaType != "all" {
		query = query.Where("type = ?", mediaType)
	}
	if search := c.Query("search"); search != "" {
		probe := "%" + search + "%"
		query = query.Where("original_name ILIKE ? OR alt_text ILIKE ? OR title ILIKE ?", probe, probe, probe)
	}
	query = query.Order("created_at DESC")

	result, err := Paginate[models.Media](query, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list media")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve media"})
		return
	}

	responses := make([]MediaResponse, 0, len(result.Data))
	for _, media := range result.Data {
		responses = append(responses, newMediaResponse(media))
	}
	c.JSON(http.StatusOK, PaginatedResponse[MediaResponse]{Data: responses, Meta: result.Meta})
}

// UploadMedia godoc
// @Summary      Upload files to the media library
// @Description  Accepts multipart form files, validates type and size, stores them under type/year/month and records library entries. Partial success is reported per file.
// @Tags         admin-media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        files formData file true "Files to upload"
// @Success      201  {object}  UploadResult
// @Failure      400  {object}  ErrorResponse "No files uploaded"
// @Router       /admin/media/upload [post]
func UploadMedia(c *gin.Context) {
	userID, _ := c.Get("userID")

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}

	result := UploadResult{Uploaded: []MediaResponse{}, Errors: []UploadError{}}
	for _, file := range files {
		mimeType := file.Header.Get("Content-Type")
		if !allowedMimeTypes[mimeType] {
			result.Errors = append(result.Errors, UploadError{FileName: file.Filename, Error: "File type not allowed"})
			continue
		}
		if file.Size > maxUploadSize {
			result.Errors = append(result.Errors, UploadError{FileName: file.Filename, Error: "File size exceeds 50MB limit"})
			continue
		}

		dir, err := uploadPath(mimeType)
		if err != nil {
			result.Errors = append(result.Errors, UploadError{FileName: file.Filename, Error: "Failed to prepare upload directory"})
			continue
		}

		filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
		dst := filepath.Join(dir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			log.Error().Err(err).Str("file", file.Filename).Msg("failed to store upload")
			result.Errors = append(result.Errors, UploadError{FileName: file.Filename, Error: "Failed to store file"})
			continue
		}

		media := models.Media{
			Filename:     filename,
			OriginalName: file.Filename,
			FilePath:     "/" + filepath.ToSlash(dst),
			FileSize:     file.Size,
			MimeType:     mimeType,
			Type:         mediaTypeFor(mimeType),
			UploadedBy:   userID.(uint),
		}
		if err := database.DB.Create(&media).Error; err != nil {
			log.Error().Err(err).Str("file", file.Filename).Msg("failed to record upload")
			result.Errors = append(result.Errors, UploadError{FileName: file.Filename, Error: "Failed to record file"})
			continue
		}
		database.DB.Preload("Uploader").First(&media, media.ID)
		result.Uploaded = append(result.Uploaded, newMediaResponse(media))
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateMedia godoc
// @Summary      Update media metadata
// @Tags         admin-media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Media ID"
// @Param        input body      MediaUpdateInput true  "New Metadata"
// @Success      200   {object}  MediaResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Media not found"
// @Router       /admin/media/{id} [put]
func UpdateMedia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input MediaUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var media models.Media
	if err := database.DB.Preload("Uploader").First(&media, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}

	media.AltText = input.AltText
	media.Title = input.Title
	media.Caption = input.Caption
	media.Description = input.Description
	if err := database.DB.Save(&media).Error; err != nil {
		log.Error().Err(err).Uint("media_id", media.ID).Msg("failed to update media")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update media"})
		return
	}

	c.JSON(http.StatusOK, newMediaResponse(media))
}

// DeleteMedia godoc
// @Summary      Delete a media item
// @Description  Removes the library record and the stored file.
// @Tags         admin-media
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Media ID"
// @Success      200  {object}  map[string]string "{"message": "Media deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Media not found"
// @Router       /admin/media/{id} [delete]
func DeleteMedia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var media models.Media
	if err := database.DB.First(&media, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}

	if err := database.DB.Delete(&media).Error; err != nil {
		log.Error().Err(err).Uint("media_id", media.ID).Msg("failed to delete media")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete media"})
		return
	}

	// Best effort: a missing file on disk is not an API error.
	if err := os.Remove(strings.TrimPrefix(media.FilePath, "/")); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", media.FilePath).Msg("failed to remove stored file")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Media deleted"})
}
