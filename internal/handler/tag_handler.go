package handler

import (
	"net/http"
	"strconv"
	"time"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// region --- DTOs ---

// TagInput defines the structure for creating or updating a tag.
type TagInput struct {
	Name  string `json:"name" binding:"required"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

// TagResponse defines the structure for a tag.
type TagResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Color     string    `json:"color"`
	PostCount int64     `json:"post_count"`
	CreatedAt time.Time `json:"created_at"`
}

func newTagResponse(tag models.Tag, postCount int64) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		Slug:      tag.Slug,
		Color:     tag.Color,
		PostCount: postCount,
		CreatedAt: tag.CreatedAt,
	}
}

func tagPostCount(tagID uint) int64 {
	var count int64
	database.DB.Table("post_tags").Where("tag_id = ?", tagID).Count(&count)
	return count
}

// endregion

// ListTags godoc
// @Summary      List tags
// @Description  Lists tags ordered by name, with optional search and limit.
// @Tags         tags
// @Produce      json
// @Param        search query  string  false  "Search name or slug"
// @Param        limit  query  int     false  "Maximum number of tags" default(50)
// @Success      200  {array}  TagResponse
// @Router       /tags [get]
func ListTags(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	query := database.DB.Model(&models.Tag{})
	if search := c.Query("search"); search != "" {
		probe := "%" + search + "%"
		query = query.Where("name ILIKE ? OR slug ILIKE ?", probe, probe)
	}

	var tags []models.Tag
	if err := query.Order("name ASC").Limit(limit).Find(&tags).Error; err != nil {
		log.Error().Err(err).Msg("failed to list tags")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tags"})
		return
	}

	responses := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, newTagResponse(tag, tagPostCount(tag.ID)))
	}
	c.JSON(http.StatusOK, responses)
}

// GetTag godoc
// @Summary      Get a tag by ID
// @Tags         tags
// @Produce      json
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /tags/{id} [get]
func GetTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var tag models.Tag
	if err := database.DB.First(&tag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	c.JSON(http.StatusOK, newTagResponse(tag, tagPostCount(tag.ID)))
}

// CreateTag godoc
// @Summary      Create a tag
// @Tags         admin-tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body TagInput true "Tag Info"
// @Success      201  {object}  TagResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Name or slug already exists"
// @Router       /admin/tags [post]
func CreateTag(c *gin.Context) {
	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tagSlug := resolveTaxonomySlug(input.Name, input.Slug)
	if tagSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name yields an empty slug"})
		return
	}

	tag := models.Tag{Name: input.Name, Slug: tagSlug, Color: input.Color}
	if err := database.DB.Create(&tag).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag with this name or slug already exists"})
			return
		}
		log.Error().Err(err).Msg("failed to create tag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, newTagResponse(tag, 0))
}

// UpdateTag godoc
// @Summary      Update a tag
// @Tags         admin-tags
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int      true  "Tag ID"
// @Param        input body      TagInput true  "New Tag Info"
// @Success      200   {object}  TagResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Tag not found"
// @Failure      409   {object}  ErrorResponse "Name or slug already exists"
// @Router       /admin/tags/{id} [put]
func UpdateTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input TagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tag models.Tag
	if err := database.DB.First(&tag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	tagSlug := resolveTaxonomySlug(input.Name, input.Slug)
	if tagSlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name yields an empty slug"})
		return
	}

	tag.Name = input.Name
	tag.Slug = tagSlug
	tag.Color = input.Color

	if err := database.DB.Save(&tag).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Tag with this name or slug already exists"})
			return
		}
		log.Error().Err(err).Uint("tag_id", tag.ID).Msg("failed to update tag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, newTagResponse(tag, tagPostCount(tag.ID)))
}

// DeleteTag godoc
// @Summary      Delete a tag
// @Description  Removes all post associations, then deletes the tag.
// @Tags         admin-tags
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tag ID"
// @Success      200  {object}  map[string]string "{"message": "Tag deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Tag not found"
// @Router       /admin/tags/{id} [delete]
func DeleteTag(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var tag models.Tag
	if err := database.DB.First(&tag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tag).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("tag_id", tag.ID).Msg("failed to delete tag")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
