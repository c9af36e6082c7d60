package handler

import (
	"net/http"
	"strings"
	"time"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"
	"presskit/backend/internal/slug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// region --- DTOs ---

// CategoryInput defines the structure for creating or updating a category.
// The slug is derived from the name when omitted.
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CategoryResponse defines the structure for a category.
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	PostCount   int64     `json:"post_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func newCategoryResponse(category models.Category, postCount int64) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		Color:       category.Color,
		PostCount:   postCount,
		CreatedAt:   category.CreatedAt,
	}
}

// endregion

func resolveTaxonomySlug(name, given string) string {
	s := strings.TrimSpace(given)
	if s == "" {
		s = name
	}
	return slug.Normalize(s)
}

// ListCategories godoc
// @Summary      List categories
// @Description  Lists all categories with their published post counts.
// @Tags         categories
// @Produce      json
// @Success      200  {array}  CategoryResponse
// @Router       /categories [get]
func ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Order("name ASC").Find(&categories).Error; err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		var count int64
		database.DB.Model(&models.Post{}).Where("category_id = ?", category.ID).Count(&count)
		responses = append(responses, newCategoryResponse(category, count))
	}
	c.JSON(http.StatusOK, responses)
}

// GetCategory godoc
// @Summary      Get a category by ID
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Category not found"
// @Router       /categories/{id} [get]
func GetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var count int64
	database.DB.Model(&models.Post{}).Where("category_id = ?", category.ID).Count(&count)
	c.JSON(http.StatusOK, newCategoryResponse(category, count))
}

// CreateCategory godoc
// @Summary      Create a category
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CategoryInput true "Category Info"
// @Success      201  {object}  CategoryResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Name or slug already exists"
// @Router       /admin/categories [post]
func CreateCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categorySlug := resolveTaxonomySlug(input.Name, input.Slug)
	if categorySlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name yields an empty slug"})
		return
	}

	category := models.Category{
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
		Color:       input.Color,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category with this name or slug already exists"})
			return
		}
		log.Error().Err(err).Msg("failed to create category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, newCategoryResponse(category, 0))
}

// UpdateCategory godoc
// @Summary      Update a category
// @Tags         admin-categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Category ID"
// @Param        input body      CategoryInput true  "New Category Info"
// @Success      200   {object}  CategoryResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Category not found"
// @Failure      409   {object}  ErrorResponse "Name or slug already exists"
// @Router       /admin/categories/{id} [put]
func UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	categorySlug := resolveTaxonomySlug(input.Name, input.Slug)
	if categorySlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name yields an empty slug"})
		return
	}

	category.Name = input.Name
	category.Slug = categorySlug
	category.Description = input.Description
	category.Color = input.Color

	if err := database.DB.Save(&category).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category with this name or slug already exists"})
			return
		}
		log.Error().Err(err).Uint("category_id", category.ID).Msg("failed to update category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	var count int64
	database.DB.Model(&models.Post{}).Where("category_id = ?", category.ID).Count(&count)
	c.JSON(http.StatusOK, newCategoryResponse(category, count))
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Deletes a category; its posts become uncategorized.
// @Tags         admin-categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  map[string]string "{"message": "Category deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Category not found"
// @Router       /admin/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	if err := database.DB.Model(&models.Post{}).
		Where("category_id = ?", id).
		Update("category_id", nil).Error; err != nil {
		log.Error().Err(err).Msg("failed to detach posts from category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	result := database.DB.Delete(&models.Category{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint("category_id", id).Msg("failed to delete category")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
