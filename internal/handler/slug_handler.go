package handler

import (
	"net/http"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"
	"presskit/backend/internal/slug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// region --- DTOs ---

// SlugCheckInput defines the structure for a slug availability check.
// CurrentID, when set, excludes that record from the collision search so
// editing a record does not flag its own slug.
type SlugCheckInput struct {
	Text      string `json:"text" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=post page"`
	CurrentID *uint  `json:"current_id"`
}

// SlugCheckResponse defines the structure for a resolved slug. Suggestions
// are for UI display only and are not themselves guaranteed unique.
type SlugCheckResponse struct {
	Slug        string   `json:"slug"`
	IsUnique    bool     `json:"is_unique"`
	Suggestions []string `json:"suggestions"`
}

// endregion

// CheckSlug godoc
// @Summary      Resolve a unique slug for free text
// @Description  Normalizes text into a slug and disambiguates it against slugs already used by the given content type. Best-effort: a concurrent save can still collide, which the save endpoints answer with 409.
// @Tags         admin-slugs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SlugCheckInput true "Slug Check Request"
// @Success      200  {object}  SlugCheckResponse
// @Failure      400  {object}  ErrorResponse "Missing text or invalid type"
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/slugs/check [post]
func CheckSlug(c *gin.Context) {
	var input SlugCheckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	base := slug.Normalize(input.Text)
	if base == "" {
		// Nothing retainable in the text (e.g. an all-emoji title): fall
		// back to a generated identifier, which is unique for practical
		// purposes.
		generated := "untitled-" + uuid.NewString()[:8]
		c.JSON(http.StatusOK, SlugCheckResponse{Slug: generated, IsUnique: true, Suggestions: []string{}})
		return
	}

	query := database.DB.Select("slug").Where("slug LIKE ?", base+"%")
	if input.CurrentID != nil {
		query = query.Where("id <> ?", *input.CurrentID)
	}

	var existing []string
	var err error
	switch input.Type {
	case "post":
		err = query.Model(&models.Post{}).Pluck("slug", &existing).Error
	case "page":
		err = query.Model(&models.Page{}).Pluck("slug", &existing).Error
	}
	if err != nil {
		log.Error().Err(err).Str("type", input.Type).Msg("slug check query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	existingSet := make(map[string]bool, len(existing))
	for _, s := range existing {
		existingSet[s] = true
	}

	unique := slug.EnsureUnique(base, existingSet)

	suggestions := []string{}
	if len(existing) > 0 {
		suggestions = []string{unique, base + "-2", base + "-alternative"}
	}

	c.JSON(http.StatusOK, SlugCheckResponse{
		Slug:        unique,
		IsUnique:    unique == base,
		Suggestions: suggestions,
	})
}
