package handler

import (
	"net/http"
	"strings"
	"time"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"
	"presskit/backend/internal/slug"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PageInput defines the structure for creating or updating a page.
type PageInput struct {
	Title         string               `json:"title" binding:"required"`
	Slug          string               `json:"slug"`
	Content       string               `json:"content"`
	Excerpt       string               `json:"excerpt"`
	FeaturedImage string               `json:"featured_image"`
	Status        models.ContentStatus `json:"status" binding:"required,oneof=DRAFT PUBLISHED SCHEDULED ARCHIVED"`
	Template      string               `json:"template"`
	ParentID      *uint                `json:"parent_id"`
	Order         int                  `json:"order"`
	PublishedAt   *time.Time           `json:"published_at"`
	SEOMetadata   *SEOInput            `json:"seo_metadata"`
}

// PageRef is the compact parent/child page embedded in responses.
type PageRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
	Order int    `json:"order"`
}

// PageResponse defines the structure for a page including its hierarchy.
type PageResponse struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Permalink     string               `json:"permalink"`
	Content       string               `json:"content"`
	Excerpt       string               `json:"excerpt"`
	FeaturedImage string               `json:"featured_image"`
	Status        models.ContentStatus `json:"status"`
	Template      string               `json:"template"`
	Order         int                  `json:"order"`
	PublishedAt   *time.Time           `json:"published_at"`
	Author        AuthorResponse       `json:"author"`
	Parent        *PageRef             `json:"parent"`
	Children      []PageRef            `json:"children"`
	SEOMetadata   *SEOResponse         `json:"seo_metadata"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func newPageResponse(page models.Page, siteURL string) PageResponse {
	var parent *PageRef
	if page.Parent != nil {
		parent = &PageRef{ID: page.Parent.ID, Title: page.Parent.Title, Slug: page.Parent.Slug, Order: page.Parent.Order}
	}
	children := make([]PageRef, 0, len(page.Children))
	for _, child := range page.Children {
		children = append(children, PageRef{ID: child.ID, Title: child.Title, Slug: child.Slug, Order: child.Order})
	}

	return PageResponse{
		ID:            page.ID,
		Title:         page.Title,
		Slug:          page.Slug,
		Permalink:     slug.Permalink(siteURL, page.Slug),
		Content:       page.Content,
		Excerpt:       page.Excerpt,
		FeaturedImage: page.FeaturedImage,
		Status:        page.Status,
		Template:      page.Template,
		Order:         page.Order,
		PublishedAt:   page.PublishedAt,
		Author: AuthorResponse{
			ID:     page.Author.ID,
			Name:   page.Author.Name,
			Email:  page.Author.Email,
			Avatar: page.Author.Avatar,
		},
		Parent:      parent,
		Children:    children,
		SEOMetadata: newSEOResponse(page.SEO),
		CreatedAt:   page.CreatedAt,
		UpdatedAt:   page.UpdatedAt,
	}
}

// endregion

func pagePreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Parent").Preload("Children").Preload("SEO")
}

func resolvePageSlug(input *PageInput) string {
	s := strings.TrimSpace(input.Slug)
	if s == "" {
		s = slug.Normalize(input.Title)
	}
	if s == "" {
		s = "page-" + uuid.NewString()[:8]
	}
	return s
}

func (in *PageInput) apply(page *models.Page) {
	page.Title = in.Title
	page.Content = in.Content
	page.Excerpt = in.Excerpt
	page.FeaturedImage = in.FeaturedImage
	page.Status = in.Status
	page.ParentID = in.ParentID
	page.Order = in.Order
	page.PublishedAt = in.PublishedAt
	if in.Template != "" {
		page.Template = in.Template
	}
}

// ListPages godoc
// @Summary      List pages
// @Description  Lists pages with status filter, search, hierarchy ordering and pagination.
// @Tags         admin-pages
// @Produce      json
// @Security     BearerAuth
// @Param        status query  string  false  "Filter by status"
// @Param        search query  string  false  "Search title, content or excerpt"
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PageResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/pages [get]
func ListPages(c *gin.Context) {
	page, limit := pageParams(c, 10, 100)

	query := pagePreloads(database.DB.Model(&models.Page{}))
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		probe := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ? OR excerpt ILIKE ?", probe, probe, probe)
	}
	query = query.Order("\"order\" ASC").Order("title ASC")

	result, err := Paginate[models.Page](query, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list pages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve pages"})
		return
	}

	responses := make([]PageResponse, 0, len(result.Data))
	for _, p := range result.Data {
		responses = append(responses, newPageResponse(p, siteURL()))
	}
	c.JSON(http.StatusOK, PaginatedResponse[PageResponse]{Data: responses, Meta: result.Meta})
}

// GetPage godoc
// @Summary      Get a page by ID
// @Tags         admin-pages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Page ID"
// @Success      200  {object}  PageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Page not found"
// @Router       /admin/pages/{id} [get]
func GetPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var page models.Page
	if err := pagePreloads(database.DB).First(&page, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	c.JSON(http.StatusOK, newPageResponse(page, siteURL()))
}

// CreatePage godoc
// @Summary      Create a page
// @Tags         admin-pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PageInput true "Page Info"
// @Success      201  {object}  PageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Slug already in use"
// @Router       /admin/pages [post]
func CreatePage(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input PageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pageSlug := resolvePageSlug(&input)
	if !slug.IsValid(pageSlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	if input.ParentID != nil {
		var parent models.Page
		if err := database.DB.First(&parent, *input.ParentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent page not found"})
			return
		}
	}

	page := models.Page{
		Slug:     pageSlug,
		Template: "default",
		AuthorID: userID.(uint),
	}
	input.apply(&page)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&page).Error; err != nil {
			return err
		}
		return upsertSEO(tx, nil, &page.ID, input.SEOMetadata)
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
			return
		}
		log.Error().Err(err).Msg("failed to create page")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create page"})
		return
	}

	pagePreloads(database.DB).First(&page, page.ID)
	c.JSON(http.StatusCreated, newPageResponse(page, siteURL()))
}

// UpdatePage godoc
// @Summary      Update a page
// @Tags         admin-pages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Page ID"
// @Param        input body      PageInput true  "New Page Info"
// @Success      200   {object}  PageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Page not found"
// @Failure      409   {object}  ErrorResponse "Slug already in use"
// @Router       /admin/pages/{id} [put]
func UpdatePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var page models.Page
	if err := database.DB.First(&page, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	var input PageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pageSlug := resolvePageSlug(&input)
	if !slug.IsValid(pageSlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	if input.ParentID != nil {
		if *input.ParentID == page.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A page cannot be its own parent"})
			return
		}
		var parent models.Page
		if err := database.DB.First(&parent, *input.ParentID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent page not found"})
			return
		}
	}

	page.Slug = pageSlug
	input.apply(&page)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&page).Error; err != nil {
			return err
		}
		return upsertSEO(tx, nil, &page.ID, input.SEOMetadata)
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
			return
		}
		log.Error().Err(err).Uint("page_id", page.ID).Msg("failed to update page")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update page"})
		return
	}

	pagePreloads(database.DB).First(&page, page.ID)
	c.JSON(http.StatusOK, newPageResponse(page, siteURL()))
}

// DeletePage godoc
// @Summary      Delete a page
// @Description  Deletes a page and its SEO metadata; child pages are detached, not deleted.
// @Tags         admin-pages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Page ID"
// @Success      200  {object}  map[string]string "{"message": "Page deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Page not found"
// @Router       /admin/pages/{id} [delete]
func DeletePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var page models.Page
	if err := database.DB.First(&page, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Page{}).Where("parent_id = ?", page.ID).Update("parent_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.SEOMetadata{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("page_id", page.ID).Msg("failed to delete page")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Page deleted"})
}
