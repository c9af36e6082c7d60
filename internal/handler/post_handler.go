package handler

import (
	"net/http"
	"strings"
	"time"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"
	"presskit/backend/internal/slug"
	"presskit/backend/internal/taxonomy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PostInput defines the structure for creating or updating a post. The slug
// is taken as given from the client, which is expected to have resolved it
// through the slug-check endpoint; the unique index is the final arbiter.
type PostInput struct {
	Title         string               `json:"title" binding:"required"`
	Slug          string               `json:"slug"`
	Content       string               `json:"content"`
	Excerpt       string               `json:"excerpt"`
	FeaturedImage string               `json:"featured_image"`
	Status        models.ContentStatus `json:"status" binding:"required,oneof=DRAFT PUBLISHED SCHEDULED ARCHIVED"`
	Format        models.PostFormat    `json:"format" binding:"omitempty,oneof=STANDARD VIDEO AUDIO QUOTE LINK"`
	PublishedAt   *time.Time           `json:"published_at"`
	CategoryID    *uint                `json:"category_id"`
	AllowComments *bool                `json:"allow_comments"`
	Sticky        bool                 `json:"sticky"`
	Password      string               `json:"password"`
	VideoURL      string               `json:"video_url"`
	AudioURL      string               `json:"audio_url"`
	QuoteText     string               `json:"quote_text"`
	QuoteAuthor   string               `json:"quote_author"`
	LinkURL       string               `json:"link_url"`
	LinkTitle     string               `json:"link_title"`
	Tags          []taxonomy.TagRef    `json:"tags"`
	SEOMetadata   *SEOInput            `json:"seo_metadata"`
}

// AuthorResponse is the compact author embedded in content responses.
type AuthorResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// PostResponse defines the structure for a post including its relations.
type PostResponse struct {
	ID            uint                 `json:"id"`
	Title         string               `json:"title"`
	Slug          string               `json:"slug"`
	Permalink     string               `json:"permalink"`
	Content       string               `json:"content"`
	Excerpt       string               `json:"excerpt"`
	FeaturedImage string               `json:"featured_image"`
	Status        models.ContentStatus `json:"status"`
	Format        models.PostFormat    `json:"format"`
	PublishedAt   *time.Time           `json:"published_at"`
	AllowComments bool                 `json:"allow_comments"`
	Sticky        bool                 `json:"sticky"`
	VideoURL      string               `json:"video_url,omitempty"`
	AudioURL      string               `json:"audio_url,omitempty"`
	QuoteText     string               `json:"quote_text,omitempty"`
	QuoteAuthor   string               `json:"quote_author,omitempty"`
	LinkURL       string               `json:"link_url,omitempty"`
	LinkTitle     string               `json:"link_title,omitempty"`
	Author        AuthorResponse       `json:"author"`
	Category      *CategoryResponse    `json:"category"`
	Tags          []TagResponse        `json:"tags"`
	SEOMetadata   *SEOResponse         `json:"seo_metadata"`
	CommentCount  int64                `json:"comment_count"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func newPostResponse(post models.Post, siteURL string) PostResponse {
	var category *CategoryResponse
	if post.Category != nil {
		r := newCategoryResponse(*post.Category, 0)
		category = &r
	}

	tags := lo.Map(post.Tags, func(tag *models.Tag, _ int) TagResponse {
		return newTagResponse(*tag, 0)
	})

	var commentCount int64
	database.DB.Model(&models.Comment{}).
		Where("post_id = ? AND status = ?", post.ID, models.CommentApproved).
		Count(&commentCount)

	return PostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Permalink:     slug.Permalink(siteURL, post.Slug),
		Content:       post.Content,
		Excerpt:       post.Excerpt,
		FeaturedImage: post.FeaturedImage,
		Status:        post.Status,
		Format:        post.Format,
		PublishedAt:   post.PublishedAt,
		AllowComments: post.AllowComments,
		Sticky:        post.Sticky,
		VideoURL:      post.VideoURL,
		AudioURL:      post.AudioURL,
		QuoteText:     post.QuoteText,
		QuoteAuthor:   post.QuoteAuthor,
		LinkURL:       post.LinkURL,
		LinkTitle:     post.LinkTitle,
		Author: AuthorResponse{
			ID:     post.Author.ID,
			Name:   post.Author.Name,
			Email:  post.Author.Email,
			Avatar: post.Author.Avatar,
		},
		Category:     category,
		Tags:         tags,
		SEOMetadata:  newSEOResponse(post.SEO),
		CommentCount: commentCount,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

// endregion

func postPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("Tags").Preload("SEO")
}

// resolvePostSlug fills in a missing slug from the title and guards the
// empty-normalization edge (all-emoji titles and the like) with a generated
// identifier.
func resolvePostSlug(input *PostInput) string {
	s := strings.TrimSpace(input.Slug)
	if s == "" {
		s = slug.Normalize(input.Title)
	}
	if s == "" {
		s = "untitled-" + uuid.NewString()[:8]
	}
	return s
}

func (in *PostInput) apply(post *models.Post) {
	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.FeaturedImage = in.FeaturedImage
	post.Status = in.Status
	post.PublishedAt = in.PublishedAt
	post.CategoryID = in.CategoryID
	post.Sticky = in.Sticky
	post.Password = in.Password
	post.VideoURL = in.VideoURL
	post.AudioURL = in.AudioURL
	post.QuoteText = in.QuoteText
	post.QuoteAuthor = in.QuoteAuthor
	post.LinkURL = in.LinkURL
	post.LinkTitle = in.LinkTitle
	if in.Format != "" {
		post.Format = in.Format
	}
	if in.AllowComments != nil {
		post.AllowComments = *in.AllowComments
	}
}

// region --- Admin Handlers ---

// ListPosts godoc
// @Summary      List posts
// @Description  Lists posts with status/format/category filters, search, sticky-first ordering and pagination.
// @Tags         admin-posts
// @Produce      json
// @Security     BearerAuth
// @Param        status      query  string  false  "Filter by status"
// @Param        format      query  string  false  "Filter by format"
// @Param        category_id query  int     false  "Filter by category"
// @Param        search      query  string  false  "Search title, content or excerpt"
// @Param        page        query  int     false  "Page number" default(1)
// @Param        limit       query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/posts [get]
func ListPosts(c *gin.Context) {
	page, limit := pageParams(c, 10, 100)

	query := postPreloads(database.DB.Model(&models.Post{}))
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if format := c.Query("format"); format != "" && format != "all" {
		query = query.Where("format = ?", format)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		probe := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ? OR excerpt ILIKE ?", probe, probe, probe)
	}
	query = query.Order("sticky DESC").Order("published_at DESC NULLS LAST").Order("created_at DESC")

	result, err := Paginate[models.Post](query, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	responses := make([]PostResponse, 0, len(result.Data))
	for _, post := range result.Data {
		responses = append(responses, newPostResponse(post, siteURL()))
	}
	c.JSON(http.StatusOK, PaginatedResponse[PostResponse]{Data: responses, Meta: result.Meta})
}

// GetPost godoc
// @Summary      Get a post by ID
// @Tags         admin-posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /admin/posts/{id} [get]
func GetPost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var post models.Post
	if err := postPreloads(database.DB).First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, newPostResponse(post, siteURL()))
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post, reconciles its tag associations and stores SEO metadata in one transaction.
// @Tags         admin-posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostInput true "Post Info"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Slug already in use"
// @Router       /admin/posts [post]
func CreatePost(c *gin.Context) {
	userID, _ := c.Get("userID")

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postSlug := resolvePostSlug(&input)
	if !slug.IsValid(postSlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	post := models.Post{
		Slug:          postSlug,
		Format:        models.FormatStandard,
		AllowComments: true,
		AuthorID:      userID.(uint),
	}
	input.apply(&post)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if err := taxonomy.ReconcileTags(tx, &post, input.Tags); err != nil {
			return err
		}
		return upsertSEO(tx, &post.ID, nil, input.SEOMetadata)
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
			return
		}
		log.Error().Err(err).Msg("failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	postPreloads(database.DB).First(&post, post.ID)
	c.JSON(http.StatusCreated, newPostResponse(post, siteURL()))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Updates a post and replaces its tag associations so they exactly match the submitted list.
// @Tags         admin-posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "Post ID"
// @Param        input body      PostInput true  "New Post Info"
// @Success      200   {object}  PostResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Post not found"
// @Failure      409   {object}  ErrorResponse "Slug already in use"
// @Router       /admin/posts/{id} [put]
func UpdatePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var input PostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	postSlug := resolvePostSlug(&input)
	if !slug.IsValid(postSlug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}
	post.Slug = postSlug
	input.apply(&post)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		if err := taxonomy.ReconcileTags(tx, &post, input.Tags); err != nil {
			return err
		}
		return upsertSEO(tx, &post.ID, nil, input.SEOMetadata)
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slug already in use"})
			return
		}
		log.Error().Err(err).Uint("post_id", post.ID).Msg("failed to update post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	postPreloads(database.DB).First(&post, post.ID)
	c.JSON(http.StatusOK, newPostResponse(post, siteURL()))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post along with its tag associations, comments and SEO metadata.
// @Tags         admin-posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /admin/posts/{id} [delete]
func DeletePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.SEOMetadata{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("post_id", post.ID).Msg("failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// endregion

// region --- Public Handlers ---

// ListPublishedPosts godoc
// @Summary      List published posts
// @Description  Public blog listing: published posts only, sticky first, newest first.
// @Tags         posts
// @Produce      json
// @Param        category query  string  false  "Filter by category slug"
// @Param        tag      query  string  false  "Filter by tag slug"
// @Param        search   query  string  false  "Search title or content"
// @Param        page     query  int     false  "Page number" default(1)
// @Param        limit    query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Router       /posts [get]
func ListPublishedPosts(c *gin.Context) {
	page, limit := pageParams(c, 10, 50)

	query := postPreloads(database.DB.Model(&models.Post{})).
		Where("posts.status = ?", models.StatusPublished)

	if categorySlug := c.Query("category"); categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if tagSlug := c.Query("tag"); tagSlug != "" {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", tagSlug)
	}
	if search := c.Query("search"); search != "" {
		probe := "%" + search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", probe, probe)
	}
	query = query.Order("sticky DESC").Order("published_at DESC NULLS LAST").Order("posts.created_at DESC")

	result, err := Paginate[models.Post](query, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list published posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	responses := make([]PostResponse, 0, len(result.Data))
	for _, post := range result.Data {
		responses = append(responses, newPostResponse(post, siteURL()))
	}
	c.JSON(http.StatusOK, PaginatedResponse[PostResponse]{Data: responses, Meta: result.Meta})
}

// GetContentBySlug godoc
// @Summary      Resolve a slug to published content
// @Description  Tries published posts first, then published pages; posts and pages may share a slug value.
// @Tags         posts
// @Produce      json
// @Param        slug  path  string  true  "Content slug"
// @Success      200  {object}  map[string]interface{} "{"type": "post"|"page", "data": {...}}"
// @Failure      404  {object}  ErrorResponse "Content not found"
// @Router       /content/{slug} [get]
func GetContentBySlug(c *gin.Context) {
	s := c.Param("slug")

	var post models.Post
	err := postPreloads(database.DB).
		Where("slug = ? AND status = ?", s, models.StatusPublished).
		First(&post).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"type": "post", "data": newPostResponse(post, siteURL())})
		return
	}

	var page models.Page
	err = database.DB.Preload("Author").Preload("Parent").Preload("Children").Preload("SEO").
		Where("slug = ? AND status = ?", s, models.StatusPublished).
		First(&page).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"type": "page", "data": newPageResponse(page, siteURL())})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
}

// endregion
