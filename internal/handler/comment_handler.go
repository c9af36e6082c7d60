package handler

import (
	"io"
	"net/http"
	"time"

	"presskit/backend/internal/database"
	"presskit/backend/internal/hub"
	"presskit/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// region --- DTOs ---

// CommentInput defines the structure for a visitor comment.
type CommentInput struct {
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email" binding:"omitempty,email"`
	Content     string `json:"content" binding:"required"`
}

// CommentResponse defines the structure for a comment.
type CommentResponse struct {
	ID         uint                 `json:"id"`
	PostID     uint                 `json:"post_id"`
	AuthorName string               `json:"author_name"`
	Content    string               `json:"content"`
	Status     models.CommentStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

func newCommentResponse(comment models.Comment) CommentResponse {
	name := comment.AuthorName
	if comment.User != nil {
		name = comment.User.Name
	}
	return CommentResponse{
		ID:         comment.ID,
		PostID:     comment.PostID,
		AuthorName: name,
		Content:    comment.Content,
		Status:     comment.Status,
		CreatedAt:  comment.CreatedAt,
	}
}

// endregion

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Creates a pending comment on a published post that allows comments. Logged-in users are auto-approved.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Post ID"
// @Param        input body      CommentInput true  "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Comments disabled"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.Where("id = ? AND status = ?", id, models.StatusPublished).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if !post.AllowComments {
		c.JSON(http.StatusForbidden, gin.H{"error": "Comments are disabled for this post"})
		return
	}

	comment := models.Comment{
		PostID:      post.ID,
		AuthorName:  input.AuthorName,
		AuthorEmail: input.AuthorEmail,
		Content:     input.Content,
		Status:      models.CommentPending,
	}
	if userID, exists := c.Get("userID"); exists {
		uid := userID.(uint)
		comment.UserID = &uid
		comment.Status = models.CommentApproved
	} else if input.AuthorName == "" || input.AuthorEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
		return
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		log.Error().Err(err).Uint("post_id", post.ID).Msg("failed to create comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}
	database.DB.Preload("User").First(&comment, comment.ID)

	if comment.Status == models.CommentApproved {
		hub.GlobalHub.Broadcast(post.ID, hub.Event{Type: "comment.created", Payload: newCommentResponse(comment)})
	}

	c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// ListPostComments godoc
// @Summary      List approved comments for a post
// @Tags         comments
// @Produce      json
// @Param        id    path   int  true   "Post ID"
// @Param        page  query  int  false  "Page number" default(1)
// @Param        limit query  int  false  "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[CommentResponse]
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments [get]
func ListPostComments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}
	page, limit := pageParams(c, 20, 100)

	var post models.Post
	if err := database.DB.Where("id = ? AND status = ?", id, models.StatusPublished).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	query := database.DB.Model(&models.Comment{}).Preload("User").
		Where("post_id = ? AND status = ?", post.ID, models.CommentApproved).
		Order("created_at ASC")

	result, err := Paginate[models.Comment](query, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	responses := make([]CommentResponse, 0, len(result.Data))
	for _, comment := range result.Data {
		responses = append(responses, newCommentResponse(comment))
	}
	c.JSON(http.StatusOK, PaginatedResponse[CommentResponse]{Data: responses, Meta: result.Meta})
}

// StreamComments godoc
// @Summary      Stream new comments for a post
// @Description  Server-sent events stream of comments as they are approved.
// @Tags         comments
// @Produce      text/event-stream
// @Param        id  path  int  true  "Post ID"
// @Failure      404  {object}  ErrorResponse "Post not found"
// @Router       /posts/{id}/comments/stream [get]
func StreamComments(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var post models.Post
	if err := database.DB.Where("id = ? AND status = ?", id, models.StatusPublished).First(&post).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(post.ID, client)
	defer hub.GlobalHub.Unsubscribe(post.ID, client)

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// region --- Admin Handlers ---

// ListComments godoc
// @Summary      List comments for moderation
// @Tags         admin-comments
// @Produce      json
// @Security     BearerAuth
// @Param        status query  string  false  "Filter by status"
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Items per page" default(20)
// @Success      200  {object}  PaginatedResponse[CommentResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/comments [get]
func ListComments(c *gin.Context) {
	page, limit := pageParams(c, 20, 100)

	query := database.DB.Model(&models.Comment{}).Preload("User")
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	query = query.Order("created_at DESC")

	result, err := Paginate[models.Comment](query, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list comments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	responses := make([]CommentResponse, 0, len(result.Data))
	for _, comment := range result.Data {
		responses = append(responses, newCommentResponse(comment))
	}
	c.JSON(http.StatusOK, PaginatedResponse[CommentResponse]{Data: responses, Meta: result.Meta})
}

// ModerateCommentInput defines the structure for a moderation decision.
type ModerateCommentInput struct {
	Status models.CommentStatus `json:"status" binding:"required,oneof=PENDING APPROVED SPAM TRASH"`
}

// ModerateComment godoc
// @Summary      Change a comment's moderation status
// @Tags         admin-comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Comment ID"
// @Param        input body      ModerateCommentInput true  "Decision"
// @Success      200   {object}  CommentResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse "Comment not found"
// @Router       /admin/comments/{id} [put]
func ModerateComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input ModerateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comment models.Comment
	if err := database.DB.Preload("User").First(&comment, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	wasApproved := comment.Status == models.CommentApproved
	comment.Status = input.Status
	if err := database.DB.Save(&comment).Error; err != nil {
		log.Error().Err(err).Uint("comment_id", comment.ID).Msg("failed to moderate comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	if !wasApproved && comment.Status == models.CommentApproved {
		hub.GlobalHub.Broadcast(comment.PostID, hub.Event{Type: "comment.created", Payload: newCommentResponse(comment)})
	}

	c.JSON(http.StatusOK, newCommentResponse(comment))
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         admin-comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Comment ID"
// @Success      200  {object}  map[string]string "{"message": "Comment deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Comment not found"
// @Router       /admin/comments/{id} [delete]
func DeleteComment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	result := database.DB.Delete(&models.Comment{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint("comment_id", id).Msg("failed to delete comment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// endregion
