package handler

import (
	"net/http"
	"time"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"
	"presskit/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// region --- DTOs ---

// LoginInput defines the structure for a dashboard login.
type LoginInput struct {
	Login    string `json:"login" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// UserInput defines the structure for creating or updating a user.
type UserInput struct {
	Email    string          `json:"email" binding:"required,email"`
	Username string          `json:"username" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role" binding:"required,oneof=SUPER_ADMIN ADMIN EDITOR AUTHOR"`
	Avatar   string          `json:"avatar"`
	Bio      string          `json:"bio"`
	IsActive *bool           `json:"is_active"`
}

// UserResponse defines the structure for a user profile. Password hashes
// never leave the server.
type UserResponse struct {
	ID          uint            `json:"id"`
	Email       string          `json:"email"`
	Username    string          `json:"username"`
	Name        string          `json:"name"`
	Role        models.UserRole `json:"role"`
	Avatar      string          `json:"avatar"`
	Bio         string          `json:"bio"`
	IsActive    bool            `json:"is_active"`
	LastLoginAt *time.Time      `json:"last_login_at"`
	CreatedAt   time.Time       `json:"created_at"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Name:        user.Name,
		Role:        user.Role,
		Avatar:      user.Avatar,
		Bio:         user.Bio,
		IsActive:    user.IsActive,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// endregion

// region --- Auth Handlers ---

// Login godoc
// @Summary      Log in a CMS user
// @Description  Authenticates with username/email and password, returns a token and sets the auth cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  map[string]interface{} "{"token": "...", "user": {...}}"
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      403  {object}  ErrorResponse "Account deactivated"
// @Router       /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.Where("username = ? OR email = ?", input.Login, input.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	token, err := jwt.GenerateToken(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	now := time.Now()
	database.DB.Model(&user).Update("last_login_at", now)

	// Cookie for the dashboard, token in the body for API clients.
	c.SetCookie("auth-token", token, int((time.Hour * 24 * 7).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": newUserResponse(user)})
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the auth cookie.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string "{"message": "Logged out"}"
// @Router       /auth/logout [post]
func Logout(c *gin.Context) {
	c.SetCookie("auth-token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetMe godoc
// @Summary      Get current user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /auth/me [get]
func GetMe(c *gin.Context) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, userID.(uint)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// endregion

// region --- Admin User Handlers ---

// ListUsers godoc
// @Summary      List users
// @Description  Lists users with role/active filters, search and pagination.
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        role     query  string  false  "Filter by role"
// @Param        active   query  bool    false  "Filter by active flag"
// @Param        search   query  string  false  "Search name, email or username"
// @Param        page     query  int     false  "Page number" default(1)
// @Param        limit    query  int     false  "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[UserResponse]
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Router       /admin/users [get]
func ListUsers(c *gin.Context) {
	page, limit := pageParams(c, 10, 100)

	query := database.DB.Model(&models.User{})
	if role := c.Query("role"); role != "" && role != "all" {
		query = query.Where("role = ?", role)
	}
	if active := c.Query("active"); active != "" && active != "all" {
		query = query.Where("is_active = ?", active == "true")
	}
	if search := c.Query("search"); search != "" {
		probe := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR username ILIKE ?", probe, probe, probe)
	}
	query = query.Order("created_at DESC")

	result, err := Paginate[models.User](query, page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	responses := make([]UserResponse, 0, len(result.Data))
	for _, user := range result.Data {
		responses = append(responses, newUserResponse(user))
	}
	c.JSON(http.StatusOK, PaginatedResponse[UserResponse]{Data: responses, Meta: result.Meta})
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UserInput true "User Info"
// @Success      201  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      409  {object}  ErrorResponse "Email or username already exists"
// @Router       /admin/users [post]
func CreateUser(c *gin.Context) {
	var input UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        input.Email,
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Avatar:       input.Avatar,
		Bio:          input.Bio,
		IsActive:     input.IsActive == nil || *input.IsActive,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username already exists"})
			return
		}
		log.Error().Err(err).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, newUserResponse(user))
}

// UpdateUser godoc
// @Summary      Update a user
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int       true  "User ID"
// @Param        input body      UserInput true  "New User Info"
// @Success      200   {object}  UserResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse "Admin access required"
// @Failure      404   {object}  ErrorResponse "User not found"
// @Failure      409   {object}  ErrorResponse "Email or username already exists"
// @Router       /admin/users/{id} [put]
func UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	var input UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Email = input.Email
	user.Username = input.Username
	user.Name = input.Name
	user.Role = input.Role
	user.Avatar = input.Avatar
	user.Bio = input.Bio
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != "" {
		if len(input.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
			return
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email or username already exists"})
			return
		}
		log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to update user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// DeleteUser godoc
// @Summary      Delete a user
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  map[string]string "{"message": "User deleted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Admin access required"
// @Failure      404  {object}  ErrorResponse "User not found"
// @Router       /admin/users/{id} [delete]
func DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	viewerID, _ := c.Get("userID")
	if viewerID.(uint) == id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	result := database.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint("user_id", id).Msg("failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// endregion
