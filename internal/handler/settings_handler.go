package handler

import (
	"net/http"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm/clause"
)

// region --- DTOs ---

// SettingEntry is one key/value site setting.
type SettingEntry struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
	Group string `json:"group"`
}

// SettingsInput defines the structure for a bulk settings update.
type SettingsInput struct {
	Settings []SettingEntry `json:"settings" binding:"required,min=1,dive"`
}

// endregion

// GetSettings godoc
// @Summary      Get site settings
// @Description  Returns all settings, optionally filtered by group, keyed by setting name.
// @Tags         admin-settings
// @Produce      json
// @Security     BearerAuth
// @Param        group query  string  false  "Settings group"
// @Success      200  {object}  map[string]SettingEntry
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/settings [get]
func GetSettings(c *gin.Context) {
	query := database.DB.Model(&models.Setting{})
	if group := c.Query("group"); group != "" {
		query = query.Where("\"group\" = ?", group)
	}

	var settings []models.Setting
	if err := query.Order("key ASC").Find(&settings).Error; err != nil {
		log.Error().Err(err).Msg("failed to load settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve settings"})
		return
	}

	response := make(map[string]SettingEntry, len(settings))
	for _, setting := range settings {
		response[setting.Key] = SettingEntry{Key: setting.Key, Value: setting.Value, Group: setting.Group}
	}
	c.JSON(http.StatusOK, response)
}

// UpdateSettings godoc
// @Summary      Update site settings
// @Description  Upserts the submitted settings by key.
// @Tags         admin-settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SettingsInput true "Settings"
// @Success      200  {object}  map[string]string "{"message": "Settings updated"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /admin/settings [put]
func UpdateSettings(c *gin.Context) {
	var input SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows := make([]models.Setting, 0, len(input.Settings))
	for _, entry := range input.Settings {
		group := entry.Group
		if group == "" {
			group = "general"
		}
		rows = append(rows, models.Setting{Key: entry.Key, Value: entry.Value, Group: group})
	}

	err := database.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "group", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		log.Error().Err(err).Msg("failed to update settings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}
