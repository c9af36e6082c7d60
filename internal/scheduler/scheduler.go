// Package scheduler runs the CMS background tasks.
package scheduler

import (
	"time"

	"presskit/backend/internal/database"
	"presskit/backend/internal/models"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Start registers the timed tasks and starts the cron runner.
func Start() *cron.Cron {
	runner := cron.New()
	runner.AddFunc("@every 1m", PublishScheduledPosts)
	runner.Start()
	return runner
}

// PublishScheduledPosts flips scheduled posts whose publish time has passed
// to published. WordPress-style scheduled publishing: editors set a future
// publish date and the post goes live without further action.
func PublishScheduledPosts() {
	result := database.DB.Model(&models.Post{}).
		Where("status = ? AND published_at IS NOT NULL AND published_at <= ?", models.StatusScheduled, time.Now()).
		Update("status", models.StatusPublished)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("failed to publish scheduled posts")
		return
	}
	if result.RowsAffected > 0 {
		log.Info().Int64("count", result.RowsAffected).Msg("published scheduled posts")
	}
}
