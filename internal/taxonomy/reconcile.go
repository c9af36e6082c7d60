// Package taxonomy maintains the many-to-many link between posts and tags.
package taxonomy

import (
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"

	"presskit/backend/internal/models"
	"presskit/backend/internal/slug"
)

// TagRef identifies a desired tag by name. Slug is optional; when empty it
// is derived from the name.
type TagRef struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

// ReconcileTags makes the post's persisted tag associations exactly equal
// to refs: missing tags are created lazily, all prior associations are
// replaced. Case-variant or repeated names are collapsed to a single tag
// keyed by normalized slug. Run inside a transaction so concurrent readers
// never observe the post with a partially written tag set.
func ReconcileTags(tx *gorm.DB, post *models.Post, refs []TagRef) error {
	normalized := make([]TagRef, 0, len(refs))
	for _, ref := range refs {
		s := ref.Slug
		if s == "" {
			s = ref.Name
		}
		s = slug.Normalize(s)
		if s == "" {
			continue
		}
		normalized = append(normalized, TagRef{Name: ref.Name, Slug: s})
	}
	normalized = lo.UniqBy(normalized, func(r TagRef) string { return r.Slug })

	tags := make([]*models.Tag, 0, len(normalized))
	for _, ref := range normalized {
		var tag models.Tag
		if err := tx.Where(models.Tag{Slug: ref.Slug}).
			Attrs(models.Tag{Name: ref.Name}).
			FirstOrCreate(&tag).Error; err != nil {
			return fmt.Errorf("resolve tag %q: %w", ref.Slug, err)
		}
		tags = append(tags, &tag)
	}

	// Replace drops every existing post_tags row for the post and writes
	// one row per resolved tag.
	if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("replace tag associations: %w", err)
	}
	post.Tags = tags
	return nil
}
