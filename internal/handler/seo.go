package handler

import (
	"errors"

	"presskit/backend/internal/models"

	"gorm.io/gorm"
)

// SEOInput defines the embedded SEO metadata payload on post/page saves.
type SEOInput struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
	OGImage         string `json:"og_image"`
	TwitterTitle    string `json:"twitter_title"`
	TwitterCard     string `json:"twitter_card"`
	CanonicalURL    string `json:"canonical_url"`
	NoIndex         bool   `json:"no_index"`
	NoFollow        bool   `json:"no_follow"`
}

// SEOResponse mirrors SEOInput on the way out.
type SEOResponse struct {
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	OGTitle         string `json:"og_title"`
	OGDescription   string `json:"og_description"`
	OGImage         string `json:"og_image"`
	TwitterTitle    string `json:"twitter_title"`
	TwitterCard     string `json:"twitter_card"`
	CanonicalURL    string `json:"canonical_url"`
	NoIndex         bool   `json:"no_index"`
	NoFollow        bool   `json:"no_follow"`
}

func newSEOResponse(seo *models.SEOMetadata) *SEOResponse {
	if seo == nil {
		return nil
	}
	return &SEOResponse{
		MetaTitle:       seo.MetaTitle,
		MetaDescription: seo.MetaDescription,
		Keywords:        seo.Keywords,
		OGTitle:         seo.OGTitle,
		OGDescription:   seo.OGDescription,
		OGImage:         seo.OGImage,
		TwitterTitle:    seo.TwitterTitle,
		TwitterCard:     seo.TwitterCard,
		CanonicalURL:    seo.CanonicalURL,
		NoIndex:         seo.NoIndex,
		NoFollow:        seo.NoFollow,
	}
}

func (in *SEOInput) apply(seo *models.SEOMetadata) {
	seo.MetaTitle = in.MetaTitle
	seo.MetaDescription = in.MetaDescription
	seo.Keywords = in.Keywords
	seo.OGTitle = in.OGTitle
	seo.OGDescription = in.OGDescription
	seo.OGImage = in.OGImage
	seo.TwitterTitle = in.TwitterTitle
	seo.TwitterCard = in.TwitterCard
	seo.CanonicalURL = in.CanonicalURL
	seo.NoIndex = in.NoIndex
	seo.NoFollow = in.NoFollow
}

// upsertSEO creates or updates the single metadata row owned by a post
// (postID set) or a page (pageID set).
func upsertSEO(tx *gorm.DB, postID, pageID *uint, input *SEOInput) error {
	if input == nil {
		return nil
	}

	var seo models.SEOMetadata
	query := tx.Model(&models.SEOMetadata{})
	if postID != nil {
		query = query.Where("post_id = ?", *postID)
	} else {
		query = query.Where("page_id = ?", *pageID)
	}

	err := query.First(&seo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seo = models.SEOMetadata{PostID: postID, PageID: pageID}
	} else if err != nil {
		return err
	}

	input.apply(&seo)
	return tx.Save(&seo).Error
}
