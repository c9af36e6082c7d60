package handler

import (
	"testing"

	"presskit/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedResponse(t *testing.T) {
	tests := map[string]struct {
		totalItems int64
		page       int
		limit      int
		wantPages  int
	}{
		"exact multiple":      {totalItems: 20, page: 1, limit: 10, wantPages: 2},
		"partial last page":   {totalItems: 21, page: 3, limit: 10, wantPages: 3},
		"empty result set":    {totalItems: 0, page: 1, limit: 10, wantPages: 0},
		"single item":         {totalItems: 1, page: 1, limit: 10, wantPages: 1},
		"limit larger than n": {totalItems: 5, page: 1, limit: 50, wantPages: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resp := NewPaginatedResponse([]string{}, tc.totalItems, tc.page, tc.limit)
			assert.Equal(t, tc.totalItems, resp.Meta.TotalItems)
			assert.Equal(t, tc.wantPages, resp.Meta.TotalPages)
			assert.Equal(t, tc.page, resp.Meta.CurrentPage)
			assert.Equal(t, tc.limit, resp.Meta.PageSize)
		})
	}
}

func TestMediaTypeFor(t *testing.T) {
	tests := map[string]models.MediaType{
		"image/png":       models.MediaImage,
		"image/svg+xml":   models.MediaImage,
		"video/mp4":       models.MediaVideo,
		"audio/mpeg":      models.MediaAudio,
		"application/pdf": models.MediaDocument,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": models.MediaDocument,
		"text/csv":        models.MediaDocument,
		"application/zip": models.MediaOther,
	}

	for mime, want := range tests {
		assert.Equal(t, want, mediaTypeFor(mime), mime)
	}
}
