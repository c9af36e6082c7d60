package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocListsEndpoints(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Swagger  string                            `json:"swagger"`
		BasePath string                            `json:"basePath"`
		Paths    map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	assert.Equal(t, "2.0", spec.Swagger)
	assert.Equal(t, "/api/v1", spec.BasePath)
	assert.NotEmpty(t, spec.Paths)

	wantOps := map[string][]string{
		"/auth/login":          {"post"},
		"/posts":               {"get"},
		"/content/{slug}":      {"get"},
		"/posts/{id}/comments": {"get", "post"},
		"/admin/slugs/check":   {"post"},
		"/admin/posts/{id}":    {"get", "put", "delete"},
		"/admin/pages/{id}":    {"get", "put", "delete"},
		"/admin/media/upload":  {"post"},
		"/admin/users":         {"get", "post"},
		"/admin/settings":      {"get", "put"},
	}
	for path, methods := range wantOps {
		require.Contains(t, spec.Paths, path)
		for _, method := range methods {
			assert.Contains(t, spec.Paths[path], method, "%s %s", method, path)
		}
	}
}
