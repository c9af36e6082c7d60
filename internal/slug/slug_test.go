package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"10 Business Growth Strategies!": "10-business-growth-strategies",
		"Hello, World":                   "hello-world",
		"My First Post":                  "my-first-post",
		"  multi   word  ":               "multi-word",
		"snake_case_title":               "snake-case-title",
		"--leading--and--trailing--":     "leading-and-trailing",
		"Already-a-slug":                 "already-a-slug",
		"CAFÉ au lait":                   "caf-au-lait",
		"🚀🚀🚀":                            "",
		"!!!":                            "",
		"":                               "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestNormalizeOutputShape(t *testing.T) {
	inputs := []string{
		"10 Business Growth Strategies!",
		"What's New in Go 1.23?",
		"a_b c-d  e",
		"tabs\tand\nnewlines",
	}
	for _, in := range inputs {
		got := Normalize(in)
		assert.True(t, IsValid(got), "Normalize(%q)=%q should be a valid slug", in, got)
		// Idempotence for non-empty results.
		assert.Equal(t, got, Normalize(got))
	}
}

func TestEnsureUnique(t *testing.T) {
	assert.Equal(t, "hello-world", EnsureUnique("hello-world", map[string]bool{}))
	assert.Equal(t, "hello-world-2", EnsureUnique("hello-world", map[string]bool{
		"hello-world": true,
	}))
	assert.Equal(t, "hello-world-3", EnsureUnique("hello-world", map[string]bool{
		"hello-world":   true,
		"hello-world-2": true,
	}))
	// Gaps are filled with the lowest free suffix.
	assert.Equal(t, "post-2", EnsureUnique("post", map[string]bool{
		"post":   true,
		"post-3": true,
	}))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("hello-world"))
	assert.True(t, IsValid("a"))
	assert.True(t, IsValid("post-2"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("-leading"))
	assert.False(t, IsValid("trailing-"))
	assert.False(t, IsValid("double--hyphen"))
	assert.False(t, IsValid("Upper-Case"))
	assert.False(t, IsValid("under_score"))
}

func TestPermalink(t *testing.T) {
	assert.Equal(t, "https://example.com/my-post/", Permalink("https://example.com", "my-post"))
	assert.Equal(t, "https://example.com/my-post/", Permalink("https://example.com/", "my-post"))
}
