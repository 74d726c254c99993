package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success_Disabled", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://example.com", logger))
	})

	t.Run("Success_EnabledWithoutOrigins", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", logger))
	})

	t.Run("Success_EnabledWithOrigins", func(t *testing.T) {
		assert.NotNil(t, createCORSMiddleware(true, "https://example.com,https://other.example.com", logger))
	})
}

func TestParseOrigins(t *testing.T) {
	t.Run("Success_Empty", func(t *testing.T) {
		assert.Empty(t, parseOrigins(""))
	})

	t.Run("Success_TrimsWhitespace", func(t *testing.T) {
		origins := parseOrigins(" https://a.example.com , https://b.example.com ,")
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, origins)
	})
}
