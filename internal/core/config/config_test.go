package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, &want, cfg)
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Chat.Timeout)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://api.example.com
chat:
  timeout: 5s
  greeting: "Hello!"
render:
  style: dark
  word_wrap: 72
contact:
  failure: "Nope."
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Chat.Timeout)
	assert.Equal(t, "Hello!", cfg.Chat.Greeting)
	assert.Equal(t, DefaultConfig().Chat.Apology, cfg.Chat.Apology, "unset fields keep defaults")
	assert.Equal(t, "dark", cfg.Render.Style)
	assert.Equal(t, 72, cfg.Render.WordWrap)
	assert.Equal(t, DefaultContactSuccess, cfg.Contact.Success)
	assert.Equal(t, "Nope.", cfg.Contact.Failure)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "base_url: [unterminated")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
base_url: ftp://files.example.com
chat:
  timeout: -1s
render:
  word_wrap: 5
`)

	_, err := Load(path)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 3)
	assert.Equal(t, "base_url", fieldErrs[0].Field)
	assert.Equal(t, "chat.timeout", fieldErrs[1].Field)
	assert.Equal(t, "render.word_wrap", fieldErrs[2].Field)
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"http://localhost:8000", false},
		{"https://api.example.com/v1", false},
		{"localhost:8000", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"::not a url", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateBaseURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
