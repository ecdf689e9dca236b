package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func mustParse(t *testing.T, args ...string) flags {
	t.Helper()
	f, err := parseFlags(args, t.TempDir())
	require.NoError(t, err)
	return f
}

func TestLoadFileConfig(t *testing.T) {
	t.Parallel()

	t.Run("reads all keys", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.toml", `
model = "gemini-2.5-pro"
temperature = 0.2
system_prompt = "Be brief."
search_grounding = false
`)
		fc, err := loadFileConfig(path, true)
		require.NoError(t, err)
		require.NotNil(t, fc.Model)
		assert.Equal(t, "gemini-2.5-pro", *fc.Model)
		require.NotNil(t, fc.Temperature)
		assert.InDelta(t, 0.2, *fc.Temperature, 1e-9)
		require.NotNil(t, fc.SystemPrompt)
		assert.Equal(t, "Be brief.", *fc.SystemPrompt)
		require.NotNil(t, fc.SearchGrounding)
		assert.False(t, *fc.SearchGrounding)
	})

	t.Run("missing optional file is empty", func(t *testing.T) {
		t.Parallel()
		fc, err := loadFileConfig(filepath.Join(t.TempDir(), "none.toml"), false)
		require.NoError(t, err)
		assert.Equal(t, fileConfig{}, fc)
	})

	t.Run("missing required file fails", func(t *testing.T) {
		t.Parallel()
		_, err := loadFileConfig(filepath.Join(t.TempDir(), "none.toml"), true)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unknown key fails", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.toml", `modle = "typo"`)
		_, err := loadFileConfig(path, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown key "modle"`)
	})

	t.Run("malformed file fails", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "config.toml", `model = `)
		_, err := loadFileConfig(path, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
}

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		config, err := resolveConfig(mustParse(t), fileConfig{})
		require.NoError(t, err)
		assert.Equal(t, scout.DefaultChatConfig(), config)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		t.Parallel()
		model, temp, grounding := "gemini-2.5-pro", 0.1, false
		config, err := resolveConfig(mustParse(t), fileConfig{
			Model:           &model,
			Temperature:     &temp,
			SearchGrounding: &grounding,
		})
		require.NoError(t, err)
		assert.Equal(t, "gemini-2.5-pro", config.Model)
		assert.InDelta(t, 0.1, config.Temperature, 1e-9)
		assert.False(t, config.SearchGrounding)
		assert.Equal(t, scout.DefaultSystemInstruction, config.SystemInstruction)
	})

	t.Run("flags override file", func(t *testing.T) {
		t.Parallel()
		model, temp := "from-file", 0.1
		f := mustParse(t, "-model", "from-flag", "-temperature", "0", "-no-search")
		config, err := resolveConfig(f, fileConfig{Model: &model, Temperature: &temp})
		require.NoError(t, err)
		assert.Equal(t, "from-flag", config.Model)
		assert.Zero(t, config.Temperature)
		assert.False(t, config.SearchGrounding)
	})

	t.Run("system prompt file", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "prompt.md", "  You research identity standards.\n")
		config, err := resolveConfig(mustParse(t, "-system-prompt", path), fileConfig{})
		require.NoError(t, err)
		assert.Equal(t, "You research identity standards.", config.SystemInstruction)
	})

	t.Run("missing system prompt file", func(t *testing.T) {
		t.Parallel()
		f := mustParse(t, "-system-prompt", filepath.Join(t.TempDir(), "none.md"))
		_, err := resolveConfig(f, fileConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read system prompt")
	})

	t.Run("invalid temperature", func(t *testing.T) {
		t.Parallel()
		_, err := resolveConfig(mustParse(t, "-temperature", "1.5"), fileConfig{})
		assert.ErrorIs(t, err, scout.ErrValidation)
	})
}

func TestResolveAPIKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "flag", resolveAPIKey("flag", "gemini", "google"))
	assert.Equal(t, "gemini", resolveAPIKey("", "gemini", "google"))
	assert.Equal(t, "google", resolveAPIKey("", "", "google"))
	assert.Equal(t, "", resolveAPIKey("", "", ""))
}
