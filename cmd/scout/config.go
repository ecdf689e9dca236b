package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/scout"
)

// fileConfig is the optional TOML config file. Pointer fields distinguish
// absent keys from zero values.
type fileConfig struct {
	Model           *string  `toml:"model"`
	Temperature     *float64 `toml:"temperature"`
	SystemPrompt    *string  `toml:"system_prompt"`
	SearchGrounding *bool    `toml:"search_grounding"`
}

// loadFileConfig reads the TOML file at path. A missing file yields an empty
// config unless required is set.
func loadFileConfig(path string, required bool) (fileConfig, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !required:
		return fileConfig{}, nil
	default:
		return fileConfig{}, fmt.Errorf("read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fileConfig{}, fmt.Errorf("read config: unknown key %q", undecoded[0].String())
	}
	return fc, nil
}

// resolveConfig layers flags over the config file over built-in defaults.
func resolveConfig(f flags, fc fileConfig) (scout.ChatConfig, error) {
	config := scout.DefaultChatConfig()

	if fc.Model != nil {
		config.Model = *fc.Model
	}
	if fc.Temperature != nil {
		config.Temperature = *fc.Temperature
	}
	if fc.SystemPrompt != nil {
		config.SystemInstruction = *fc.SystemPrompt
	}
	if fc.SearchGrounding != nil {
		config.SearchGrounding = *fc.SearchGrounding
	}

	if f.set["model"] {
		config.Model = f.model
	}
	if f.set["temperature"] {
		config.Temperature = f.temperature
	}
	if f.set["system-prompt"] {
		data, err := os.ReadFile(f.systemPromptPath)
		if err != nil {
			return scout.ChatConfig{}, fmt.Errorf("read system prompt: %w", err)
		}
		config.SystemInstruction = strings.TrimSpace(string(data))
	}
	if f.noSearch {
		config.SearchGrounding = false
	}

	if err := config.Validate(); err != nil {
		return scout.ChatConfig{}, err
	}
	return config, nil
}

// resolveAPIKey picks the explicit flag first, then GEMINI_API_KEY, then
// GOOGLE_API_KEY.
func resolveAPIKey(flagKey, geminiEnvKey, googleEnvKey string) string {
	for _, k := range []string{flagKey, geminiEnvKey, googleEnvKey} {
		if k != "" {
			return k
		}
	}
	return ""
}
