package main

import (
	"flag"
	"path/filepath"
)

type flags struct {
	configPath       string
	model            string
	temperature      float64
	systemPromptPath string
	noSearch         bool
	apiKey           string
	logPath          string

	// set records which flags were given explicitly.
	set map[string]bool
}

func defaultConfigPath(home string) string {
	return filepath.Join(home, ".scout", "config.toml")
}

func defaultLogPath(home string) string {
	return filepath.Join(home, ".scout", "scout.log")
}

func parseFlags(args []string, home string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("scout", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", defaultConfigPath(home), "Path to TOML config file")
	fs.StringVar(&f.model, "model", "", "Model ID")
	fs.Float64Var(&f.temperature, "temperature", 0, "Sampling temperature in [0, 1]")
	fs.StringVar(&f.systemPromptPath, "system-prompt", "", "Path to a file holding the system instruction")
	fs.BoolVar(&f.noSearch, "no-search", false, "Disable Google Search grounding")
	fs.StringVar(&f.apiKey, "api-key", "", "API key (overrides GEMINI_API_KEY and GOOGLE_API_KEY)")
	fs.StringVar(&f.logPath, "log", defaultLogPath(home), `Path to the JSON log file ("" disables logging)`)
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}
