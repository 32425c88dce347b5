// Package agentconfig loads the runtime configuration for agents that
// consume the tool server.
package agentconfig

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultModel is used when no preferred model is configured.
const DefaultModel = "anthropic/claude-sonnet-4-20250514"

// Config holds the LLM runtime settings.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	APIKey      string
	APIBase     string
}

// Metadata identifies an agent.
type Metadata struct {
	Name        string
	Version     string
	Description string
}

// Load builds a Config with the preferred model from the user's
// configuration file and the standard defaults.
func Load() Config {
	return Config{
		Model:       preferredModel(),
		Temperature: 0.7,
		MaxTokens:   8192,
	}
}

type fileConfig struct {
	LLM struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
	} `json:"llm"`
}

// configPath returns $AGENT_CONFIG when set, else ~/.hive/configuration.json.
func configPath() string {
	if p := os.Getenv("AGENT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hive", "configuration.json")
}

func preferredModel() string {
	path := configPath()
	if path == "" {
		return DefaultModel
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).WithField("path", path).
				Errorf("error reading configuration file, falling back to default model %s", DefaultModel)
		}
		return DefaultModel
	}

	var cfg fileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		logrus.WithError(err).WithField("path", path).
			Errorf("invalid JSON in configuration file, falling back to default model %s", DefaultModel)
		return DefaultModel
	}

	if cfg.LLM.Provider != "" && cfg.LLM.Model != "" {
		return cfg.LLM.Provider + "/" + cfg.LLM.Model
	}

	logrus.WithField("path", path).
		Warnf("configuration file is missing llm.provider or llm.model, falling back to default model %s", DefaultModel)
	return DefaultModel
}
