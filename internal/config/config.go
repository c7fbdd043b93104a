package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the assistant settings. Two YAML documents are merged, user
// level first, project level on top, then environment variables overlay both.
type Config struct {
	Provider string `yaml:"provider"`
	OpenAI   struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`
	Ollama struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"ollama"`
}

func UserPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".htbcli", "config.yaml")
}

func ProjectPath(projectRoot string) string {
	return filepath.Join(projectRoot, ".htbcli", "config.yaml")
}

// Load merges the user and project settings files (project wins) and applies
// the environment overlay. Missing or unreadable files contribute nothing.
// Empty paths fall back to the default locations.
func Load(userPath, projectPath string) (Config, error) {
	if userPath == "" {
		userPath = UserPath()
	}
	if projectPath == "" {
		wd, err := os.Getwd()
		if err == nil {
			projectPath = ProjectPath(wd)
		}
	}

	merged := map[string]any{}
	for _, path := range []string{userPath, projectPath} {
		if path == "" {
			continue
		}
		mergeFile(merged, path)
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return Config{}, fmt.Errorf("marshal merged config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal merged config: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func mergeFile(dst map[string]any, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var src map[string]any
	if err := yaml.Unmarshal(data, &src); err != nil {
		return
	}
	deepMerge(dst, src)
}

func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		srcMap, ok := value.(map[string]any)
		if !ok {
			dst[key] = value
			continue
		}
		if existing, ok := dst[key].(map[string]any); ok {
			deepMerge(existing, srcMap)
			continue
		}
		newMap := map[string]any{}
		deepMerge(newMap, srcMap)
		dst[key] = newMap
	}
}

// applyEnv gives environment variables precedence over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("HTBCLI_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("HTBCLI_OPENAI_MODEL"); v != "" {
		c.OpenAI.Model = v
	}
	if v := os.Getenv("HTBCLI_OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		c.Ollama.BaseURL = v
	}
}
