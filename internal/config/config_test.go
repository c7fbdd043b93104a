package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HTBCLI_PROVIDER", "OPENAI_API_KEY", "HTBCLI_OPENAI_MODEL", "HTBCLI_OLLAMA_MODEL", "OLLAMA_BASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadProjectOverridesUser(t *testing.T) {
	clearEnv(t)
	temp := t.TempDir()
	userPath := filepath.Join(temp, "user.yaml")
	projectPath := filepath.Join(temp, "project.yaml")

	writeYAML(t, userPath, `
provider: openai
openai:
  api_key: user-key
  model: gpt-4o-mini
ollama:
  base_url: http://user:11434
`)
	writeYAML(t, projectPath, `
provider: ollama
ollama:
  model: llama3.1:8b
`)

	cfg, err := Load(userPath, projectPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Fatalf("project provider should win: %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "user-key" || cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("user openai section lost: %+v", cfg.OpenAI)
	}
	if cfg.Ollama.BaseURL != "http://user:11434" {
		t.Fatalf("nested merge dropped user base_url: %+v", cfg.Ollama)
	}
	if cfg.Ollama.Model != "llama3.1:8b" {
		t.Fatalf("project ollama model missing: %+v", cfg.Ollama)
	}
}

func TestLoadMissingFilesIsNotAnError(t *testing.T) {
	clearEnv(t)
	temp := t.TempDir()
	cfg, err := Load(filepath.Join(temp, "absent.yaml"), filepath.Join(temp, "also-absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadUnreadableFileContributesNothing(t *testing.T) {
	clearEnv(t)
	temp := t.TempDir()
	userPath := filepath.Join(temp, "user.yaml")
	projectPath := filepath.Join(temp, "project.yaml")
	writeYAML(t, userPath, "provider: openai\n")
	writeYAML(t, projectPath, ":\nnot yaml at all: [\n")

	cfg, err := Load(userPath, projectPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Fatalf("user value lost when project file is broken: %+v", cfg)
	}
}

func TestEnvOverridesFiles(t *testing.T) {
	clearEnv(t)
	temp := t.TempDir()
	userPath := filepath.Join(temp, "user.yaml")
	writeYAML(t, userPath, `
provider: openai
openai:
  api_key: file-key
  model: file-model
`)
	t.Setenv("HTBCLI_PROVIDER", "ollama")
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("HTBCLI_OLLAMA_MODEL", "mistral")
	t.Setenv("OLLAMA_BASE_URL", "http://env:11434")

	cfg, err := Load(userPath, filepath.Join(temp, "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Fatalf("env provider should win: %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "env-key" {
		t.Fatalf("env api key should win: %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "file-model" {
		t.Fatalf("file model should survive when env is unset: %q", cfg.OpenAI.Model)
	}
	if cfg.Ollama.Model != "mistral" || cfg.Ollama.BaseURL != "http://env:11434" {
		t.Fatalf("env ollama settings missing: %+v", cfg.Ollama)
	}
}
