package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unsetenv clears the variables for the duration of the test. envconfig treats
// a set but empty variable as present and skips its default.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

var envKeys = []string{
	"BOT_TOKEN", "GOOGLE_API_KEY", "PORT", "BOT_WORKERS", "PROVIDER",
	"GEMINI_BASE_URL", "GEMINI_API_VERSION", "GEMINI_MODEL", "OPENAI_BASE_URL",
}

func TestNewConfigDefaults(t *testing.T) {
	unsetenv(t, envKeys...)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("Provider = %q, want %q", cfg.Provider, ProviderGemini)
	}
	if cfg.Model != "gemini-1.5-flash-latest" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Messages != DefaultMessages {
		t.Errorf("Messages = %+v, want defaults", cfg.Messages)
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestNewConfigMissingCredentialsIsNotFatal(t *testing.T) {
	unsetenv(t, envKeys...)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("expected startup to succeed without credentials, got %v", err)
	}
	if cfg.Token != "" || cfg.APIKey != "" {
		t.Fatalf("expected empty credentials, got %+v", cfg)
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	unsetenv(t, envKeys...)
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("GOOGLE_API_KEY", "key")
	t.Setenv("PORT", "8080")
	t.Setenv("PROVIDER", "openai")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if cfg.Token != "123:abc" || cfg.APIKey != "key" {
		t.Errorf("credentials not loaded: %+v", cfg)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
}

func TestNewConfigRejectsUnknownProvider(t *testing.T) {
	unsetenv(t, envKeys...)
	t.Setenv("PROVIDER", "bard")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	if _, err := NewConfig(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Messages
		wantErr bool
	}{
		{
			name: "both messages",
			content: `[messages]
prompt_request = "Say something."
failure = "Oops."
`,
			want: Messages{PromptRequest: "Say something.", Failure: "Oops."},
		},
		{
			name: "partial falls back to defaults",
			content: `[messages]
failure = "Oops."
`,
			want: Messages{PromptRequest: DefaultMessages.PromptRequest, Failure: "Oops."},
		},
		{
			name:    "invalid toml",
			content: `[messages`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			cfg := Config{ConfigFile: path}
			err := cfg.LoadFile()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile returned error: %v", err)
			}
			if cfg.Messages != tt.want {
				t.Errorf("Messages = %+v, want %+v", cfg.Messages, tt.want)
			}
		})
	}
}
