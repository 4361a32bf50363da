package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPathFunctions(t *testing.T) {
	dir := "/test/quote"

	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"StorePath", StorePath, "/test/quote/quotes.json"},
		{"SettingsPath", SettingsPath, "/test/quote/config.yml"},
		{"EnvPath", EnvPath, "/test/quote/quote.env"},
		{"IndexPath", IndexPath, "/test/quote/cache/quotes.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(dir)
			if got != tt.want {
				t.Errorf("%s(%q) = %q, want %q", tt.name, dir, got, tt.want)
			}
		})
	}
}

func TestDataDir(t *testing.T) {
	t.Run("QUOTE_HOME wins", func(t *testing.T) {
		t.Setenv(HomeEnv, "/somewhere/else")
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := DataDir(); got != "/somewhere/else" {
			t.Errorf("DataDir() = %q, want /somewhere/else", got)
		}
	})

	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv(HomeEnv, "")
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := DataDir(); got != "/custom/config/quote" {
			t.Errorf("DataDir() = %q, want /custom/config/quote", got)
		}
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv(HomeEnv, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("Cannot get home directory")
		}
		want := filepath.Join(home, ".config", "quote")
		if got := DataDir(); got != want {
			t.Errorf("DataDir() = %q, want %q", got, want)
		}
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/quotes", filepath.Join(home, "quotes")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLoadSettings_NotFound(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.DefaultCount != DefaultCount {
		t.Errorf("DefaultCount = %d, want %d", s.DefaultCount, DefaultCount)
	}
	if s.Color != "white" {
		t.Errorf("Color = %q, want white", s.Color)
	}
	if s.Editor != "" {
		t.Errorf("Editor = %q, want empty", s.Editor)
	}
}

func TestLoadSettings_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "editor: nvim -u NONE\ncolor: \"212\"\nshow_date: true\ndefault_count: 3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Editor != "nvim -u NONE" {
		t.Errorf("Editor = %q", s.Editor)
	}
	if s.Color != "212" {
		t.Errorf("Color = %q, want 212", s.Color)
	}
	if !s.ShowDate {
		t.Error("ShowDate = false, want true")
	}
	if s.DefaultCount != 3 {
		t.Errorf("DefaultCount = %d, want 3", s.DefaultCount)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("editor: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("LoadSettings() expected error for invalid YAML")
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EditorEnv, "")
	os.Unsetenv(EditorEnv)

	if err := os.WriteFile(EnvPath(dir), []byte("EDITOR=ed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	editor, err := cfg.EditorCommand()
	if err != nil {
		t.Fatalf("EditorCommand() error = %v", err)
	}
	if editor != "ed" {
		t.Errorf("EditorCommand() = %q, want ed", editor)
	}
}

func TestEditorCommand(t *testing.T) {
	t.Run("settings override env", func(t *testing.T) {
		t.Setenv(EditorEnv, "vi")
		cfg := &Config{Settings: Settings{Editor: "code --wait"}}
		got, err := cfg.EditorCommand()
		if err != nil || got != "code --wait" {
			t.Errorf("EditorCommand() = (%q, %v), want code --wait", got, err)
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv(EditorEnv, "vi")
		cfg := &Config{}
		got, err := cfg.EditorCommand()
		if err != nil || got != "vi" {
			t.Errorf("EditorCommand() = (%q, %v), want vi", got, err)
		}
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv(EditorEnv, "  ")
		cfg := &Config{}
		_, err := cfg.EditorCommand()
		if !errors.Is(err, ErrNoEditor) {
			t.Errorf("EditorCommand() error = %v, want ErrNoEditor", err)
		}
	})
}
