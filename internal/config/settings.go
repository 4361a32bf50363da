package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultCount is how many quotes `ls` shows when no count is given.
const DefaultCount = 10

// ErrNoEditor is returned when buffer mode is requested without an editor.
var ErrNoEditor = errors.New("no editor configured")

// Settings represents user preferences stored in config.yml.
type Settings struct {
	Editor       string `yaml:"editor,omitempty"`        // Overrides $EDITOR
	Color        string `yaml:"color,omitempty"`         // Panel color (name, ANSI index or hex)
	ShowDate     bool   `yaml:"show_date,omitempty"`     // Print added date under each quote
	DefaultCount int    `yaml:"default_count,omitempty"` // Default `ls` count
}

// Config is the fully resolved runtime configuration.
type Config struct {
	Dir      string
	Settings Settings
}

// Load resolves configuration rooted at dir. An empty dir means DataDir().
// Missing config.yml and quote.env are not errors.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DataDir()
	}
	if dir == "" {
		return nil, errors.New("cannot determine data directory; set $" + HomeEnv)
	}
	dir = ExpandPath(dir)

	if err := LoadEnv(dir); err != nil {
		return nil, err
	}

	settings, err := LoadSettings(SettingsPath(dir))
	if err != nil {
		return nil, err
	}

	return &Config{Dir: dir, Settings: *settings}, nil
}

// LoadSettings reads config.yml. Returns defaults if the file doesn't exist.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.applyDefaults()
			return s, nil
		}
		return nil, errors.Wrap(err, "reading settings")
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	s.applyDefaults()
	return s, nil
}

func (s *Settings) applyDefaults() {
	if s.DefaultCount <= 0 {
		s.DefaultCount = DefaultCount
	}
	if s.Color == "" {
		s.Color = "white"
	}
}

// LoadEnv loads quote.env from dir into the process environment.
// Variables already set in the environment win.
func LoadEnv(dir string) error {
	path := EnvPath(dir)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "checking env file")
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	return nil
}

// StorePath returns the path of the quote store.
func (c *Config) StorePath() string {
	return StorePath(c.Dir)
}

// SettingsPath returns the path of config.yml.
func (c *Config) SettingsPath() string {
	return SettingsPath(c.Dir)
}

// IndexPath returns the path of the search index.
func (c *Config) IndexPath() string {
	return IndexPath(c.Dir)
}

// EditorCommand returns the editor command line: config.yml's editor, then $EDITOR.
// Returns ErrNoEditor if neither is set.
func (c *Config) EditorCommand() (string, error) {
	if cmd := strings.TrimSpace(c.Settings.Editor); cmd != "" {
		return cmd, nil
	}
	if cmd := strings.TrimSpace(os.Getenv(EditorEnv)); cmd != "" {
		return cmd, nil
	}
	return "", errors.WithHint(ErrNoEditor, NoEditorMessage())
}

// NoEditorMessage tells the user how to configure an editor.
func NoEditorMessage() string {
	return fmt.Sprintf(`Set $%s to your editor, for example:
  export %s=vim

or add a line to the settings file:
  editor: code --wait`, EditorEnv, EditorEnv)
}
