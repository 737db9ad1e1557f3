// Package config loads the daemon's YAML configuration, following a
// multi-path search convention (explicit flag, sudo user home, user home,
// configs directory beside the executable, /etc) and original_source/punto/core/config.py's
// sibling-file layout and existence-check semantics.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/leonard/asahi-map/internal/layout"
)

// Exceptions lists window titles and process names the window-exception poll
// checks the active window against.
type Exceptions struct {
	WindowTitles []string `yaml:"window_titles"`
	Processes    []string `yaml:"processes"`
}

// Config is the immutable snapshot handed to the rest of the program. A
// reload builds a new snapshot rather than mutating this one.
type Config struct {
	SwitchChord       []layout.KeyCode  `yaml:"switch_chord"`
	AutoSwitchEnabled bool              `yaml:"auto_switch_enabled"`
	SoundEnabled      bool              `yaml:"sound_enabled"`
	Exceptions        Exceptions        `yaml:"-"`
	Autocorrect       map[string]string `yaml:"-"`
	Autoreplace       map[string]string `yaml:"-"`

	dir string
}

// Dir returns the directory this config snapshot (and its sibling files)
// was loaded from.
func (c *Config) Dir() string { return c.dir }

// Default returns the bootstrap configuration written on first run, mirroring
// config.py's get_default().
func Default() *Config {
	return &Config{
		SwitchChord:       []layout.KeyCode{layout.KeyLeftMeta, layout.KeySpace},
		AutoSwitchEnabled: true,
		SoundEnabled:      true,
		Exceptions:        Exceptions{WindowTitles: []string{}, Processes: []string{}},
		Autocorrect:       map[string]string{},
		Autoreplace:       map[string]string{},
	}
}

// ConfigurationError marks a sibling-file-layout violation: a config.yaml
// exists but one of its required siblings does not. The orchestrator treats
// this as fatal at startup, matching service.py's ConfigurationError.
type ConfigurationError struct {
	Path string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration file: %s", e.Path)
}

// Load searches, in order: explicit configPath, $SUDO_USER's home, the
// current user's home, the configs directory beside the executable, then
// /etc/puntogo. The
// first directory containing config.yaml wins; if none is found, Default is
// written to the first candidate directory and returned.
func Load(configPath string) (*Config, error) {
	searchDirs := searchDirectories(configPath)

	for _, dir := range searchDirs {
		primary := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(primary); err != nil {
			continue
		}
		return loadFrom(dir)
	}

	dir := searchDirs[0]
	cfg := Default()
	cfg.dir = dir
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}
	return cfg, nil
}

func searchDirectories(configPath string) []string {
	var dirs []string

	if configPath != "" {
		dirs = append(dirs, filepath.Dir(configPath))
	}
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		dirs = append(dirs, filepath.Join("/home", sudoUser, ".config", "puntogo"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "puntogo"))
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(filepath.Dir(exe), "configs"))
	}
	dirs = append(dirs, "/etc/puntogo")

	return dirs
}

func loadFrom(dir string) (*Config, error) {
	primary := filepath.Join(dir, "config.yaml")
	autocorrectPath := filepath.Join(dir, "autocorrect.yaml")
	autoreplacePath := filepath.Join(dir, "autoreplace.yaml")
	exceptionsPath := filepath.Join(dir, "exceptions.yaml")

	for _, sibling := range []string{autocorrectPath, autoreplacePath, exceptionsPath} {
		if _, err := os.Stat(sibling); err != nil {
			return nil, &ConfigurationError{Path: sibling}
		}
	}

	cfg := Default()
	if err := readYAML(primary, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", primary, err)
	}
	if err := readYAML(autocorrectPath, &cfg.Autocorrect); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", autocorrectPath, err)
	}
	if err := readYAML(autoreplacePath, &cfg.Autoreplace); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", autoreplacePath, err)
	}
	if err := readYAML(exceptionsPath, &cfg.Exceptions); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", exceptionsPath, err)
	}

	cfg.dir = dir
	return cfg, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// Save writes the config and its three sibling files to c.Dir(), creating
// the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := writeYAML(filepath.Join(c.dir, "config.yaml"), c); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(c.dir, "autocorrect.yaml"), c.Autocorrect); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(c.dir, "autoreplace.yaml"), c.Autoreplace); err != nil {
		return err
	}
	if err := writeYAML(filepath.Join(c.dir, "exceptions.yaml"), c.Exceptions); err != nil {
		return err
	}
	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// IsWindowException reports whether title matches one of c's blacklisted
// window titles (substring match, matching service.py's _check_active_window).
func (c *Config) IsWindowException(title string) bool {
	for _, blocked := range c.Exceptions.WindowTitles {
		if blocked != "" && strings.Contains(title, blocked) {
			return true
		}
	}
	return false
}
