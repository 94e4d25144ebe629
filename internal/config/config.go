// internal/config/config.go
//
// This package handles configuration and the .roledraw directory structure.
// Every project that uses roledraw gets a .roledraw/ folder in its root.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/roledraw/internal/assign"
)

const (
	// Dir is the name of the directory we create in each project
	Dir = ".roledraw"

	// EnvPrefix namespaces the environment overrides (ROLEDRAW_SEED, ...).
	EnvPrefix = "roledraw"
)

const defaultProjectConfigYAML = `# roledraw project configuration
version: 1

# Label shown for participants once every role has been handed out.
placeholder: no role assigned

# Fixed shuffle seed. 0 draws a fresh seed from the clock on every launch.
seed: 0

# Participants preloaded into the editor.
participants: []

# Role sets selectable with ctrl+p. default_preset is loaded on start.
default_preset: household
presets:
  household:
    - Cook
    - Cleaner
    - Shopper
  review:
    - Driver
    - Navigator
    - Note taker
    - Timekeeper
`

// ProjectConfig models .roledraw/config.yaml.
type ProjectConfig struct {
	Version       int                 `yaml:"version"`
	Placeholder   string              `yaml:"placeholder,omitempty"`
	Seed          int64               `yaml:"seed,omitempty"`
	Participants  []string            `yaml:"participants,omitempty"`
	DefaultPreset string              `yaml:"default_preset,omitempty"`
	Presets       map[string][]string `yaml:"presets,omitempty"`
}

// EnvOverrides captures ROLEDRAW_* variables. Unset fields leave the YAML value alone.
type EnvOverrides struct {
	Placeholder string `envconfig:"PLACEHOLDER"`
	Seed        *int64 `envconfig:"SEED"`
	Preset      string `envconfig:"PRESET"`
}

// Config holds the runtime configuration for roledraw.
type Config struct {
	// ProjectDir is the directory roledraw was launched for
	ProjectDir string

	// StateDir is ProjectDir/.roledraw
	StateDir string

	// Project is the effective configuration: config.yaml with ROLEDRAW_*
	// overrides applied on top.
	Project ProjectConfig

	// file is config.yaml as read from disk. Only this copy is written back.
	file ProjectConfig
}

// InitDir creates the .roledraw directory structure in the given project directory.
//
// Structure created:
// .roledraw/
// ├── logs/         <- trace and activity logs
// └── config.yaml   <- written with defaults when missing
func InitDir(projectDir string) error {
	root := filepath.Join(projectDir, Dir)
	if err := os.MkdirAll(filepath.Join(root, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(root, "config.yaml"))
}

// NewConfig loads .roledraw/config.yaml (if present) and applies environment overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		StateDir:   filepath.Join(projectDir, Dir),
		file:       defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.Project = cfg.file.clone()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StateDir, "logs")
}

// ConfigPath returns the on-disk location for the project config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.StateDir, "config.yaml")
}

// Placeholder returns the label for participants without a role.
func (c *Config) Placeholder() string {
	return c.Project.Placeholder
}

// Seed returns the configured shuffle seed; 0 means random.
func (c *Config) Seed() int64 {
	return c.Project.Seed
}

// Participants returns the preloaded participant list.
func (c *Config) Participants() []string {
	return append([]string(nil), c.Project.Participants...)
}

// Preset returns the roles of a named preset.
func (c *Config) Preset(name string) ([]string, bool) {
	roles, ok := c.Project.Presets[strings.TrimSpace(name)]
	if !ok {
		return nil, false
	}
	return append([]string(nil), roles...), true
}

// PresetNames lists presets in alphabetical order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.Project.Presets))
	for name := range c.Project.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultPreset returns the name of the preset loaded on start.
func (c *Config) DefaultPreset() string {
	return c.Project.DefaultPreset
}

// DefaultRoles returns the roles of the default preset, or nil when none is set.
func (c *Config) DefaultRoles() []string {
	roles, _ := c.Preset(c.Project.DefaultPreset)
	return roles
}

// SetDefaultPreset updates the default preset and persists it back to
// .roledraw/config.yaml. Environment overrides stay in memory; only the
// default_preset key of the file changes.
func (c *Config) SetDefaultPreset(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("config: preset name is required")
	}
	if _, ok := c.file.Presets[name]; !ok {
		return fmt.Errorf("config: unknown preset %q", name)
	}
	prev := c.file.DefaultPreset
	c.file.DefaultPreset = name
	if err := c.saveProjectConfig(); err != nil {
		c.file.DefaultPreset = prev
		return err
	}
	c.Project.DefaultPreset = name
	return nil
}

func (c *Config) loadProjectConfig() error {
	path := c.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.file = parsed
	return nil
}

func (c *Config) applyEnv() error {
	var env EnvOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	if label := strings.TrimSpace(env.Placeholder); label != "" {
		c.Project.Placeholder = label
	}
	if env.Seed != nil {
		c.Project.Seed = *env.Seed
	}
	if preset := strings.TrimSpace(env.Preset); preset != "" {
		if _, ok := c.Project.Presets[preset]; !ok {
			return fmt.Errorf("config: ROLEDRAW_PRESET: unknown preset %q", preset)
		}
		c.Project.DefaultPreset = preset
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version:     1,
		Placeholder: assign.Placeholder,
		Presets:     map[string][]string{},
	}
}

func (pc ProjectConfig) clone() ProjectConfig {
	out := pc
	out.Participants = append([]string(nil), pc.Participants...)
	out.Presets = make(map[string][]string, len(pc.Presets))
	for name, roles := range pc.Presets {
		out.Presets[name] = append([]string(nil), roles...)
	}
	return out
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Presets == nil {
		pc.Presets = map[string][]string{}
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Placeholder = strings.TrimSpace(pc.Placeholder)
	if pc.Placeholder == "" {
		pc.Placeholder = assign.Placeholder
	}
	pc.Participants = trimEntries(pc.Participants)
	pc.DefaultPreset = strings.TrimSpace(pc.DefaultPreset)
	normalized := make(map[string][]string, len(pc.Presets))
	for name, roles := range pc.Presets {
		normalized[strings.TrimSpace(name)] = trimEntries(roles)
	}
	pc.Presets = normalized
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	for name := range pc.Presets {
		if name == "" {
			return fmt.Errorf("presets: name is required")
		}
	}
	if pc.DefaultPreset != "" {
		if _, ok := pc.Presets[pc.DefaultPreset]; !ok {
			return fmt.Errorf("default_preset %q is not defined under presets", pc.DefaultPreset)
		}
	}
	return nil
}

// trimEntries drops blank entries. Duplicates are intentionally kept.
func trimEntries(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}

// saveProjectConfig writes the file copy back to disk. An existing
// config.yaml is patched through its node tree so comments survive.
func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	if err := c.file.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.StateDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure state dir: %w", err)
	}
	data, err := c.encodeProjectConfig()
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ConfigPath(), data, 0o644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}

func (c *Config) encodeProjectConfig() ([]byte, error) {
	existing, err := os.ReadFile(c.ConfigPath())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	var doc yaml.Node
	if len(existing) > 0 {
		if err := yaml.Unmarshal(existing, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return yaml.Marshal(c.file)
	}
	setScalar(doc.Content[0], "default_preset", c.file.DefaultPreset)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// setScalar sets key to a string value in a mapping node, appending the key
// when it is absent.
func setScalar(mapping *yaml.Node, key, value string) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != key {
			continue
		}
		node := mapping.Content[i+1]
		node.Kind = yaml.ScalarNode
		node.Tag = "!!str"
		node.Style = 0
		node.Value = value
		node.Content = nil
		return
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}
