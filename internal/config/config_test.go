package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kingrea/roledraw/internal/assign"
)

func writeConfig(t *testing.T, projectDir, body string) {
	t.Helper()
	dir := filepath.Join(projectDir, Dir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(strings.TrimSpace(body)), 0o644))
}

func initConfig(t *testing.T) *Config {
	t.Helper()
	projectDir := t.TempDir()
	require.NoError(t, InitDir(projectDir))
	c, err := NewConfig(projectDir)
	require.NoError(t, err)
	return c
}

func TestLoadProjectConfigDefaultsWhenMissing(t *testing.T) {
	c, err := NewConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 1, c.Project.Version)
	require.Equal(t, assign.Placeholder, c.Placeholder())
	require.Zero(t, c.Seed())
	require.Nil(t, c.DefaultRoles())
}

func TestInitDirWritesParseableDefaults(t *testing.T) {
	c := initConfig(t)

	require.DirExists(t, c.LogsDir())
	require.Equal(t, "household", c.DefaultPreset())
	require.Equal(t, []string{"Cook", "Cleaner", "Shopper"}, c.DefaultRoles())
	require.Equal(t, []string{"household", "review"}, c.PresetNames())
}

func TestInitDirKeepsExistingConfig(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, "version: 1\nplaceholder: none\n")
	require.NoError(t, InitDir(projectDir))

	c, err := NewConfig(projectDir)
	require.NoError(t, err)
	require.Equal(t, "none", c.Placeholder())
}

func TestLoadProjectConfigParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
placeholder: "  役割なし  "
seed: 42
participants:
  - Alice
  - "  "
  - Bob
  - Alice
default_preset: crew
presets:
  crew:
    - Captain
    - " Pilot "
`)
	c, err := NewConfig(projectDir)
	require.NoError(t, err)

	require.Equal(t, "役割なし", c.Placeholder())
	require.EqualValues(t, 42, c.Seed())
	require.Equal(t, []string{"Alice", "Bob", "Alice"}, c.Participants())
	roles, ok := c.Preset("crew")
	require.True(t, ok)
	require.Equal(t, []string{"Captain", "Pilot"}, roles)
}

func TestLoadProjectConfigValidation(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
default_preset: missing
presets:
  crew: [Captain]
`)
	_, err := NewConfig(projectDir)
	require.Error(t, err)
}

func TestEnvOverridesBeatYaml(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, `
version: 1
placeholder: idle
seed: 1
default_preset: a
presets:
  a: [x]
  b: [y]
`)
	t.Setenv("ROLEDRAW_PLACEHOLDER", "bench")
	t.Setenv("ROLEDRAW_SEED", "99")
	t.Setenv("ROLEDRAW_PRESET", "b")

	c, err := NewConfig(projectDir)
	require.NoError(t, err)
	require.Equal(t, "bench", c.Placeholder())
	require.EqualValues(t, 99, c.Seed())
	require.Equal(t, "b", c.DefaultPreset())
}

func TestEnvPresetMustExist(t *testing.T) {
	t.Setenv("ROLEDRAW_PRESET", "ghost")
	_, err := NewConfig(t.TempDir())
	require.Error(t, err)
}

func TestSetDefaultPresetPersists(t *testing.T) {
	c := initConfig(t)

	require.NoError(t, c.SetDefaultPreset("review"))
	require.Error(t, c.SetDefaultPreset("ghost"))
	require.Equal(t, "review", c.DefaultPreset())

	reloaded, err := NewConfig(c.ProjectDir)
	require.NoError(t, err)
	require.Equal(t, "review", reloaded.DefaultPreset())
}

func TestSetDefaultPresetLeavesEnvOverridesOutOfFile(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, InitDir(projectDir))
	t.Setenv("ROLEDRAW_PLACEHOLDER", "bench")
	t.Setenv("ROLEDRAW_SEED", "99")

	c, err := NewConfig(projectDir)
	require.NoError(t, err)
	require.Equal(t, "bench", c.Placeholder())
	require.NoError(t, c.SetDefaultPreset("review"))
	// the runtime view keeps its overrides after saving
	require.Equal(t, "bench", c.Placeholder())
	require.EqualValues(t, 99, c.Seed())

	require.NoError(t, os.Unsetenv("ROLEDRAW_PLACEHOLDER"))
	require.NoError(t, os.Unsetenv("ROLEDRAW_SEED"))
	reloaded, err := NewConfig(projectDir)
	require.NoError(t, err)
	require.Equal(t, assign.Placeholder, reloaded.Placeholder())
	require.Zero(t, reloaded.Seed())
	require.Equal(t, "review", reloaded.DefaultPreset())
	require.Equal(t, []string{"household", "review"}, reloaded.PresetNames())

	data, err := os.ReadFile(reloaded.ConfigPath())
	require.NoError(t, err)
	require.NotContains(t, string(data), "bench")
	require.Contains(t, string(data), "# Label shown for participants")
	require.Contains(t, string(data), "# Role sets selectable with ctrl+p")
}

func TestSetDefaultPresetWithoutFileWritesOne(t *testing.T) {
	projectDir := t.TempDir()
	writeConfig(t, projectDir, "version: 1\npresets:\n  crew: [Captain]\n")
	c, err := NewConfig(projectDir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(c.ConfigPath()))

	require.NoError(t, c.SetDefaultPreset("crew"))

	reloaded, err := NewConfig(projectDir)
	require.NoError(t, err)
	require.Equal(t, "crew", reloaded.DefaultPreset())
	require.Equal(t, []string{"Captain"}, reloaded.DefaultRoles())
}
