package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/envinject/pkg/errors"
	"github.com/arthur-debert/envinject/pkg/injection"
	"github.com/arthur-debert/envinject/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config location at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)
	t.Setenv(paths.EnvStateDir, t.TempDir())
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, paths.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, injection.DefaultStartMarker, cfg.Markers.Start)
	assert.Equal(t, injection.DefaultEndMarker, cfg.Markers.End)
	assert.Equal(t, paths.DefaultTargetPath, cfg.Target.Path)
	assert.Equal(t, paths.DefaultBackupSuffix, cfg.Target.BackupSuffix)
	assert.Equal(t, paths.DefaultExtensionsDir, cfg.Extensions.ParentDir)
	assert.Empty(t, cfg.Targets)
}

func TestLoad_NoUserFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_UserFileOverrides(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
[target]
backup_suffix = ".orig"

[extensions]
parent_dir = "/opt/exts"

[[targets]]
extension = "google.geminicodeassist"
vars = { HTTPS_PROXY = "http://proxy:3128", NO_PROXY = "localhost", RETRIES = 3 }

[[targets]]
extension = "github.copilot"
vars = { NODE_EXTRA_CA_CERTS = "/etc/ssl/corp.pem" }
`)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, ".orig", cfg.Target.BackupSuffix)
	assert.Equal(t, paths.DefaultTargetPath, cfg.Target.Path, "unset keys keep defaults")
	assert.Equal(t, "/opt/exts", cfg.ParentDir())
	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "google.geminicodeassist", cfg.Targets[0].Extension)
	assert.Equal(t, "3", cfg.Targets[0].Vars["RETRIES"])
	assert.Equal(t, []string{"HTTPS_PROXY", "NO_PROXY", "RETRIES"}, cfg.Targets[0].Spec().Names())
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "[markers]\nstart = \"// <env>\"\nend = \"// </env>\"\n")

	cfg, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "// <env>", cfg.Markers.Start)

	inj, err := cfg.Injector()
	require.NoError(t, err)
	assert.Equal(t, "// </env>", inj.Markers().End)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolate(t)

	_, err := Load(LoadOptions{ConfigFile: "/no/such/config.toml"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ENVINJECT_TARGET__BACKUP_SUFFIX", ".pristine")
	t.Setenv("ENVINJECT_EXTENSIONS__PARENT_DIR", "/srv/exts")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, ".pristine", cfg.Target.BackupSuffix)
	assert.Equal(t, "/srv/exts", cfg.Extensions.ParentDir)
}

func TestLoad_InvalidToml(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "[target\npath = ")

	_, err := Load(LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"same markers", func(c *Config) { c.Markers.End = c.Markers.Start }},
		{"empty start marker", func(c *Config) { c.Markers.Start = "" }},
		{"empty target path", func(c *Config) { c.Target.Path = " " }},
		{"empty backup suffix", func(c *Config) { c.Target.BackupSuffix = "" }},
		{"target without extension", func(c *Config) { c.Targets = []TargetSpec{{Vars: map[string]string{"A": "1"}}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
		})
	}
}

func TestDump(t *testing.T) {
	cfg := Default()
	cfg.Targets = []TargetSpec{{Extension: "pub.ext", Vars: map[string]string{"A": "1"}}}

	out, err := Dump(cfg)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "[markers]")
	assert.Contains(t, text, "backup_suffix = '.bak'")
	assert.Contains(t, text, "[[targets]]")
	assert.True(t, strings.Contains(text, "extension = 'pub.ext'"))
}

func TestDump_RoundTripsThroughLoad(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Target.BackupSuffix = ".orig"
	cfg.Targets = []TargetSpec{{Extension: "pub.ext", Vars: map[string]string{"A": "it's"}}}

	out, err := Dump(cfg)
	require.NoError(t, err)
	path := writeConfig(t, t.TempDir(), string(out))

	loaded, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
