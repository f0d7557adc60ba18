package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javafront/config"
	"github.com/dhamidi/javafront/java/version"
)

// clearEnv unsets every JAVAFRONT_* variable for the duration of t.
func clearEnv(t *testing.T) {
	for _, key := range []string{config.EnvVersion, config.EnvClasspath, config.EnvVerbosity, config.EnvLogFile} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, version.Latest, cfg.Version)
	assert.Nil(t, cfg.LogPath())
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/javafront.yaml", []byte(`
version: "1.5"
classpath:
  - lib/rt.jar
  - build/classes
verbosity: 2
log_file: /tmp/javafront.log
`), 0o644))

	cfg, err := config.Load(fs, "/etc/javafront.yaml")
	require.NoError(t, err)
	assert.Equal(t, version.J1_5, cfg.Version)
	assert.Equal(t, []string{"lib/rt.jar", "build/classes"}, cfg.Classpath)
	assert.Equal(t, 2, cfg.Verbosity)
	require.NotNil(t, cfg.LogPath())
	assert.Equal(t, "/tmp/javafront.log", *cfg.LogPath())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p/javafront.yaml", []byte("version: \"11\"\nverbosity: 1\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/p/.env", []byte("JAVAFRONT_VERSION=12-preview\nJAVAFRONT_VERBOSITY=3\n"), 0o644))

	cfg, err := config.Load(fs, "/p/javafront.yaml")
	require.NoError(t, err)
	assert.Equal(t, version.J12Preview, cfg.Version)
	assert.Equal(t, 3, cfg.Verbosity)

	t.Setenv(config.EnvVersion, "1.8")
	t.Setenv(config.EnvClasspath, "a.jar"+string(filepath.ListSeparator)+"classes")
	cfg, err = config.Load(fs, "/p/javafront.yaml")
	require.NoError(t, err)
	assert.Equal(t, version.J1_8, cfg.Version)
	assert.Equal(t, 3, cfg.Verbosity)
	assert.Equal(t, []string{"a.jar", "classes"}, cfg.Classpath)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     map[string]string
		message string
	}{
		{"unknown version in file", "version: \"2\"\n", nil, `parsing /javafront.yaml: unknown java version: "2"`},
		{"bad yaml", "classpath: [\n", nil, "parsing /javafront.yaml: yaml: "},
		{"unknown version in env", "", map[string]string{config.EnvVersion: "99"}, `JAVAFRONT_VERSION: unknown java version: "99"`},
		{"bad verbosity", "", map[string]string{config.EnvVerbosity: "loud"}, `JAVAFRONT_VERBOSITY: strconv.Atoi: parsing "loud": invalid syntax`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/javafront.yaml", []byte(tt.yaml), 0o644))
			_, err := config.Load(fs, "/javafront.yaml")
			assert.ErrorContains(t, err, tt.message)
		})
	}
}
