// Package config loads command line defaults from a YAML file, a .env
// file next to it and JAVAFRONT_* environment variables, in increasing
// order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javafront/java/version"
)

// DefaultPath is the configuration file looked up when none is named.
const DefaultPath = "javafront.yaml"

const (
	EnvVersion   = "JAVAFRONT_VERSION"
	EnvClasspath = "JAVAFRONT_CLASSPATH"
	EnvVerbosity = "JAVAFRONT_VERBOSITY"
	EnvLogFile   = "JAVAFRONT_LOG_FILE"
)

type Config struct {
	Version   version.Version `yaml:"version"`
	Classpath []string        `yaml:"classpath"`
	Verbosity int             `yaml:"verbosity"`
	LogFile   string          `yaml:"log_file"`
}

func Default() *Config {
	return &Config{Version: version.Latest}
}

// Load reads path from fs. A missing file leaves the defaults in place.
// Variables from the process environment win over those from the .env
// file, which is never exported into the process.
func Load(fs afero.Fs, path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	data, err := afero.ReadFile(fs, path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	dotenv, err := loadDotenv(fs, filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotenv(fs afero.Fs, path string) (map[string]string, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	env, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return env, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvVersion); ok && v != "" {
		parsed, err := version.Parse(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVersion, err)
		}
		c.Version = parsed
	}
	if v, ok := lookup(EnvClasspath); ok {
		c.Classpath = filepath.SplitList(v)
	}
	if v, ok := lookup(EnvVerbosity); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbosity, err)
		}
		c.Verbosity = n
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.LogFile = v
	}
	return nil
}

// LogPath returns the log file for commonlog.Configure, or nil for
// standard error.
func (c *Config) LogPath() *string {
	if c.LogFile == "" {
		return nil
	}
	return &c.LogFile
}
