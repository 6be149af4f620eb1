// Package config holds the built-in settings of the frontend dev server.
//
// The settings live in an embedded TOML document. Nothing is read from flags,
// the environment, or the filesystem at runtime.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultsTOML string

// Config is the full set of server settings.
type Config struct {
	// Addr is the listen address passed to net/http (e.g. ":3000").
	Addr string `toml:"addr"`
	// PublicURL is where the frontend is reachable, shown in the banner.
	PublicURL string `toml:"public_url"`
	// BackendURL is where the separate API backend is expected, shown in the banner.
	BackendURL string `toml:"backend_url"`
	// IndexFiles are tried in order when a directory is requested.
	IndexFiles []string `toml:"index_files"`
	// ReadHeaderTimeout bounds how long a client may take to send request headers.
	ReadHeaderTimeout string `toml:"read_header_timeout"`

	CORS CORSConfig `toml:"cors"`

	readHeaderTimeout time.Duration
}

// CORSConfig holds the fixed cross-origin header values.
type CORSConfig struct {
	AllowOrigin  string `toml:"allow_origin"`
	AllowMethods string `toml:"allow_methods"`
	AllowHeaders string `toml:"allow_headers"`
}

// ReadHeaderTimeoutDuration returns the parsed ReadHeaderTimeout.
func (c *Config) ReadHeaderTimeoutDuration() time.Duration {
	return c.readHeaderTimeout
}

// Load decodes the embedded defaults and validates them.
func Load() (*Config, error) {
	return parse(defaultsTOML)
}

func parse(doc string) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		return nil, fmt.Errorf("decode built-in config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is empty")
	}
	if len(c.IndexFiles) == 0 {
		return errors.New("config: index_files is empty")
	}
	for _, name := range c.IndexFiles {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("config: invalid index file name %q", name)
		}
	}
	if c.CORS.AllowOrigin == "" || c.CORS.AllowMethods == "" || c.CORS.AllowHeaders == "" {
		return errors.New("config: cors values must all be set")
	}

	d, err := time.ParseDuration(c.ReadHeaderTimeout)
	if err != nil {
		return fmt.Errorf("config: read_header_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("config: read_header_timeout must be positive, got %s", d)
	}
	c.readHeaderTimeout = d
	return nil
}
