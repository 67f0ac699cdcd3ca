// Package config loads the graphkit configuration file.
//
// The file is TOML, found at --config or at
// $XDG_CONFIG_HOME/graphkit/config.toml (~/.config/graphkit/config.toml).
// A missing default file is not an error; every field has a default.
//
//	[graph]
//	type = "directed"
//	multi = false
//	allow_self_loops = true
//
//	[server]
//	addr = ":8080"
//	cors_origin = "*"
//
//	[redis]
//	addr = "localhost:6379"
//	channel = "graphkit:events"
//	prefix = "graphkit:"
//
//	[render]
//	format = "svg"
//	rankdir = "LR"
//	cache_ttl = "1h"
//
//	[cache]
//	dir = "/tmp/graphkit"
//	disabled = false
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

const appName = "graphkit"

// Config is the whole configuration file.
type Config struct {
	Graph  Graph  `toml:"graph"`
	Server Server `toml:"server"`
	Redis  Redis  `toml:"redis"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
}

// Graph holds the options applied to imported graphs. Unset fields leave
// the options stored in the file alone.
type Graph struct {
	Type           string `toml:"type"`
	Multi          *bool  `toml:"multi"`
	AllowSelfLoops *bool  `toml:"allow_self_loops"`
}

// Server configures graphkit serve.
type Server struct {
	Addr       string `toml:"addr"`
	CORSOrigin string `toml:"cors_origin"`
}

// Redis configures the shared cache and the event publisher.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Channel  string `toml:"channel"`
	Prefix   string `toml:"prefix"`
}

// Render configures graphkit render and /render.svg.
type Render struct {
	Format   string   `toml:"format"`
	RankDir  string   `toml:"rankdir"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// Cache configures the local file cache.
type Cache struct {
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// Duration is a time.Duration written as a string such as "90s".
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{Addr: ":8080"},
		Redis:  Redis{Channel: "graphkit:events", Prefix: "graphkit:"},
		Render: Render{Format: "svg", RankDir: "TB", CacheTTL: Duration{time.Hour}},
	}
}

// DefaultPath returns the XDG location of the configuration file.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the XDG cache directory (~/.cache/graphkit).
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path on top of [Default]. An empty path loads the
// default location, where a missing file yields the defaults. An explicit
// path that does not exist is a FILE_NOT_FOUND error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %s", path, undecoded[0])
	}
	return cfg, cfg.Validate()
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	if _, err := graph.ParseType(c.Graph.Type); err != nil {
		return err
	}
	if err := errors.ValidateFormat(c.Render.Format, "svg", "png", "dot"); err != nil {
		return err
	}
	return errors.ValidateFormat(c.Render.RankDir, "", "TB", "LR", "BT", "RL")
}

// GraphOptions returns the graph options the [graph] section sets.
func (c Config) GraphOptions() []graph.Option {
	var opts []graph.Option
	if c.Graph.Type != "" {
		t, _ := graph.ParseType(c.Graph.Type)
		opts = append(opts, graph.WithType(t))
	}
	if c.Graph.Multi != nil {
		opts = append(opts, graph.WithMulti(*c.Graph.Multi))
	}
	if c.Graph.AllowSelfLoops != nil {
		opts = append(opts, graph.WithSelfLoops(*c.Graph.AllowSelfLoops))
	}
	return opts
}

// CacheDir returns the configured cache directory or the XDG default.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}
