package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/graphkit/pkg/errors"
	"github.com/matzehuels/graphkit/pkg/graph"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[graph]
type = "directed"
multi = true

[server]
addr = ":9000"

[render]
rankdir = "LR"
cache_ttl = "90s"

[cache]
disabled = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Render.RankDir != "LR" || cfg.Render.CacheTTL.Duration != 90*time.Second {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("default format lost: %q", cfg.Render.Format)
	}
	if !cfg.Cache.Disabled {
		t.Error("cache.disabled not applied")
	}
	if cfg.Redis.Channel != "graphkit:events" {
		t.Errorf("default channel lost: %q", cfg.Redis.Channel)
	}

	g := graph.New(cfg.GraphOptions()...)
	if g.Type() != graph.Directed || !g.Multi() || !g.AllowSelfLoops() {
		t.Errorf("graph options = %+v", g.Options())
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    errors.Code
	}{
		{"syntax", "[graph\n", errors.ErrCodeInvalidFormat},
		{"unknown key", "[graph]\ncolour = 1\n", errors.ErrCodeInvalidInput},
		{"bad type", "[graph]\ntype = \"hyper\"\n", errors.ErrCodeInvalidArguments},
		{"bad format", "[render]\nformat = \"pdf\"\n", errors.ErrCodeInvalidFormat},
		{"bad duration", "[render]\ncache_ttl = \"soon\"\n", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if len(cfg.GraphOptions()) != 0 {
		t.Error("defaults should not override graph options")
	}

	_, err = Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if p, _ := DefaultPath(); p != filepath.Join("/xdg/config", "graphkit", "config.toml") {
		t.Errorf("DefaultPath = %q", p)
	}
	if p, _ := DefaultCacheDir(); p != filepath.Join("/xdg/cache", "graphkit") {
		t.Errorf("DefaultCacheDir = %q", p)
	}

	cfg := Default()
	cfg.Cache.Dir = "/custom"
	if p, _ := cfg.CacheDir(); p != "/custom" {
		t.Errorf("CacheDir = %q", p)
	}
}
