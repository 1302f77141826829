// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`.
  2. `conf/global.yaml`.
  3. Environment variables prefixed `CMS_`, where `__` maps to “.”
     (e.g., `CMS_HTTP__LISTEN_ADDR → http.listen_addr`).

After merging, the tree is unmarshalled into strongly-typed structs,
validated, enriched with the runtime root path, and cached in an
`atomic.Pointer` for lock-free reads.  `ResolveSecrets()` rewrites any
`vault:path#key` values through the Vault client and swaps the pointer.

Instrumentation
---------------
  • DEBUG spans — root discovery, YAML read, env overlay.
  • ERROR spans — YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span  — final “config loaded” with key highlights.
  • Logs use the global *sugared* logger (`zap.S()`) so early boot issues
    surface even before the file logger is installed (bootstrap console).

Notes
-----
  • `rootDir()` climbs the cwd tree until it finds `conf/global.yaml`;
    this lets `go run ./cmd/web` work from any sub-directory.
  • Oxford commas, two spaces after periods.
*/
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/vault"
)

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves CMS_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to executable heuristic for production layout.
func rootDir() string {
	if r := os.Getenv("CMS_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, validates, and caches Config.
func Load() (*Config, error) {
	root := rootDir()
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", "global.yaml")
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
		return nil, err
	}
	zap.S().Debugw("config yaml loaded", "file", yamlPath)

	// Env overrides: CMS_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider("CMS_", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"force_https", cfg.HTTP.ForceHTTPS,
		"views_dir", cfg.Views.Dir,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── secret resolution ───────────────────────────*/

// ResolveSecrets rewrites `vault:path#key` values through cli and swaps
// the cached pointer.  Call after Load when any secret field carries the
// prefix; a nil client with pending references is an error.
func ResolveSecrets(ctx context.Context, cli *vault.Client) error {
	cfg := current.Load()
	if cfg == nil {
		return fmt.Errorf("config: ResolveSecrets before Load")
	}

	resolved := *cfg // shallow copy; secret fields are plain strings
	var err error
	if resolved.Database.Password, err = resolveValue(ctx, cli, cfg.Database.Password); err != nil {
		return err
	}

	current.Store(&resolved)
	return nil
}

// resolveValue returns v unchanged unless it carries the vault: prefix.
func resolveValue(ctx context.Context, cli *vault.Client, v string) (string, error) {
	const prefix = "vault:"
	if !strings.HasPrefix(v, prefix) {
		return v, nil
	}
	if cli == nil {
		return "", fmt.Errorf("config: value %q needs a Vault client", v)
	}

	ref := strings.TrimPrefix(v, prefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok {
		return "", fmt.Errorf("config: malformed vault reference %q", v)
	}
	return cli.GetKV(ctx, path, key, 5*time.Minute)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }
