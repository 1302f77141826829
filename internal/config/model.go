// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                       – dotenv values,
//   • `conf/global.yaml`                    – primary static file,
//   • `CMS_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client by ResolveSecrets *after* unmarshalling, so
// credentials never live in flat files or git history.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Database section
//

// Database holds the DSN and its secret.  The DSN template stays in YAML
// so operators can tweak host, port, or flags without touching Vault; the
// password may be a literal or a `vault:path#key` reference.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required"`
	Password string `koanf:"password"`
}

//
// Views section
//

// Views locates the template files the routing pipeline binds.
type Views struct {
	Dir string `koanf:"dir" validate:"required"`
}

//
// Culture section
//

// Culture holds locale defaults and the optional GeoLite2 database used
// for country hints.
type Culture struct {
	Default   string `koanf:"default" validate:"required"`
	CountryDB string `koanf:"country_db"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or CMS_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // CMS_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Database Database `koanf:"database"`
	Views    Views    `koanf:"views"`
	Culture  Culture  `koanf:"culture"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}
