// cmd/web/main.go
//
// HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load layered config; resolve vault: secret references when present.
//
//  4. Open the content database and log active-domain count.
//
//  5. Build the domain cache, template store, and preparation router.
//
//  6. Expose Prometheus /metrics endpoint.
//
//  7. Root-handler flow:
//
//     • build PublishedRequest    – router.BuildRequest
//     • preparation pipeline      – req.Prepare (domain → content →
//       template → redirect/404), frozen on return
//     • execute recorded intent   – redirect, status, or template render
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/config"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/culture"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/database"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/domain"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/head"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/logger"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/middleware"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/request"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/router"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/server"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/theme"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/vault"
)

const serverEnvPath = "/usr/local/etc/umbraco-poc/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx := context.Background()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config (with optional Vault secret resolution) ──────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}
	if strings.HasPrefix(cfg.Database.Password, "vault:") {
		cli, err := vault.New(ctx)
		if err != nil {
			logOut.Fatalf("vault client: %v", err)
		}
		if err := config.ResolveSecrets(ctx, cli); err != nil {
			logOut.Fatalf("resolve secrets: %v", err)
		}
		cfg = config.Get()
	}

	//
	// ── 2.  Content DB connect ──────────────────────────────────────────
	//
	dsn := cfg.Database.DSN
	if strings.Contains(dsn, "%s") {
		dsn = fmt.Sprintf(dsn, cfg.Database.Password)
	}
	db, err := database.Open(dsn)
	if err != nil {
		logOut.Fatalf("connect content DB: %v", err)
	}
	defer db.Close()
	logOut.Infow("content DB online")

	// Log active-domain count as an early sanity check.
	if rows, err := domain.AllActive(db); err == nil {
		logOut.Infow("active domains", "count", len(rows))
	}

	//
	// ── 3.  Culture geo hints (optional) ────────────────────────────────
	//
	if cfg.Culture.CountryDB != "" {
		if err := culture.InitGeo(cfg.Culture.CountryDB); err != nil {
			logOut.Warnw("geo database unavailable, hints disabled",
				"path", cfg.Culture.CountryDB, "err", err)
		}
	}

	//
	// ── 4.  Domain cache, template store, and router ────────────────────
	//
	domains := domain.NewCache(db, domain.IdleTTL, domain.MaxEntries)

	viewsDir := cfg.Views.Dir
	if !filepath.IsAbs(viewsDir) {
		viewsDir = filepath.Join(cfg.Paths.Root, viewsDir)
	}
	themes, err := theme.NewFSService(viewsDir)
	if err != nil {
		logOut.Fatalf("template store: %v", err)
	}

	notifier := request.NewNotifier()
	notifier.Subscribe(func(req *request.PublishedRequest) error {
		// Observability listener: every resolution outcome, pre-freeze.
		zap.S().Debugw("request prepared",
			"path", req.Route().Path,
			"content", req.HasPublishedContent(),
			"redirect", req.IsRedirect(),
			"is404", req.Is404(),
			"culture", req.Culture(),
		)
		return nil
	})

	rt := router.New(db, domains, themes,
		culture.Resolver{Default: cfg.Culture.Default}, notifier)

	//
	// ── 5.  HTTP surface ────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Security)
	r.Handle("/metrics", promhttp.Handler())
	r.NotFound(serve(rt, themes))

	var handler http.Handler = r
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(domains, handler)
	}

	srv := server.New(cfg.HTTP.ListenAddr, handler)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
}

//
// serve runs one request through the preparation pipeline and executes
// the recorded intent.
//
func serve(rt *router.Router, themes *theme.FSService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := rt.BuildRequest()
		ok, err := req.Prepare(r.Context(), rt.RouteContextFor(r))
		if err != nil {
			zap.S().Errorw("prepare failed", "path", r.URL.Path, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		//
		// Redirect intent.
		//
		if req.IsRedirect() {
			status := http.StatusFound
			if req.IsRedirectPermanent() {
				status = http.StatusMovedPermanently
			}
			if code := req.ResponseStatusCode(); code != 0 {
				status = code
			}
			http.Redirect(w, r, req.RedirectURL(), status)
			return
		}

		if !ok || !req.HasPublishedContent() {
			http.NotFound(w, r)
			return
		}

		//
		// Missing-template recovery: the one sanctioned freeze bypass.
		//
		if req.Template() == nil {
			if err := req.UpdateOnMissingTemplate(r.Context()); err != nil {
				zap.S().Errorw("template recovery failed", "err", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if req.Template() == nil || !req.HasPublishedContent() {
				http.NotFound(w, r)
				return
			}
		}

		renderer, err := themes.Renderer(req.Template())
		if err != nil {
			zap.S().Errorw("template parse failed",
				"template", req.Template().Name, "err", err)
			http.Error(w, "template error", http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if req.Is404() {
			status = http.StatusNotFound
		}
		if code := req.ResponseStatusCode(); code != 0 {
			status = code
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)

		data := map[string]any{
			"Content": req.PublishedContent(),
			"Domain":  req.Domain(),
			"Culture": req.Culture(),
			"Head": head.ForPage(req.PublishedContent(), req.DomainURI(),
				req.Culture()),
		}
		if err := renderer.Execute(w, data); err != nil {
			zap.S().Errorw("render failed",
				"template", req.Template().Name, "err", err)
		}
	}
}
