// internal/theme/service.go
//
// Filesystem-backed template service.
//
// Context
// -------
// FSService scans one views directory at construction and builds an
// alias → Template index.  Lookups are pure map reads, so Get is safe for
// concurrent use.  Parsed *template.Template sets are produced on demand
// by Renderer and held in a small LRU, keyed by file path, so repeated
// renders of hot templates skip re-parsing.
//
// Notes
// -----
// • Aliases derive from file base names; "Blog Post.html" → "BlogPost".
// • Rescan() rebuilds the index; callers serialise rescans externally.
// • Oxford commas, two spaces after periods.

package theme

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/cache"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/viewhelpers"
)

// FSService resolves template aliases against a views directory.
type FSService struct {
	baseDir string

	mu    sync.RWMutex
	index map[string]*Template

	parsedMu sync.Mutex
	parsed   *cache.LRU
}

// NewFSService scans baseDir and returns a ready service.
func NewFSService(baseDir string) (*FSService, error) {
	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("views dir %s not found", baseDir)
	}
	s := &FSService{
		baseDir: baseDir,
		parsed:  cache.New(64),
	}
	if err := s.Rescan(); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the descriptor for alias, normalizing before lookup.
func (s *FSService) Get(alias string) (*Template, bool) {
	key := strings.ToLower(NormalizeAlias(alias))
	if key == "" {
		return nil, false
	}
	s.mu.RLock()
	t, ok := s.index[key]
	s.mu.RUnlock()
	return t, ok
}

// Rescan rebuilds the alias index from disk.
func (s *FSService) Rescan() error {
	files, err := CollectHTML(s.baseDir)
	if err != nil {
		return fmt.Errorf("scan views %s: %w", s.baseDir, err)
	}

	fresh := make(map[string]*Template, len(files))
	for _, f := range files {
		name := filepath.Base(f)
		alias := NormalizeAlias(strings.TrimSuffix(name, filepath.Ext(name)))
		fresh[strings.ToLower(alias)] = &Template{
			Alias: alias,
			Name:  name,
			Path:  f,
		}
	}

	s.mu.Lock()
	s.index = fresh
	s.mu.Unlock()
	return nil
}

// Renderer parses (or fetches from the LRU) the template set for t.
func (s *FSService) Renderer(t *Template) (*template.Template, error) {
	s.parsedMu.Lock()
	defer s.parsedMu.Unlock()

	if v, ok := s.parsed.Get(t.Path); ok {
		return v.(*template.Template), nil
	}
	tpl, err := template.New(t.Name).
		Funcs(viewhelpers.FuncMap()).
		ParseFiles(t.Path)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", t.Path, err)
	}
	s.parsed.Add(t.Path, tpl)
	return tpl, nil
}
