// internal/router/router_test.go
//
// Unit-tests for the preparation pipeline using sqlmock.
//
// Workflow
// --------
// Each test:
//
//   1. Builds a sqlmock-backed sqlx.DB and seeds query expectations in
//      pipeline order (domain candidates, then content lookups).
//   2. Wires a Router with a fresh domain cache and an in-memory
//      template store.
//   3. Runs Prepare on a built request and asserts the frozen outcome.
//
// Run: go test ./internal/router -v

package router

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/culture"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/domain"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/request"
	"github.com/josecarlosfreelancing/umbraco-poc/internal/theme"
)

// fakeTemplates satisfies theme.Service with a fixed alias set.
type fakeTemplates map[string]*theme.Template

func (f fakeTemplates) Get(alias string) (*theme.Template, bool) {
	t, ok := f[alias]
	return t, ok
}

var domainCols = []string{
	"id", "host", "culture_iso", "root_content_id", "not_found_content_id",
	"sort_order", "suspended_at", "deleted_at", "created_at", "updated_at",
}

var contentCols = []string{
	"id", "parent_id", "site_root_id", "name", "url_segment", "route",
	"url_alias", "template_alias", "culture", "internal_redirect_id",
	"redirect_id", "published", "release_at", "expire_at",
	"created_at", "updated_at",
}

func domainRow(notFoundID any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(domainCols).
		AddRow(1, "example.com", "en-us", 10, notFoundID, 0, nil, nil, now, now)
}

func contentRow(id uint64, route, tplAlias string, internalID, redirectID any) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(contentCols).
		AddRow(id, nil, 10, "Page", "page", route, nil, tplAlias, "en-us",
			internalID, redirectID, true, nil, nil, now, now)
}

func newTestRouter(t *testing.T) (*Router, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	domains := domain.NewCache(db, domain.IdleTTL, domain.MaxEntries)
	templates := fakeTemplates{
		"page": {Alias: "page", Name: "page.html"},
		"home": {Alias: "home", Name: "home.html"},
	}
	rt := New(db, domains, templates, culture.Resolver{Default: "en-us"}, nil)
	return rt, mock
}

func prepare(t *testing.T, rt *Router, path string) (*request.PublishedRequest, bool) {
	t.Helper()
	req := rt.BuildRequest()
	ok, err := req.Prepare(context.Background(), &request.RouteContext{
		Host: "example.com",
		Path: path,
	})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if !req.IsFrozen() {
		t.Fatal("request not frozen after Prepare")
	}
	return req, ok
}

func TestPrepare_ByRoute(t *testing.T) {
	rt, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("example.com").
		WillReturnRows(domainRow(nil))
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(10), "/about").
		WillReturnRows(contentRow(100, "/about", "page", nil, nil))

	req, ok := prepare(t, rt, "/about")
	if !ok {
		t.Fatal("expected success signal")
	}
	if req.PublishedContent() == nil || req.PublishedContent().ID != 100 {
		t.Fatalf("content = %+v, want id 100", req.PublishedContent())
	}
	if req.Template() == nil || req.Template().Alias != "page" {
		t.Errorf("template = %+v, want page", req.Template())
	}
	if req.Culture() != "en-us" {
		t.Errorf("culture = %q, want en-us", req.Culture())
	}
	if req.Is404() || req.IsRedirect() {
		t.Error("unexpected 404 or redirect intent")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestPrepare_NothingFound_Ends404(t *testing.T) {
	rt, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("example.com").
		WillReturnRows(domainRow(nil))
	// Route and alias finders both miss; the id finder skips a
	// non-numeric path.
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(10), "/missing").
		WillReturnRows(sqlmock.NewRows(contentCols))
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(10), "missing").
		WillReturnRows(sqlmock.NewRows(contentCols))

	req, ok := prepare(t, rt, "/missing")
	if ok {
		t.Fatal("expected failure signal")
	}
	if !req.Is404() {
		t.Error("expected 404 flag after contentless preparation")
	}
	if req.HasPublishedContent() {
		t.Error("unexpected content")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestPrepare_FollowsInternalRedirect(t *testing.T) {
	rt, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("example.com").
		WillReturnRows(domainRow(nil))
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(10), "/old").
		WillReturnRows(contentRow(100, "/old", "page", int64(42), nil))
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(42)).
		WillReturnRows(contentRow(42, "/new", "home", nil, nil))

	req, ok := prepare(t, rt, "/old")
	if !ok {
		t.Fatal("expected success signal")
	}
	if req.PublishedContent().ID != 42 {
		t.Fatalf("content id = %d, want 42", req.PublishedContent().ID)
	}
	if !req.IsInternalRedirect() {
		t.Error("internal-redirect flag not set")
	}
	if req.Template() == nil || req.Template().Alias != "home" {
		t.Errorf("template = %+v, want home", req.Template())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestPrepare_RedirectProperty(t *testing.T) {
	rt, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("example.com").
		WillReturnRows(domainRow(nil))
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(10), "/moved").
		WillReturnRows(contentRow(100, "/moved", "page", nil, int64(77)))
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(77)).
		WillReturnRows(contentRow(77, "/new-home", "home", nil, nil))

	req, ok := prepare(t, rt, "/moved")
	if !ok {
		t.Fatal("expected success signal")
	}
	if !req.IsRedirect() || !req.IsRedirectPermanent() {
		t.Fatalf("redirect=%v permanent=%v, want permanent redirect",
			req.IsRedirect(), req.IsRedirectPermanent())
	}
	if req.RedirectURL() != "/new-home" {
		t.Errorf("redirect url = %q, want /new-home", req.RedirectURL())
	}
	// Redirecting requests never bind a template.
	if req.Template() != nil {
		t.Errorf("template = %+v, want nil", req.Template())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestUpdateOnMissingTemplate_BindsNotFoundPage(t *testing.T) {
	rt, mock := newTestRouter(t)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("example.com").
		WillReturnRows(domainRow(int64(99)))
	// Content resolves, but its alias has no matching view.
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(10), "/weird").
		WillReturnRows(contentRow(100, "/weird", "ghost", nil, nil))

	req, _ := prepare(t, rt, "/weird")
	if req.Template() != nil {
		t.Fatalf("template = %+v, want nil for unknown alias", req.Template())
	}

	// The response stage discovers the missing template and invokes the
	// recovery path through the scoped freeze bypass.
	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(99)).
		WillReturnRows(contentRow(99, "/not-found", "home", nil, nil))

	if err := req.UpdateOnMissingTemplate(context.Background()); err != nil {
		t.Fatalf("UpdateOnMissingTemplate: %v", err)
	}
	if !req.IsFrozen() {
		t.Error("request left writable after recovery")
	}
	if !req.Is404() {
		t.Error("404 flag not set by recovery")
	}
	if req.PublishedContent().ID != 99 {
		t.Errorf("content id = %d, want not-found page 99", req.PublishedContent().ID)
	}
	if req.Template() == nil || req.Template().Alias != "home" {
		t.Errorf("template = %+v, want home", req.Template())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
