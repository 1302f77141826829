// internal/domain/cache_test.go
//
// Cache behaviour against a mocked DB: first Get queries, second Get is
// served from memory, and an unmatched host surfaces ErrNoDomain.

package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var domainCols = []string{
	"id", "host", "culture_iso", "root_content_id", "not_found_content_id",
	"sort_order", "suspended_at", "deleted_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func domainRow(id int64, host string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(domainCols).
		AddRow(id, host, "en-us", int64(100), nil, 0, nil, nil, now, now)
}

func TestCacheGet_SecondHitSkipsDB(t *testing.T) {
	db, mock := newMockDB(t)
	c := NewCache(db, IdleTTL, MaxEntries)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("example.com").
		WillReturnRows(domainRow(7, "example.com"))

	ctx := context.Background()
	first, err := c.Get(ctx, "example.com")
	if err != nil {
		t.Fatalf("first Get: %v", err)
	}
	if first.ID != 7 {
		t.Fatalf("want domain 7, got %d", first.ID)
	}

	// No second ExpectQuery registered; a DB round-trip would fail here.
	second, err := c.Get(ctx, "example.com")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if second != first {
		t.Fatal("cached entry should be the same record")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCacheGet_NoMatchSurfacesErrNoDomain(t *testing.T) {
	db, mock := newMockDB(t)
	c := NewCache(db, IdleTTL, MaxEntries)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("unknown.test").
		WillReturnRows(sqlmock.NewRows(domainCols))

	_, err := c.Get(context.Background(), "unknown.test")
	if !errors.Is(err, ErrNoDomain) {
		t.Fatalf("want ErrNoDomain, got %v", err)
	}
}

func TestCacheGet_WildcardResolvedThroughMatcher(t *testing.T) {
	db, mock := newMockDB(t)
	c := NewCache(db, IdleTTL, MaxEntries)

	mock.ExpectQuery(`FROM\s+domain`).
		WithArgs("shop.example.com").
		WillReturnRows(domainRow(3, "*.example.com"))

	dom, err := c.Get(context.Background(), "shop.example.com")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if dom.ID != 3 {
		t.Fatalf("want wildcard row 3, got %d", dom.ID)
	}
}
