// internal/content/repository_test.go

package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

var contentCols = []string{
	"id", "parent_id", "site_root_id", "name", "url_segment", "route",
	"url_alias", "template_alias", "culture",
	"internal_redirect_id", "redirect_id",
	"published", "release_at", "expire_at",
	"created_at", "updated_at",
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

func contentRow(id int64, route string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(contentCols).
		AddRow(id, nil, int64(100), "Page", "page", route,
			nil, "Standard", "en-us",
			nil, nil,
			true, nil, nil,
			now, now)
}

func TestByRoute_Found(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(100), "/about").
		WillReturnRows(contentRow(11, "/about"))

	rec, err := ByRoute(context.Background(), db, 100, "/about")
	if err != nil {
		t.Fatalf("ByRoute: %v", err)
	}
	if rec.ID != 11 || rec.Route != "/about" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestByRoute_NoRowsMapsToErrNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(100), "/missing").
		WillReturnRows(sqlmock.NewRows(contentCols))

	_, err := ByRoute(context.Background(), db, 100, "/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestByID_Found(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(42)).
		WillReturnRows(contentRow(42, "/answers"))

	rec, err := ByID(context.Background(), db, 42)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if rec.ID != 42 {
		t.Fatalf("want id 42, got %d", rec.ID)
	}
}

func TestByAlias_Found(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM\s+content`).
		WithArgs(int64(100), "promo").
		WillReturnRows(contentRow(9, "/campaigns/spring-promo"))

	rec, err := ByAlias(context.Background(), db, 100, "promo")
	if err != nil {
		t.Fatalf("ByAlias: %v", err)
	}
	if rec.ID != 9 {
		t.Fatalf("want id 9, got %d", rec.ID)
	}
}
