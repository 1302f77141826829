// internal/head/builder_test.go

package head

import (
	"net/url"
	"strings"
	"testing"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/content"
)

func TestForPage_SeedsTitleCanonicalAndLanguage(t *testing.T) {
	base, _ := url.Parse("https://example.com")
	rec := &content.Record{Name: "About Us", Route: "/about-us"}

	b := ForPage(rec, base, "en-gb")

	if got := string(b.Title()); got != "<title>About Us</title>" {
		t.Fatalf("title = %q", got)
	}
	if links := string(b.Links()); !strings.Contains(links, "https://example.com/about-us") {
		t.Fatalf("canonical missing: %q", links)
	}
	if metas := string(b.Metas()); !strings.Contains(metas, "en-gb") {
		t.Fatalf("content-language missing: %q", metas)
	}
}

func TestForPage_NilContent(t *testing.T) {
	b := ForPage(nil, nil, "")
	if b.Title() != "" || b.Links() != "" || b.Metas() != "" {
		t.Fatal("nil content must seed nothing")
	}
}

func TestBuilder_Deduplicates(t *testing.T) {
	b := New()
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta charset="utf-8">`)
	if got := string(b.Metas()); strings.Count(got, "charset") != 1 {
		t.Fatalf("duplicate meta emitted: %q", got)
	}
}

func TestBuilder_JSONWrapsBlocks(t *testing.T) {
	b := New()
	b.JSONLD(`{"@type":"WebPage"}`)
	got := string(b.JSON())
	if !strings.HasPrefix(got, `<script type="application/ld+json">`) ||
		!strings.Contains(got, `"@type":"WebPage"`) {
		t.Fatalf("unexpected JSON-LD output %q", got)
	}
}
