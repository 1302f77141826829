// internal/theme/service_test.go

package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeView(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write view %s: %v", name, err)
	}
}

func TestFSService_GetNormalizesAlias(t *testing.T) {
	dir := t.TempDir()
	writeView(t, dir, "Blog Post.html", "<h1>post</h1>")
	writeView(t, dir, "home.html", "<h1>home</h1>")

	s, err := NewFSService(dir)
	if err != nil {
		t.Fatalf("NewFSService: %v", err)
	}

	// Spaced, case-varied, and canonical forms all hit the same entry.
	for _, alias := range []string{"BlogPost", "blog post", "  blogpost  "} {
		tpl, ok := s.Get(alias)
		if !ok {
			t.Fatalf("Get(%q) missed", alias)
		}
		if tpl.Name != "Blog Post.html" {
			t.Fatalf("Get(%q) = %q, want Blog Post.html", alias, tpl.Name)
		}
	}

	if _, ok := s.Get("nope"); ok {
		t.Fatal("unknown alias must miss")
	}
	if _, ok := s.Get(""); ok {
		t.Fatal("empty alias must miss")
	}
}

func TestFSService_RescanPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	writeView(t, dir, "home.html", "<h1>home</h1>")

	s, err := NewFSService(dir)
	if err != nil {
		t.Fatalf("NewFSService: %v", err)
	}
	if _, ok := s.Get("landing"); ok {
		t.Fatal("landing should not exist yet")
	}

	writeView(t, dir, "landing.html", "<h1>landing</h1>")
	if err := s.Rescan(); err != nil {
		t.Fatalf("Rescan: %v", err)
	}
	if _, ok := s.Get("landing"); !ok {
		t.Fatal("landing should resolve after rescan")
	}
}

func TestFSService_RendererParsesAndCaches(t *testing.T) {
	dir := t.TempDir()
	writeView(t, dir, "home.html", "<p>{{.Title}}</p>")

	s, err := NewFSService(dir)
	if err != nil {
		t.Fatalf("NewFSService: %v", err)
	}
	tpl, ok := s.Get("home")
	if !ok {
		t.Fatal("home template missing")
	}

	first, err := s.Renderer(tpl)
	if err != nil {
		t.Fatalf("Renderer: %v", err)
	}
	var out strings.Builder
	if err := first.Execute(&out, map[string]string{"Title": "hi"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "hi") {
		t.Fatalf("unexpected output %q", out.String())
	}

	second, err := s.Renderer(tpl)
	if err != nil {
		t.Fatalf("Renderer (cached): %v", err)
	}
	if second != first {
		t.Fatal("second Renderer call should hit the parse cache")
	}
}

func TestNewFSService_MissingDir(t *testing.T) {
	if _, err := NewFSService(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("want error for missing views dir")
	}
}

func TestNormalizeAlias(t *testing.T) {
	cases := map[string]string{
		"Blog Post":    "BlogPost",
		"  home ":      "home",
		"a b c":        "abc",
		"already-fine": "already-fine",
	}
	for in, want := range cases {
		if got := NormalizeAlias(in); got != want {
			t.Errorf("NormalizeAlias(%q) = %q, want %q", in, got, want)
		}
	}
}
