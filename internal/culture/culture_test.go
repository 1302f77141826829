//
//  internal/culture/culture_test.go
//
//  Resolution-order tests.  Geo hints are skipped (no reader loaded), so
//  the chain under test is domain → Accept-Language → default.
//

package culture

import (
	"net/http/httptest"
	"testing"
)

func TestPrimaryLang(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"*":                       "",
		"en-GB":                   "en-gb",
		"en-GB,en;q=0.9":          "en-gb",
		"da, en-gb;q=0.8":         "da",
		"fr-FR;q=0.9,en;q=0.8":    "fr-fr",
		"  de-DE , en-US;q=0.5  ": "de-de",
	}
	for in, want := range cases {
		if got := PrimaryLang(in); got != want {
			t.Errorf("PrimaryLang(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_DomainCultureWins(t *testing.T) {
	rv := Resolver{Default: "en-us"}
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	r.Header.Set("Accept-Language", "fr-FR")

	if got := rv.Resolve(r, "DA-DK"); got != "da-dk" {
		t.Fatalf("domain culture should win, got %q", got)
	}
}

func TestResolve_AcceptLanguageFallback(t *testing.T) {
	rv := Resolver{Default: "en-us"}
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	r.Header.Set("Accept-Language", "de-DE,en;q=0.7")

	if got := rv.Resolve(r, ""); got != "de-de" {
		t.Fatalf("want de-de from Accept-Language, got %q", got)
	}
}

func TestResolve_DefaultWhenNothingElse(t *testing.T) {
	rv := Resolver{Default: "en-us"}
	r := httptest.NewRequest("GET", "http://example.com/", nil)

	if got := rv.Resolve(r, ""); got != "en-us" {
		t.Fatalf("want configured default, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if ip := clientIP(r); ip == nil || ip.String() != "203.0.113.9" {
		t.Fatalf("want left-most XFF address, got %v", ip)
	}

	r = httptest.NewRequest("GET", "http://example.com/", nil)
	r.Header.Set("X-Real-Ip", "198.51.100.4")
	if ip := clientIP(r); ip == nil || ip.String() != "198.51.100.4" {
		t.Fatalf("want X-Real-Ip address, got %v", ip)
	}

	r = httptest.NewRequest("GET", "http://example.com/", nil)
	r.RemoteAddr = "192.0.2.8:51234"
	if ip := clientIP(r); ip == nil || ip.String() != "192.0.2.8" {
		t.Fatalf("want RemoteAddr host, got %v", ip)
	}
}
