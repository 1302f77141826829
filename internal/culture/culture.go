//
//  internal/culture/culture.go
//
//  Per-request culture resolution.  One culture is chosen per request;
//  fallback chains across cultures are a possible future extension and
//  deliberately not implemented.
//
//  Priority (high → low):
//
//    1. Culture bound to the matched domain row.
//    2. Primary Accept-Language tag from the visitor.
//    3. GeoLite2 country hint (skipped for bots; crawlers exit through
//       data centres whose location says nothing about the reader).
//    4. The resolver's configured default.
//
//  Dependencies
//  • github.com/avct/uasurfer          (bot detection, via internal/ua)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup)
//

package culture

import (
	"net"
	"net/http"
	"strings"

	"github.com/oschwald/geoip2-golang"

	"github.com/josecarlosfreelancing/umbraco-poc/internal/ua"
)

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a singleton MaxMind handle.  It is safe for concurrent
// reads, which is all we ever perform.  Nil when no database is loaded;
// the geo hint is then skipped.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-Country database at startup.  Call it from
// main(); resolution degrades gracefully when it is never called.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

// countryCultures maps ISO country codes to a sensible culture tag for
// visitors who send no Accept-Language header.  Intentionally small; the
// default covers everything else.
var countryCultures = map[string]string{
	"US": "en-us",
	"GB": "en-gb",
	"AU": "en-au",
	"DE": "de-de",
	"FR": "fr-fr",
	"ES": "es-es",
	"IT": "it-it",
	"NL": "nl-nl",
	"BR": "pt-br",
	"PT": "pt-pt",
	"JP": "ja-jp",
	"DK": "da-dk",
}

//
//  -----------------------------
//  Resolver
//  -----------------------------
//

// Resolver picks one culture per request.
type Resolver struct {
	Default string // e.g., "en-us"
}

// Resolve returns the culture for the request.  domainCulture is the tag
// bound to the matched domain row; empty means the domain carries none.
func (rv Resolver) Resolve(r *http.Request, domainCulture string) string {
	if domainCulture != "" {
		return strings.ToLower(domainCulture)
	}

	if tag := PrimaryLang(r.Header.Get("Accept-Language")); tag != "" {
		return tag
	}

	if !ua.Parse(r.UserAgent()).IsBot {
		if c := geoHint(clientIP(r)); c != "" {
			return c
		}
	}

	return rv.Default
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// PrimaryLang extracts the first language subtag before any ";q=" rule.
func PrimaryLang(al string) string {
	if al == "" {
		return ""
	}
	parts := strings.Split(al, ",")
	tag := strings.TrimSpace(parts[0])
	if i := strings.Index(tag, ";"); i != -1 {
		tag = tag[:i]
	}
	if tag == "*" {
		return ""
	}
	return strings.ToLower(tag)
}

// geoHint returns a best-effort culture for the visitor's country.
func geoHint(ip net.IP) string {
	if geoReader == nil || ip == nil {
		return ""
	}
	rec, err := geoReader.Country(ip)
	if err != nil {
		return ""
	}
	return countryCultures[rec.Country.IsoCode]
}

// clientIP extracts the left-most public address from X-Forwarded-For or
// X-Real-IP, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
