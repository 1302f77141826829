// internal/content/route.go
//
// URL-segment and route helpers.
//
// • MakeSegment(name) ─ converts a content name into a URL-safe segment
//   restricted to ASCII a-z, 0-9 and “-” (English-only requirement).
// • BuildRoute(parent, segment) ─ joins parent route + segment with a single
//   “/” and guarantees exactly one leading slash.
//
// Rules (MakeSegment)
// -------------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//    spaces, punctuation, emoji, and non-ASCII.
// 3. Collapse consecutive “-” to a single “-”.
// 4. Trim leading / trailing “-”.
// 5. If the result is empty, return "page".
//
// Notes
// -----
// • No Unicode transliteration; content names are English-only for now.
// • Segments are max 100 runes; callers may truncate earlier if they prefer.

package content

import (
	"strings"
)

// MakeSegment converts a content name → lower-kebab ASCII.
func MakeSegment(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastWasDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// any non-ASCII or punctuation becomes a single dash
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	seg := strings.Trim(b.String(), "-")
	if seg == "" {
		return "page"
	}
	if len(seg) > 100 {
		seg = seg[:100]
		// trim trailing dash if the cut landed on one
		seg = strings.TrimRightFunc(seg, func(r rune) bool { return r == '-' })
	}
	return seg
}

// BuildRoute joins parent + segment ensuring exactly one leading slash and no
// duplicate separators.
func BuildRoute(parent, segment string) string {
	parent = strings.Trim(parent, "/")
	segment = strings.Trim(segment, "/")

	switch {
	case parent == "" && segment == "":
		return "/"
	case parent == "":
		return "/" + segment
	case segment == "":
		return "/" + parent
	default:
		return "/" + parent + "/" + segment
	}
}
