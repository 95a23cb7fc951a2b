package pages

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// DeriveSlug builds the URL-safe slug for a reference name. The go-slug
// normalizer handles transliteration; the result is then folded to [a-z0-9-].
func DeriveSlug(name string) string {
	candidate := strings.TrimSpace(name)
	if candidate == "" {
		return ""
	}
	if normalized, err := slug.Default().Normalize(candidate); err == nil && normalized != "" {
		candidate = normalized
	}
	return fold(candidate)
}

func fold(value string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Rename sets the reference name. The slug follows the name only while it is
// empty or still equal to the slug derived from the previous name, so a slug
// edited by hand is kept.
func Rename(p Page, name string) Page {
	out := p.Clone()
	if strings.TrimSpace(p.Slug) == "" || p.Slug == DeriveSlug(p.ReferenceName) {
		out.Slug = DeriveSlug(name)
	}
	out.ReferenceName = name
	return out
}
