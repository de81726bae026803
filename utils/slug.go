package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Slugify converts an arbitrary title into a URL-safe slug: lowercase,
// alphanumeric runs joined by single hyphens, everything else dropped.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// SlugifyWithSuffix builds a slug from the title and appends a short random
// suffix so that independently-titled posts never collide.
func SlugifyWithSuffix(s string) string {
	suffix := uuid.New().String()[:8]
	base := Slugify(s)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
