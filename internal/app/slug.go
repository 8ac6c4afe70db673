package app

import "strings"

// CreateSlug turns free text into a stable URL-safe identifier: lowercase,
// every run of non-alphanumeric characters collapsed to one hyphen, edge
// hyphens trimmed. Inputs with nothing usable yield the literal "unknown"
// so a slug is never empty, which also keeps CreateSlug idempotent.
// Distinct inputs can collide; callers accept the resulting merge.
func CreateSlug(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	prevHyphen := false
	for _, r := range strings.ToLower(text) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "unknown"
	}
	return s
}
