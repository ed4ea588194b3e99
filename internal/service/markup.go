package service

import "strings"

// CleanMarkup removes Markdown code fences ("```html" and bare "```")
// anywhere in s and trims surrounding whitespace.
func CleanMarkup(s string) string {
	s = strings.ReplaceAll(s, "```html", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
