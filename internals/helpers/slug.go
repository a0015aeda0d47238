package helper

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizeTitle mengubah judul bebas jadi nama file yang aman:
// karakter non-alfanumerik diganti "_", digabung, dan dipangkas.
// Kosong → "course".
func SanitizeTitle(title string) string {
	safe := nonAlnumRe.ReplaceAllString(title, "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		return "course"
	}
	return safe
}
