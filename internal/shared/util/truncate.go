package util

import "unicode/utf8"

// Truncate returns a prefix of s holding at most max bytes, backing the cut
// up so a multi-byte rune is never split.
func Truncate(s string, max int) string {
	if max < 0 {
		max = 0
	}
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
