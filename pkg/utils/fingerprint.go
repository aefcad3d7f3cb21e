package utils

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"moodlog/internal/models/db_models"
)

// FingerprintWindow is how many of the newest posts feed the suggestion fingerprint.
const FingerprintWindow = 3

// RollingHash is the classic h*31+c string checksum over UTF-16 code units,
// truncated to a signed 32-bit integer at every step.
func RollingHash(s string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(c)
	}
	return h
}

// ContextFingerprint expects posts newest-first and only looks at the first FingerprintWindow.
func ContextFingerprint(posts []db_models.Post) int32 {
	if len(posts) > FingerprintWindow {
		posts = posts[:FingerprintWindow]
	}

	var b strings.Builder
	for i, p := range posts {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(p.ID.String())
		b.WriteByte('|')
		b.WriteString(p.Description)
		b.WriteByte('|')
		b.WriteString(strconv.FormatInt(p.CreatedAt, 10))
	}

	return RollingHash(b.String())
}
