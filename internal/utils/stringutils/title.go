package stringutils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern        = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)
	mdLinkPattern     = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// SanitizeTitleContent strips URLs, markdown links, and noisy characters so
// the remaining text is usable as a conversation title.
func SanitizeTitleContent(content string) string {
	content = mdLinkPattern.ReplaceAllString(content, "$1")
	content = urlPattern.ReplaceAllString(content, "")

	var b strings.Builder
	for _, r := range content {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) ||
			strings.ContainsRune(".,!?-'", r) {
			b.WriteRune(r)
		}
	}

	content = multiSpacePattern.ReplaceAllString(b.String(), " ")
	content = strings.TrimSpace(content)
	return strings.TrimRight(content, " .,!?-'")
}

// TruncateTitle shortens title to at most maxLen bytes, preferring a word
// boundary and appending an ellipsis when text was dropped.
func TruncateTitle(title string, maxLen int) string {
	if len(title) <= maxLen {
		return title
	}

	const ellipsis = "..."
	limit := maxLen - len(ellipsis)
	if limit < 0 {
		limit = 0
	}

	truncated := title[:limit]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > limit/2 {
		truncated = strings.TrimRight(truncated[:lastSpace], " ")
	}
	return truncated + ellipsis
}

// GenerateTitle produces a clean title from free-form message content.
func GenerateTitle(content string, maxLen int) string {
	sanitized := SanitizeTitleContent(content)
	if sanitized == "" {
		return ""
	}
	return TruncateTitle(sanitized, maxLen)
}
