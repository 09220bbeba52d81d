package stringutils

import (
	"regexp"
	"strings"
	"unicode"
)

// Pre-compiled regex patterns for better performance
var (
	urlPattern          = regexp.MustCompile(`(?i)(https?://|ftp://|www\.)[^\s]+`)
	markdownLinkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	multiSpacePattern   = regexp.MustCompile(`\s+`)
)

// SanitizePreviewContent strips URLs and markdown noise from message content
// so it can be shown as a short conversation preview.
func SanitizePreviewContent(content string) string {
	content = urlPattern.ReplaceAllString(content, "")

	// Keep the link text from markdown links [text](url)
	content = markdownLinkPattern.ReplaceAllString(content, "$1")

	// Keep unicode letters/numbers and basic punctuation
	var result strings.Builder
	for _, r := range content {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) ||
			r == '.' || r == ',' || r == '!' || r == '?' || r == '-' || r == '\'' {
			result.WriteRune(r)
		}
	}
	content = result.String()

	content = multiSpacePattern.ReplaceAllString(content, " ")
	content = strings.TrimSpace(content)

	return content
}

// TruncatePreview truncates a preview to a maximum length, breaking at word boundaries
func TruncatePreview(preview string, maxLen int) string {
	if len(preview) <= maxLen {
		return preview
	}

	// Reserve space for ellipsis so the final string never exceeds maxLen
	ellipsis := "..."
	contentLimit := maxLen - len(ellipsis)
	if contentLimit < 0 {
		contentLimit = 0
	}

	truncated := preview[:contentLimit]
	minLen := contentLimit / 2

	// Prefer to cut on a word boundary when possible
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > minLen {
		truncated = strings.TrimRight(truncated[:lastSpace], " ")
	}

	return truncated + ellipsis
}

// GeneratePreview creates a clean, truncated preview from message content
func GeneratePreview(content string, maxLen int) string {
	sanitized := SanitizePreviewContent(content)
	if sanitized == "" {
		return ""
	}
	return TruncatePreview(sanitized, maxLen)
}
