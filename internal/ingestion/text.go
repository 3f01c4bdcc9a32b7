// Package ingestion prepares raw resume and job text for the matching core:
// HTML reduction, text cleaning, and heuristic experience detection.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern      = regexp.MustCompile(`\S+@\S+\.\S+`)
	whitespacePattern = regexp.MustCompile(`[ \t]+`)
	blankLinesPattern = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes resume text before extraction. Order matters: strip
// URL/email noise first, then normalize whitespace, then collapse blank-line
// runs, so the cleaned text keeps its line structure for the model pass.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	content = urlPattern.ReplaceAllString(content, " ")
	content = emailPattern.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = whitespacePattern.ReplaceAllString(line, " ")
		cleaned = append(cleaned, strings.TrimSpace(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLinesPattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
