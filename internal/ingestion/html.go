package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText reduces an HTML document to plain text suitable for CleanText.
// Script, style, and navigation chrome are dropped; block elements become
// line breaks so list items stay on separate lines.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer").Remove()

	// Force line breaks at block boundaries before reading text.
	doc.Find("p, li, br, div, h1, h2, h3, h4, h5, h6, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	body := doc.Find("body")
	if body.Length() == 0 {
		return CleanText(doc.Text()), nil
	}
	return CleanText(body.Text()), nil
}
