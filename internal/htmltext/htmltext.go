// Package htmltext flattens HTML fragments to readable plain text.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText returns the text content of s with whitespace collapsed. Strings
// without markup are returned trimmed but otherwise untouched.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style").Remove()
	doc.Find("br, p, div, li").Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml(" ")
	})
	return strings.Join(strings.Fields(doc.Text()), " ")
}
