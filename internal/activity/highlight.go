package activity

import (
	"html"
	"regexp"
	"sort"
	"strings"
)

// HighlightTerms HTML-escapes text and wraps case-insensitive matches of the
// whitespace-separated terms of query in <mark> tags. An empty query only
// escapes.
func HighlightTerms(text, query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 || text == "" {
		return html.EscapeString(text)
	}
	// longest first so "deposition" wins over "depo"
	sort.Slice(terms, func(i, j int) bool { return len(terms[i]) > len(terms[j]) })
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	re := regexp.MustCompile(`(?i)` + strings.Join(quoted, "|"))

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		b.WriteString("<mark>")
		b.WriteString(html.EscapeString(text[loc[0]:loc[1]]))
		b.WriteString("</mark>")
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}
