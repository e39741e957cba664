package search

import (
	"strings"

	"golang.org/x/net/html"
)

// plainText strips HTML markup from a provider description and collapses
// whitespace. Some boards return descriptions with embedded markup; scoring
// and truncation both want plain text. On parse failure the input is
// returned as-is.
func plainText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}
	text := extractText(doc)
	return strings.Join(strings.Fields(text), " ")
}

func extractText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(extractText(c))
	}
	return sb.String()
}
