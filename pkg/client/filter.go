package client

import (
	"mime"
	"strings"
)

// FilterDocuments is the quick filter over an already fetched list. A document matches when
// every whitespace-separated term appears, case-insensitively, in its title, type or content.
// An empty query returns docs unchanged.
func FilterDocuments(docs []Document, query string) []Document {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return docs
	}

	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		haystack := strings.ToLower(d.Title + "\n" + d.Type + "\n" + d.Content)
		matched := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, d)
		}
	}
	return out
}

func parseDisposition(header string) (string, map[string]string, error) {
	return mime.ParseMediaType(header)
}
