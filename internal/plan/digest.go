package plan

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/scout/internal/research"
)

// MaxDigestItems caps how many articles FormatNews lists.
const MaxDigestItems = 5

// NoNews is the Recent News body for an empty batch.
const NoNews = "No recent news found."

// FormatNews renders the first MaxDigestItems articles as a bulleted list in
// the order given.
func FormatNews(news []research.ArticleRecord) string {
	if len(news) == 0 {
		return NoNews
	}

	var sb strings.Builder
	sb.WriteString("Top News:\n")
	for i, a := range news {
		if i == MaxDigestItems {
			break
		}
		title := a.Title
		if title == "" {
			title = "No title"
		}
		url := a.URL
		if url == "" {
			url = "#"
		}
		fmt.Fprintf(&sb, "- %s (Source: %s)\n", title, url)
	}
	return sb.String()
}
