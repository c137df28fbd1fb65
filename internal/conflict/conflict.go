// Package conflict flags news batches that quote more than one monetary figure.
package conflict

import (
	"regexp"
	"strings"

	"github.com/MikeSquared-Agency/scout/internal/research"
)

// Warning is returned when a batch contains two or more distinct amounts.
const Warning = "⚠ I found some complex or conflicting data in news. " +
	"Should I investigate further? (yes / no)"

var amountRe = regexp.MustCompile(`\$\s?[\d,]+(?:\.\d+)?`)

// TextPool joins the title and description of every article into the single
// text Detect scans.
func TextPool(news []research.ArticleRecord) string {
	parts := make([]string, len(news))
	for i, a := range news {
		parts[i] = a.Text()
	}
	return strings.Join(parts, " ")
}

// Amounts returns the distinct currency amounts in text in first-seen order.
// Distinctness is textual: "$1,000" and "$1000" are different amounts.
func Amounts(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range amountRe.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// Detect returns Warning and true when text mentions at least two distinct
// amounts, otherwise "" and false.
func Detect(text string) (string, bool) {
	if len(Amounts(text)) >= 2 {
		return Warning, true
	}
	return "", false
}

// Flag runs Detect over a news batch and returns the result as an optional
// value: nil when there is nothing to report.
func Flag(news []research.ArticleRecord) *string {
	msg, ok := Detect(TextPool(news))
	if !ok {
		return nil
	}
	return &msg
}
