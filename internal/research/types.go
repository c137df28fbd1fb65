package research

import "strings"

// Profile placeholders used when the supplier could not fill a field.
const (
	DefaultSummary     = "No summary available"
	DefaultDescription = "Not available"
	DefaultSource      = "Wikipedia / Public Data"
)

// ArticleRecord is a single news item as handed over by the news supplier.
type ArticleRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Text returns the title and description joined by a space, the fragment
// every classifier and the conflict detector look at.
func (a ArticleRecord) Text() string {
	return a.Title + " " + a.Description
}

// EntityProfile describes the researched organization.
type EntityProfile struct {
	Name        string `json:"name"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// WithDefaults returns a copy of p with every absent field replaced by its
// placeholder. The name falls back to the entity that was asked about.
func (p EntityProfile) WithDefaults(entity string) EntityProfile {
	if strings.TrimSpace(p.Name) == "" {
		p.Name = entity
	}
	if p.Summary == "" {
		p.Summary = DefaultSummary
	}
	if p.Description == "" {
		p.Description = DefaultDescription
	}
	if p.Source == "" {
		p.Source = DefaultSource
	}
	return p
}

// Result is the outcome of one research cycle.
type Result struct {
	Entity   string          `json:"entity"`
	Profile  EntityProfile   `json:"profile"`
	News     []ArticleRecord `json:"news"`
	Conflict *string         `json:"conflict"`
}
