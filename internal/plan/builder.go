package plan

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/scout/internal/research"
	"github.com/MikeSquared-Agency/scout/internal/signals"
)

// Messages used when no article triggered a category.
const (
	FallbackOpportunity = "General opportunity for industry collaboration."
	FallbackRisk        = "No major risks detected from news."
	FallbackStrategy    = "Build relationship via business discussions first."
)

const keyContactsTemplate = "Key contacts not auto-detected.\n" +
	"You may include roles like:\n" +
	"- CEO / Director\n" +
	"- CFO / Finance Head\n" +
	"- IT / Procurement Head"

// Build produces the initial account plan for entity from its profile and a
// news batch. The result always carries the six canonical sections, in order,
// and is owned by the caller.
func Build(entity string, profile research.EntityProfile, news []research.ArticleRecord) *AccountPlan {
	profile = profile.WithDefaults(entity)

	var all []signals.Signal
	for _, a := range news {
		all = append(all, signals.Classify(a.Text())...)
	}
	grouped := signals.Group(all)

	p := New()
	p.Set(SectionOverview, fmt.Sprintf("%s — %s\n\nDescription: %s\nSource: %s",
		profile.Name, profile.Summary, profile.Description, profile.Source))
	p.Set(SectionKeyContacts, keyContactsTemplate)
	p.Set(SectionRecentNews, FormatNews(news))
	p.Set(SectionOpportunities, joinOr(grouped[signals.Opportunity], FallbackOpportunity))
	p.Set(SectionRisks, joinOr(grouped[signals.Risk], FallbackRisk))
	p.Set(SectionStrategy, joinOr(grouped[signals.Strategy], FallbackStrategy))
	return p
}

func joinOr(msgs []string, fallback string) string {
	if len(msgs) == 0 {
		return fallback
	}
	return strings.Join(msgs, "\n")
}
