package plan

import (
	"reflect"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/scout/internal/research"
)

func TestBuild_AlwaysCanonicalSections(t *testing.T) {
	batches := map[string][]research.ArticleRecord{
		"nil":   nil,
		"empty": {},
		"one":   {{Title: "Quarterly update"}},
		"many": {
			{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"},
			{Title: "e"}, {Title: "f"}, {Title: "g"},
		},
	}
	for name, news := range batches {
		t.Run(name, func(t *testing.T) {
			p := Build("Acme", research.EntityProfile{}, news)
			if !reflect.DeepEqual(p.Sections(), CanonicalSections) {
				t.Errorf("sections = %v, want %v", p.Sections(), CanonicalSections)
			}
		})
	}
}

func TestBuild_EmptyNews(t *testing.T) {
	p := Build("Acme", research.EntityProfile{}, nil)

	checks := map[string]string{
		SectionRecentNews:    "No recent news found.",
		SectionOpportunities: "General opportunity for industry collaboration.",
		SectionRisks:         "No major risks detected from news.",
		SectionStrategy:      "Build relationship via business discussions first.",
	}
	for section, want := range checks {
		got, _ := p.Get(section)
		if got != want {
			t.Errorf("%s = %q, want %q", section, got, want)
		}
	}
}

func TestBuild_MergerScenario(t *testing.T) {
	profile := research.EntityProfile{Name: "Acme", Summary: "A widget maker"}
	news := []research.ArticleRecord{
		{Title: "Acme announces merger with Globex", Description: "deal worth $5,000,000"},
	}

	p := Build("Acme", profile, news)

	if got, _ := p.Get(SectionOpportunities); got != "Potential expansion or M&A activity detected." {
		t.Errorf("opportunities = %q", got)
	}
	if got, _ := p.Get(SectionRisks); got != FallbackRisk {
		t.Errorf("risks = %q", got)
	}
	if got, _ := p.Get(SectionStrategy); got != FallbackStrategy {
		t.Errorf("strategy = %q", got)
	}

	overview, _ := p.Get(SectionOverview)
	want := "Acme — A widget maker\n\nDescription: Not available\nSource: Wikipedia / Public Data"
	if overview != want {
		t.Errorf("overview = %q, want %q", overview, want)
	}
}

func TestBuild_OverviewFallsBackToEntityName(t *testing.T) {
	p := Build("Initech", research.EntityProfile{}, nil)
	overview, _ := p.Get(SectionOverview)
	if !strings.HasPrefix(overview, "Initech — No summary available") {
		t.Errorf("unexpected overview: %q", overview)
	}
}

func TestBuild_RepeatedTriggersAreNotDeduplicated(t *testing.T) {
	news := []research.ArticleRecord{
		{Title: "Layoffs announced"},
		{Title: "Second round of layoffs"},
		{Title: "New partnership"},
	}
	p := Build("Acme", research.EntityProfile{}, news)

	risks, _ := p.Get(SectionRisks)
	want := "Financial or workforce instability reported.\nFinancial or workforce instability reported."
	if risks != want {
		t.Errorf("risks = %q, want %q", risks, want)
	}
	opps, _ := p.Get(SectionOpportunities)
	if opps != "Possible strategic partnership opportunity." {
		t.Errorf("opportunities = %q", opps)
	}
}

func TestBuild_ClassifiesWholeBatch(t *testing.T) {
	news := make([]research.ArticleRecord, 0, 7)
	for i := 0; i < 6; i++ {
		news = append(news, research.ArticleRecord{Title: "Routine update"})
	}
	news = append(news, research.ArticleRecord{Title: "Innovation hub opens"})

	p := Build("Acme", research.EntityProfile{}, news)

	strategy, _ := p.Get(SectionStrategy)
	if strategy != "Focus pitch on innovation & R&D collaboration." {
		t.Errorf("strategy = %q", strategy)
	}
	digest, _ := p.Get(SectionRecentNews)
	if strings.Contains(digest, "Innovation hub") {
		t.Errorf("digest should only list the first %d items: %q", MaxDigestItems, digest)
	}
}

func TestBuild_KeyContactsStatic(t *testing.T) {
	a, _ := Build("A", research.EntityProfile{}, nil).Get(SectionKeyContacts)
	b, _ := Build("B", research.EntityProfile{Summary: "x"}, []research.ArticleRecord{{Title: "merger"}}).Get(SectionKeyContacts)
	if a != b {
		t.Errorf("key contacts should not depend on input")
	}
	if !strings.Contains(a, "- CFO / Finance Head") {
		t.Errorf("unexpected key contacts: %q", a)
	}
}
