package signals

import "strings"

// Tag is the category a signal belongs to.
type Tag string

const (
	Opportunity Tag = "opportunity"
	Risk        Tag = "risk"
	Strategy    Tag = "strategy"
)

// Signal is a single classification hit with its human-readable message.
type Signal struct {
	Tag     Tag    `json:"tag"`
	Message string `json:"message"`
}

// Rule inspects an already lower-cased text fragment.
type Rule interface {
	Match(text string) (Signal, bool)
}

type keywordRule struct {
	keywords []string
	signal   Signal
}

// Keywords returns a Rule that fires when text contains any of the keywords.
// Keywords are compared lower-cased.
func Keywords(tag Tag, message string, keywords ...string) Rule {
	kw := make([]string, len(keywords))
	for i, k := range keywords {
		kw[i] = strings.ToLower(k)
	}
	return keywordRule{keywords: kw, signal: Signal{Tag: tag, Message: message}}
}

func (r keywordRule) Match(text string) (Signal, bool) {
	for _, k := range r.keywords {
		if strings.Contains(text, k) {
			return r.signal, true
		}
	}
	return Signal{}, false
}

// DefaultRules is the fixed keyword table used for account plans.
// Matching is plain substring containment, so "ai" also fires inside "said".
var DefaultRules = []Rule{
	Keywords(Opportunity, "Potential expansion or M&A activity detected.", "acquisition", "merger", "expansion"),
	Keywords(Opportunity, "Possible strategic partnership opportunity.", "partnership"),
	Keywords(Opportunity, "AI/automation development → technology collaboration possible.", "ai", "automation"),
	Keywords(Risk, "Legal challenges mentioned in news.", "lawsuit", "legal"),
	Keywords(Risk, "Financial or workforce instability reported.", "loss", "layoff", "decrease"),
	Keywords(Strategy, "Approach via solution-driven investment proposals.", "investment"),
	Keywords(Strategy, "Focus pitch on innovation & R&D collaboration.", "innovation"),
}

// Classify runs DefaultRules over text.
func Classify(text string) []Signal {
	return ClassifyWith(DefaultRules, text)
}

// ClassifyWith evaluates every rule independently against the lower-cased
// text and returns the hits in rule order. It never returns an error; a
// fragment that triggers nothing yields an empty slice.
func ClassifyWith(rules []Rule, text string) []Signal {
	lower := strings.ToLower(text)
	out := []Signal{}
	for _, r := range rules {
		if s, ok := r.Match(lower); ok {
			out = append(out, s)
		}
	}
	return out
}

// Group splits signals into per-tag message lists, preserving order.
func Group(sigs []Signal) map[Tag][]string {
	g := make(map[Tag][]string, 3)
	for _, s := range sigs {
		g[s.Tag] = append(g[s.Tag], s.Message)
	}
	return g
}
