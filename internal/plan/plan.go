package plan

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical section names, in the order Build emits them.
const (
	SectionOverview      = "Overview"
	SectionKeyContacts   = "Key Contacts"
	SectionRecentNews    = "Recent News"
	SectionOpportunities = "Opportunities"
	SectionRisks         = "Risks"
	SectionStrategy      = "Strategy"
)

// CanonicalSections lists the sections every freshly built plan carries.
var CanonicalSections = []string{
	SectionOverview,
	SectionKeyContacts,
	SectionRecentNews,
	SectionOpportunities,
	SectionRisks,
	SectionStrategy,
}

// AccountPlan is an ordered mapping from section name to section body.
// Section names are Title-Case normalized on every read and write.
type AccountPlan struct {
	keys   []string
	bodies map[string]string
}

// New returns an empty plan.
func New() *AccountPlan {
	return &AccountPlan{bodies: make(map[string]string)}
}

// NormalizeSection trims name and converts it to Title Case, so "risks",
// "RISKS" and " Risks " all address the same section.
func NormalizeSection(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// Get returns the body of a section.
func (p *AccountPlan) Get(section string) (string, bool) {
	body, ok := p.bodies[NormalizeSection(section)]
	return body, ok
}

// Set stores body under the normalized section name, replacing any previous
// body. New sections are appended to the end of the ordering.
func (p *AccountPlan) Set(section, body string) {
	if p.bodies == nil {
		p.bodies = make(map[string]string)
	}
	key := NormalizeSection(section)
	if _, ok := p.bodies[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.bodies[key] = body
}

// Sections returns the section names in order.
func (p *AccountPlan) Sections() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of sections.
func (p *AccountPlan) Len() int {
	return len(p.keys)
}

// Clone returns an independent copy of p.
func (p *AccountPlan) Clone() *AccountPlan {
	c := New()
	for _, k := range p.keys {
		c.Set(k, p.bodies[k])
	}
	return c
}

// MarshalJSON encodes the plan as a JSON object in section order.
func (p *AccountPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(p.bodies[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, keeping the order of its keys.
// Non-string values are treated as absent and skipped. Keys that normalize
// to the same section are merged with UpdateSection in source order.
func (p *AccountPlan) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}
	if tok == nil {
		*p = *New()
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode plan: expected object, got %v", tok)
	}

	out := New()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode plan key: %w", err)
		}
		key, _ := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode plan section %q: %w", key, err)
		}
		var body string
		if err := json.Unmarshal(raw, &body); err != nil {
			continue
		}
		UpdateSection(out, key, body)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode plan: %w", err)
	}
	*p = *out
	return nil
}
