package plan

// UpdatedMarker separates earlier content from an appended update.
const UpdatedMarker = "\n\n🔄 UPDATED: "

// UpdateSection merges content into section. An existing section keeps its
// body and gets content appended after UpdatedMarker; a missing section is
// created with content as-is. Updates never discard earlier content.
// The plan is modified in place and returned for chaining.
func UpdateSection(p *AccountPlan, section, content string) *AccountPlan {
	if p == nil {
		p = New()
	}
	if body, ok := p.Get(section); ok {
		p.Set(section, body+UpdatedMarker+content)
		return p
	}
	p.Set(section, content)
	return p
}
