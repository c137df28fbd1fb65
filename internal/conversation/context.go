package conversation

import (
	"fmt"
	"strings"

	"github.com/MikeSquared-Agency/scout/internal/research"
)

// NoContextReply is the answer to any follow-up before the first research.
const NoContextReply = "Please research a company first!"

const nextSteps = "Let me know what to check next — competitors, revenue, market share, etc."

// Context is the per-session snapshot of the last research cycle.
// The zero value is the NoContext state.
type Context struct {
	LastEntity   string                   `json:"last_entity"`
	LastProfile  research.EntityProfile   `json:"last_profile"`
	LastNews     []research.ArticleRecord `json:"last_news"`
	LastConflict *string                  `json:"last_conflict"`
}

// HasContext reports whether a research cycle has been recorded.
func (c Context) HasContext() bool {
	return c.LastEntity != ""
}

// Record returns the context after a research cycle. The previous snapshot is
// replaced wholesale; only the most recent entity is remembered.
func (c Context) Record(r research.Result) Context {
	return Context{
		LastEntity:   r.Entity,
		LastProfile:  r.Profile,
		LastNews:     r.News,
		LastConflict: r.Conflict,
	}
}

// Reply answers a follow-up message from the stored context. The message is
// echoed, never interpreted.
func Reply(c Context, message string) string {
	if !c.HasContext() {
		return NoContextReply
	}

	summary := c.LastProfile.Summary
	if summary == "" {
		summary = "No data"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You asked about: %s\n\n", message)
	fmt.Fprintf(&sb, "Context from previous research on *%s*:\n", c.LastEntity)
	fmt.Fprintf(&sb, "- Summary: %s\n", summary)
	if c.LastConflict != nil && *c.LastConflict != "" {
		fmt.Fprintf(&sb, "- ⚠ Conflict found in news: %s\n", *c.LastConflict)
	}
	sb.WriteString("\n" + nextSteps)
	return sb.String()
}
