package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/scout/internal/conflict"
	"github.com/MikeSquared-Agency/scout/internal/conversation"
	"github.com/MikeSquared-Agency/scout/internal/hermes"
	"github.com/MikeSquared-Agency/scout/internal/plan"
	"github.com/MikeSquared-Agency/scout/internal/research"
)

// ErrEmptyEntity is returned when research is requested without a name.
var ErrEmptyEntity = errors.New("entity name is required")

// ProfileSupplier looks up a profile for an entity.
type ProfileSupplier interface {
	Lookup(ctx context.Context, entity string) (research.EntityProfile, error)
}

// NewsSupplier returns recent articles about an entity, newest first.
type NewsSupplier interface {
	Everything(ctx context.Context, query string) ([]research.ArticleRecord, error)
}

// Publisher emits events. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

// Processor runs research cycles and keeps each session's conversation
// context up to date.
type Processor struct {
	profiles  ProfileSupplier
	news      NewsSupplier
	sessions  conversation.Store
	publisher Publisher
	logger    *slog.Logger
}

// New wires a processor. publisher may be nil.
func New(profiles ProfileSupplier, news NewsSupplier, sessions conversation.Store, publisher Publisher, logger *slog.Logger) *Processor {
	return &Processor{
		profiles:  profiles,
		news:      news,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

// Run performs one research cycle for entity. Supplier failures are logged
// and degrade to an empty profile or an empty news batch.
func (p *Processor) Run(ctx context.Context, entity string) (research.Result, error) {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return research.Result{}, ErrEmptyEntity
	}

	var (
		profile research.EntityProfile
		news    []research.ArticleRecord
	)
	// Supplier failures degrade to empty results, so neither goroutine
	// returns an error and Wait only joins them.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pr, err := p.profiles.Lookup(gctx, entity)
		if err != nil {
			p.logger.Warn("profile lookup failed", "entity", entity, "error", err)
			return nil
		}
		profile = pr
		return nil
	})
	g.Go(func() error {
		items, err := p.news.Everything(gctx, entity)
		if err != nil {
			p.logger.Warn("news lookup failed", "entity", entity, "error", err)
			return nil
		}
		news = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return research.Result{}, err
	}

	if news == nil {
		news = []research.ArticleRecord{}
	}
	result := research.Result{
		Entity:   entity,
		Profile:  profile,
		News:     news,
		Conflict: conflict.Flag(news),
	}

	p.logger.Info("research complete",
		"entity", entity,
		"profile", profile.Name,
		"articles", len(news),
		"conflict", result.Conflict != nil,
	)

	p.publish(hermes.SubjectResearchCompleted, hermes.ResearchCompleted{
		Entity:       entity,
		ProfileName:  profile.Name,
		ArticleCount: len(news),
		Conflict:     result.Conflict != nil,
		Timestamp:    time.Now().UTC(),
	})
	return result, nil
}

// Research runs a cycle and records it as the session's context, replacing
// whatever entity was researched before.
func (p *Processor) Research(ctx context.Context, sessionID, entity string) (research.Result, error) {
	result, err := p.Run(ctx, entity)
	if err != nil {
		return research.Result{}, err
	}

	if err := p.sessions.Set(ctx, sessionID, conversation.Context{}.Record(result)); err != nil {
		return research.Result{}, fmt.Errorf("save session: %w", err)
	}
	return result, nil
}

// Continue answers a follow-up message against the session's last research.
func (p *Processor) Continue(ctx context.Context, sessionID, message string) (string, error) {
	c, err := p.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	return conversation.Reply(c, message), nil
}

// GeneratePlan builds an account plan and announces it.
func (p *Processor) GeneratePlan(entity string, profile research.EntityProfile, news []research.ArticleRecord) *plan.AccountPlan {
	ap := plan.Build(entity, profile, news)

	p.logger.Info("account plan generated", "entity", entity, "articles", len(news))
	p.publish(hermes.SubjectPlanGenerated, hermes.PlanGenerated{
		Entity:    entity,
		Sections:  ap.Sections(),
		Timestamp: time.Now().UTC(),
	})
	return ap
}

// UpdateSection merges content into one section of ap and announces it.
func (p *Processor) UpdateSection(ap *plan.AccountPlan, section, content string) *plan.AccountPlan {
	if ap == nil {
		ap = plan.New()
	}
	_, existed := ap.Get(section)
	ap = plan.UpdateSection(ap, section, content)

	name := plan.NormalizeSection(section)
	p.logger.Info("plan section updated", "section", name, "created", !existed)
	p.publish(hermes.SubjectPlanSectionUpdated, hermes.PlanSectionUpdated{
		Section:   name,
		Created:   !existed,
		Timestamp: time.Now().UTC(),
	})
	return ap
}

func (p *Processor) publish(subject string, data any) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
