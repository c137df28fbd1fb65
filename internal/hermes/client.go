package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects published by scout.
const (
	SubjectResearchCompleted  = "scout.research.completed"
	SubjectPlanGenerated      = "scout.plan.generated"
	SubjectPlanSectionUpdated = "scout.plan.section_updated"
	SubjectRegistered         = "scout.agent.registered"
)

// ResearchCompleted is emitted after every research cycle.
type ResearchCompleted struct {
	Entity       string    `json:"entity"`
	ProfileName  string    `json:"profile_name"`
	ArticleCount int       `json:"article_count"`
	Conflict     bool      `json:"conflict"`
	Timestamp    time.Time `json:"timestamp"`
}

// PlanGenerated is emitted when an account plan is built.
type PlanGenerated struct {
	Entity    string    `json:"entity"`
	Sections  []string  `json:"sections"`
	Timestamp time.Time `json:"timestamp"`
}

// PlanSectionUpdated is emitted when a section is merged into a plan.
type PlanSectionUpdated struct {
	Section   string    `json:"section"`
	Created   bool      `json:"created"`
	Timestamp time.Time `json:"timestamp"`
}

type Client struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.Name("scout"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

// Close flushes pending events and closes the connection.
func (c *Client) Close() {
	if err := c.conn.Flush(); err != nil {
		c.logger.Warn("nats flush failed", "error", err)
	}
	c.conn.Close()
}
