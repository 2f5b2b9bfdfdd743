package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/loomworks/tasklight/internal/store"
)

// Task lifecycle subjects.
const (
	SubjectTaskCreated   = "tasklight.task.created"
	SubjectTaskUpdated   = "tasklight.task.updated"
	SubjectTaskCompleted = "tasklight.task.completed"
	SubjectTaskDeleted   = "tasklight.task.deleted"
)

// TaskEvent is the payload published on every task lifecycle subject. It
// carries the projection, not the free-text description.
type TaskEvent struct {
	TaskID    string `json:"task_id"`
	OwnerID   string `json:"owner_id"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	DueDate   string `json:"due_date,omitempty"`
	Completed bool   `json:"completed"`
	At        string `json:"at"`
}

// Publisher emits task lifecycle events over NATS. A nil Publisher is valid
// and publishes nothing; the service runs fine without an event bus.
type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

func Connect(url, token string, logger *slog.Logger) (*Publisher, error) {
	opts := []nats.Option{
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

	return &Publisher{conn: nc, logger: logger}, nil
}

// PublishTask emits one lifecycle event for a task. Failures are logged,
// never propagated: events are best-effort and must not fail the request.
func (p *Publisher) PublishTask(subject string, t *store.Task) {
	if p == nil {
		return
	}

	evt := TaskEvent{
		TaskID:    t.ID.String(),
		OwnerID:   t.OwnerID.String(),
		Title:     t.Title,
		Priority:  t.Priority,
		Completed: t.Completed,
		At:        time.Now().UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		evt.DueDate = t.DueDate.UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		p.logger.Warn("marshal task event", "subject", subject, "error", err)
		return
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Warn("publish task event", "subject", subject, "error", err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.conn.Close()
}
