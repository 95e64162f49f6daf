package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Entry describes one recorded mutation.
type Entry struct {
	ActorID    uuid.UUID
	Action     string // e.g. "article.create", "comment.redact"
	EntityType string
	EntityID   uuid.UUID
	Detail     string
	OccurredAt time.Time
}

// Recorder receives audit entries from the services.
// Durable persistence is a collaborator concern; the default
// implementation writes to the structured log stream.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

type logRecorder struct {
	logger zerolog.Logger
}

// NewLogRecorder returns a Recorder backed by zerolog.
func NewLogRecorder() Recorder {
	return &logRecorder{logger: log.With().Str("component", "audit").Logger()}
}

func (r *logRecorder) Record(_ context.Context, e Entry) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	r.logger.Info().
		Str("actor_id", e.ActorID.String()).
		Str("action", e.Action).
		Str("entity_type", e.EntityType).
		Str("entity_id", e.EntityID.String()).
		Str("detail", e.Detail).
		Time("occurred_at", e.OccurredAt).
		Msg("audit")
}

// Nop returns a Recorder that drops entries. Used in tests.
func Nop() Recorder {
	return nopRecorder{}
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Entry) {}
