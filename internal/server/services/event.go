package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/guialocal/internal/common"
	"github.com/dmitrijs2005/guialocal/internal/logging"
	"github.com/dmitrijs2005/guialocal/internal/secevents"
	"github.com/dmitrijs2005/guialocal/internal/server/eventsink"
	"github.com/dmitrijs2005/guialocal/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// EventService stores security events and forwards them to the event sink.
type EventService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   eventsink.Publisher
	log         logging.Logger
	now         func() time.Time
}

func NewEventService(db *sql.DB, m repomanager.RepositoryManager, p eventsink.Publisher, l logging.Logger) *EventService {
	if p == nil {
		p = eventsink.NopPublisher{}
	}
	return &EventService{db: db, repomanager: m, publisher: p, log: l, now: time.Now}
}

// Log persists e. Missing id and timestamp are filled in. A publish failure
// is logged and does not fail the call.
func (s *EventService) Log(ctx context.Context, e secevents.Event) (secevents.Event, error) {
	if e.Type == "" {
		return e, common.ErrorValidation
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	} else if _, err := uuid.Parse(e.ID); err != nil {
		return e, common.ErrorValidation
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = s.now().UTC()
	}
	if e.ActorID != nil {
		if _, err := uuid.Parse(*e.ActorID); err != nil {
			e.ActorID = nil
		}
	}

	if err := s.repomanager.SecurityEvents(s.db).Insert(ctx, e); err != nil {
		s.log.Error(ctx, "store security event", "event_type", string(e.Type), "error", err)
		return e, common.ErrorInternal
	}

	if err := s.publisher.Publish(ctx, e); err != nil {
		s.log.Warn(ctx, "publish security event", "event_id", e.ID, "error", err)
	}

	s.log.Debug(ctx, "security event logged", "event_id", e.ID, "event_type", string(e.Type))
	return e, nil
}

// Notify makes EventService a secevents.Notifier, so server-side emitters
// write straight to the log.
func (s *EventService) Notify(ctx context.Context, e secevents.Event) error {
	_, err := s.Log(ctx, e)
	return err
}
