package audit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type RecordEntry struct {
	EventID       string
	EventType     string
	AggregateType string
	AggregateID   string
	Payload       []byte
	OccurredAt    time.Time
}

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, entry RecordEntry) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

// Record persists one lifecycle event. A duplicate event id means the broker
// redelivered a message we already stored, so it is not an error.
func (s *service) Record(ctx context.Context, entry RecordEntry) error {
	event := &AuditEvent{
		EventID:       entry.EventID,
		EventType:     entry.EventType,
		AggregateType: entry.AggregateType,
		AggregateID:   entry.AggregateID,
		Payload:       entry.Payload,
		OccurredAt:    entry.OccurredAt,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		if isDuplicateEventID(err) {
			s.logger.Warn("audit event already recorded, skipping",
				zap.String("event_id", entry.EventID),
				zap.String("event_type", entry.EventType),
			)
			return nil
		}
		s.logger.Error("record audit event failed",
			zap.String("event_id", entry.EventID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func isDuplicateEventID(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_audit_event_id"
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_audit_event_id")
}
