package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-compliance/internal/audit"
	"go-compliance/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLifecycleEvents reads company/employee lifecycle events and records
// each one in the audit trail. The topic/partition/offset triple is the
// idempotency key, so a redelivered message never produces a second row.
func ConsumeLifecycleEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	auditService audit.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.audit_trail")
	log.Info("audit trail consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("audit trail consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		entry, err := buildAuditEntry(msg)
		if err != nil {
			log.Error("decode lifecycle event failed",
				zap.String("topic", msg.Topic),
				zap.Error(err),
			)
			// Poison message: skip it, there is nothing to retry.
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := auditService.Record(ctx, entry); err != nil {
			log.Error("record lifecycle event failed",
				zap.String("event_id", entry.EventID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("lifecycle event recorded",
			zap.String("event_type", entry.EventType),
			zap.String("aggregate_id", entry.AggregateID),
		)
	}
}

func buildAuditEntry(msg kafkago.Message) (audit.RecordEntry, error) {
	entry := audit.RecordEntry{
		EventID: fmt.Sprintf("%s-%d-%d", msg.Topic, msg.Partition, msg.Offset),
		Payload: msg.Value,
	}

	switch msg.Topic {
	case events.CompanyApprovedTopic:
		var event events.CompanyApprovedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return audit.RecordEntry{}, err
		}
		entry.EventType = event.EventType
		entry.AggregateType = "company"
		entry.AggregateID = event.CompanyRegNo
		entry.OccurredAt = event.OccurredAt
	case events.EmployeeCreatedTopic:
		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return audit.RecordEntry{}, err
		}
		entry.EventType = event.EventType
		entry.AggregateType = "employee"
		entry.AggregateID = event.EmployeeID
		entry.OccurredAt = event.OccurredAt
	default:
		return audit.RecordEntry{}, fmt.Errorf("unknown lifecycle topic: %s", msg.Topic)
	}

	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}

	return entry, nil
}
