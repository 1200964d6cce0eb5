package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent is one durable row per lifecycle event consumed from Kafka.
// EventID is the producer-side id, unique so redeliveries collapse.
type AuditEvent struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID       string    `gorm:"type:varchar(64);uniqueIndex:uq_audit_event_id;not null"`
	EventType     string    `gorm:"type:varchar(100);not null"`
	AggregateType string    `gorm:"type:varchar(100);not null"`
	AggregateID   string    `gorm:"type:varchar(100);not null;index"`
	Payload       []byte    `gorm:"type:jsonb"`
	OccurredAt    time.Time
	CreatedAt     time.Time
}
