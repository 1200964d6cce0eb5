package bootstrap

import "context"

// AuditLog is a process-lifecycle entry (startup, shutdown), separate from the
// durable domain audit trail written by the consumer.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
