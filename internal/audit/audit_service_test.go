package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-compliance/internal/audit"
	auditMock "go-compliance/internal/audit/mock"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := auditMock.NewMockRepository(ctrl)
	service := audit.NewService(mockRepo)
	ctx := context.Background()

	entry := audit.RecordEntry{
		EventID:       "compliance.company.lifecycle.v1-0-42",
		EventType:     "company_approved",
		AggregateType: "company",
		AggregateID:   "REG-001",
		Payload:       []byte(`{"event_type":"company_approved"}`),
		OccurredAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, event *audit.AuditEvent) error {
				assert.Equal(t, entry.EventID, event.EventID)
				assert.Equal(t, entry.AggregateID, event.AggregateID)
				return nil
			})

		assert.NoError(t, service.Record(ctx, entry))
	})

	t.Run("redelivered event is swallowed", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_audit_event_id"})

		assert.NoError(t, service.Record(ctx, entry))
	})

	t.Run("other storage errors propagate", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("db down"))

		assert.Error(t, service.Record(ctx, entry))
	})
}
