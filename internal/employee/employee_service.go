package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-compliance/internal/company"
	employeeerrors "go-compliance/internal/employee/errors"
	"go-compliance/internal/events"
	"go-compliance/internal/messaging/kafka"
	"go-compliance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	// BulkCreate never fails as a unit: every per-row failure degrades to a
	// skip recorded in the summary.
	BulkCreate(ctx context.Context, req BulkCreateRequest) BulkCreateSummary
	Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	ListByCompany(ctx context.Context, companyRegNo string) ([]EmployeeResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	companyRepo company.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(db *sql.DB, repo Repository, companyRepo company.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, companyRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	companyRepo company.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		companyRepo: companyRepo,
		outbox:      outboxRepo,
		logger:      l,
	}
}

// Sentinel row outcomes; BulkCreate translates them into the reported
// error strings, Create into the HTTP error values.
var (
	errRowCompanyNotFound = errors.New("company not found")
	errRowEmployeeExists  = errors.New("employee already exists")
)

// BulkCreate processes rows strictly in input order, 1-indexed for
// reporting. Rows are independent units: there is no batch transaction, and
// no failure aborts the remaining rows.
func (s *service) BulkCreate(ctx context.Context, req BulkCreateRequest) BulkCreateSummary {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("bulk create employees requested",
		zap.String("request_id", rid),
		zap.Int("rows", len(req.Employees)),
	)

	summary := BulkCreateSummary{Errors: make([]string, 0)}

	for i, row := range req.Employees {
		index := i + 1

		err := s.insertRow(ctx, row)
		if err == nil {
			summary.Inserted++
			continue
		}

		summary.Skipped++
		switch {
		case errors.Is(err, errRowCompanyNotFound):
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: Company %s not found", index, row.CompanyRegNo))
		case errors.Is(err, errRowEmployeeExists):
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: Employee already exists", index))
		default:
			s.logger.Error("bulk create row failed",
				zap.String("request_id", rid),
				zap.Int("row", index),
				zap.Error(err),
			)
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("Row %d: %v", index, err))
		}
	}

	s.logger.Info("bulk create employees finished",
		zap.String("request_id", rid),
		zap.Int("inserted", summary.Inserted),
		zap.Int("skipped", summary.Skipped),
	)
	return summary
}

// Create is the single-row variant with HTTP error semantics.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error) {
	err := s.insertRow(ctx, req)
	switch {
	case err == nil:
		return CreateEmployeeResponse{
			Message:      "Employee created successfully",
			EmployeeID:   req.EmployeeID,
			CompanyRegNo: req.CompanyRegNo,
		}, nil
	case errors.Is(err, errRowCompanyNotFound):
		return CreateEmployeeResponse{}, employeeerrors.ErrCompanyNotFound
	case errors.Is(err, errRowEmployeeExists):
		return CreateEmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
	default:
		s.logger.Error("create employee failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}
}

// ListByCompany returns every employee of one approved company.
func (s *service) ListByCompany(ctx context.Context, companyRegNo string) ([]EmployeeResponse, error) {
	if _, err := s.companyRepo.FindCompanyByRegNo(ctx, companyRegNo); err != nil {
		return nil, mapRepositoryError(err)
	}

	employees, err := s.repo.FindAllByCompany(ctx, companyRegNo)
	if err != nil {
		s.logger.Error("list employees failed",
			zap.String("company_reg_no", companyRegNo),
			zap.Error(err),
		)
		return nil, mapRepositoryError(err)
	}

	resp := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, EmployeeResponse{
			EmployeeID:   e.EmployeeID,
			Name:         e.Name,
			Department:   e.Department,
			CompanyRegNo: e.CompanyRegNo,
			CreatedAt:    e.CreatedAt,
		})
	}
	return resp, nil
}

// insertRow validates one row against its parent company and inserts it.
// The insert and its outbox event share one small per-row transaction.
func (s *service) insertRow(ctx context.Context, row CreateEmployeeRequest) error {
	if _, err := s.companyRepo.FindCompanyByRegNo(ctx, row.CompanyRegNo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errRowCompanyNotFound
		}
		return err
	}

	exists, err := s.repo.Exists(ctx, row.EmployeeID, row.CompanyRegNo)
	if err != nil {
		return err
	}
	if exists {
		return errRowEmployeeExists
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:           uuid.New(),
		EmployeeID:   row.EmployeeID,
		Name:         row.Name,
		Department:   row.Department,
		CompanyRegNo: row.CompanyRegNo,
		CreatedAt:    time.Now().UTC(),
	}

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, empl); err != nil {
		if isUniqueEmployeeViolation(err) {
			// Lost an insert race to a concurrent batch.
			return errRowEmployeeExists
		}
		return err
	}

	if s.outbox != nil {
		event := events.EmployeeCreatedEvent{
			EventType:    "employee_created",
			RequestID:    contextutil.GetRequestID(ctx),
			EmployeeID:   row.EmployeeID,
			CompanyRegNo: row.CompanyRegNo,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     event.RequestID,
			AggregateType: "employee",
			AggregateID:   row.EmployeeID,
			EventType:     event.EventType,
			Topic:         events.EmployeeCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return err
		}
	}

	return tx.Commit()
}
