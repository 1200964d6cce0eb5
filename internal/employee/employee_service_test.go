package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"go-compliance/internal/company"
	companyMock "go-compliance/internal/company/mock"
	"go-compliance/internal/employee"
	employeeerrors "go-compliance/internal/employee/errors"
	employeeMock "go-compliance/internal/employee/mock"
	"go-compliance/internal/messaging/kafka"
	kafkaMock "go-compliance/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     employee.Service
	repo        *employeeMock.MockRepository
	companyRepo *companyMock.MockRepository
	outbox      *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T, withOutbox bool) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := employeeMock.NewMockRepository(ctrl)
	companyRepo := companyMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	var svc employee.Service
	if withOutbox {
		svc = employee.NewServiceWithOutbox(db, repo, companyRepo, outboxRepo)
	} else {
		svc = employee.NewService(db, repo, companyRepo)
	}

	return &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		companyRepo: companyRepo,
		outbox:      outboxRepo,
	}
}

func row(emplID string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeID:   emplID,
		Name:         "Employee " + emplID,
		Department:   "Operations",
		CompanyRegNo: "REG-001",
	}
}

func TestEmployeeService_BulkCreate(t *testing.T) {
	ctx := context.Background()
	acme := &company.Company{RegNo: "REG-001", CompanyName: "Acme Corp"}

	t.Run("mixed batch keeps going and accounts every row", func(t *testing.T) {
		deps := setupServiceTest(t, false)
		defer deps.db.Close()

		req := employee.BulkCreateRequest{Employees: []employee.CreateEmployeeRequest{
			row("E-001"),
			{EmployeeID: "E-002", Name: "Employee E-002", Department: "Operations", CompanyRegNo: "REG-404"},
			row("E-003"),
			row("E-004"),
			{EmployeeID: "E-005", Name: "Employee E-005", Department: "Operations", CompanyRegNo: "REG-405"},
			row("E-006"),
			row("E-007"),
			row("E-008"),
		}}

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil).Times(6)
		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-404").Return(nil, gorm.ErrRecordNotFound)
		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-405").Return(nil, gorm.ErrRecordNotFound)

		for _, id := range []string{"E-001", "E-003", "E-004", "E-006", "E-008"} {
			deps.repo.EXPECT().Exists(ctx, id, "REG-001").Return(false, nil)
		}
		deps.repo.EXPECT().Exists(ctx, "E-007", "REG-001").Return(true, nil)

		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(5)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(5)
		for i := 0; i < 5; i++ {
			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()
		}

		summary := deps.service.BulkCreate(ctx, req)

		assert.Equal(t, 5, summary.Inserted)
		assert.Equal(t, 3, summary.Skipped)
		assert.Equal(t, []string{
			"Row 2: Company REG-404 not found",
			"Row 5: Company REG-405 not found",
			"Row 7: Employee already exists",
		}, summary.Errors)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("storage error on one row does not abort the batch", func(t *testing.T) {
		deps := setupServiceTest(t, false)
		defer deps.db.Close()

		req := employee.BulkCreateRequest{Employees: []employee.CreateEmployeeRequest{
			row("E-001"),
			row("E-002"),
		}}

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil).Times(2)
		deps.repo.EXPECT().Exists(ctx, "E-001", "REG-001").Return(false, nil)
		deps.repo.EXPECT().Exists(ctx, "E-002", "REG-001").Return(false, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo).Times(2)

		gomock.InOrder(
			deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("insert failed")),
			deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil),
		)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		summary := deps.service.BulkCreate(ctx, req)

		assert.Equal(t, 1, summary.Inserted)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, []string{"Row 1: insert failed"}, summary.Errors)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("lost insert race counts as duplicate", func(t *testing.T) {
		deps := setupServiceTest(t, false)
		defer deps.db.Close()

		req := employee.BulkCreateRequest{Employees: []employee.CreateEmployeeRequest{row("E-001")}}

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil)
		deps.repo.EXPECT().Exists(ctx, "E-001", "REG-001").Return(false, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "uq_employee_company",
		})
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		summary := deps.service.BulkCreate(ctx, req)

		assert.Equal(t, 0, summary.Inserted)
		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, []string{"Row 1: Employee already exists"}, summary.Errors)
	})

	t.Run("empty errors slice serializes, never nil", func(t *testing.T) {
		deps := setupServiceTest(t, false)
		defer deps.db.Close()

		req := employee.BulkCreateRequest{Employees: []employee.CreateEmployeeRequest{row("E-001")}}

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil)
		deps.repo.EXPECT().Exists(ctx, "E-001", "REG-001").Return(false, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		summary := deps.service.BulkCreate(ctx, req)

		assert.Equal(t, 1, summary.Inserted)
		assert.NotNil(t, summary.Errors)
		assert.Empty(t, summary.Errors)
	})
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	acme := &company.Company{RegNo: "REG-001", CompanyName: "Acme Corp"}

	t.Run("success writes employee and outbox event in one transaction", func(t *testing.T) {
		deps := setupServiceTest(t, true)
		defer deps.db.Close()

		req := row("E-100")

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil)
		deps.repo.EXPECT().Exists(ctx, "E-100", "REG-001").Return(false, nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, empl *employee.Employee) error {
				assert.Equal(t, "E-100", empl.EmployeeID)
				assert.Equal(t, "REG-001", empl.CompanyRegNo)
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, event kafka.OutboxEvent) error {
				assert.Equal(t, "employee_created", event.EventType)
				assert.Equal(t, "E-100", event.AggregateID)
				return nil
			})
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "Employee created successfully", resp.Message)
		assert.Equal(t, "E-100", resp.EmployeeID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown company", func(t *testing.T) {
		deps := setupServiceTest(t, true)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, row("E-100"))
		assert.ErrorIs(t, err, employeeerrors.ErrCompanyNotFound)
	})

	t.Run("duplicate employee", func(t *testing.T) {
		deps := setupServiceTest(t, true)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil)
		deps.repo.EXPECT().Exists(ctx, "E-100", "REG-001").Return(true, nil)

		_, err := deps.service.Create(ctx, row("E-100"))
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_ListByCompany(t *testing.T) {
	ctx := context.Background()
	acme := &company.Company{RegNo: "REG-001", CompanyName: "Acme Corp"}

	t.Run("returns company roster", func(t *testing.T) {
		deps := setupServiceTest(t, false)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil)
		deps.repo.EXPECT().FindAllByCompany(ctx, "REG-001").Return([]employee.Employee{
			{EmployeeID: "E-001", Name: "A", Department: "Ops", CompanyRegNo: "REG-001"},
			{EmployeeID: "E-002", Name: "B", Department: "Ops", CompanyRegNo: "REG-001"},
		}, nil)

		resp, err := deps.service.ListByCompany(ctx, "REG-001")
		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "E-001", resp[0].EmployeeID)
	})

	t.Run("unknown company", func(t *testing.T) {
		deps := setupServiceTest(t, false)
		defer deps.db.Close()

		deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-404").Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ListByCompany(ctx, "REG-404")
		assert.ErrorIs(t, err, employeeerrors.ErrCompanyNotFound)
	})
}

func TestEmployeeService_BulkCreate_ErrorOrdering(t *testing.T) {
	// Error entries must follow input order even when failure kinds interleave.
	ctx := context.Background()
	deps := setupServiceTest(t, false)
	defer deps.db.Close()

	acme := &company.Company{RegNo: "REG-001"}

	req := employee.BulkCreateRequest{Employees: []employee.CreateEmployeeRequest{
		{EmployeeID: "E-001", Name: "A", Department: "Ops", CompanyRegNo: "REG-404"},
		row("E-002"),
		{EmployeeID: "E-003", Name: "C", Department: "Ops", CompanyRegNo: "REG-405"},
	}}

	deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-404").Return(nil, gorm.ErrRecordNotFound)
	deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-001").Return(acme, nil)
	deps.companyRepo.EXPECT().FindCompanyByRegNo(ctx, "REG-405").Return(nil, gorm.ErrRecordNotFound)
	deps.repo.EXPECT().Exists(ctx, "E-002", "REG-001").Return(true, nil)

	summary := deps.service.BulkCreate(ctx, req)

	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, []string{
		fmt.Sprintf("Row 1: Company %s not found", "REG-404"),
		"Row 2: Employee already exists",
		fmt.Sprintf("Row 3: Company %s not found", "REG-405"),
	}, summary.Errors)
}
