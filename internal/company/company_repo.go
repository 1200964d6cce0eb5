package company

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateApplication(ctx context.Context, app *CompanyApplication) error
	ApplicationExistsByEmail(ctx context.Context, email string) (bool, error)
	FindApplicationByID(ctx context.Context, id uuid.UUID) (*CompanyApplication, error)
	ListApplications(ctx context.Context) ([]CompanyApplication, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) error

	CreateCompany(ctx context.Context, comp *Company) error
	CompanyExistsByEmail(ctx context.Context, email string) (bool, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	FindCompanyByRegNo(ctx context.Context, regNo string) (*Company, error)
	FindCompanyByAdminEmail(ctx context.Context, email string) (*Company, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to an open database/sql transaction so the
// approve migration commits or rolls back as one unit.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: txdb}
}

func (r *repository) CreateApplication(ctx context.Context, app *CompanyApplication) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) ApplicationExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&CompanyApplication{}).
		Where("company_email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApplicationByID(ctx context.Context, id uuid.UUID) (*CompanyApplication, error) {
	var app CompanyApplication
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repository) ListApplications(ctx context.Context) ([]CompanyApplication, error) {
	var apps []CompanyApplication
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *repository) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&CompanyApplication{}, "id = ?", id).Error
}

func (r *repository) CreateCompany(ctx context.Context, comp *Company) error {
	return r.db.WithContext(ctx).Create(comp).Error
}

func (r *repository) CompanyExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Company{}).
		Where("company_email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListCompanies(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) FindCompanyByRegNo(ctx context.Context, regNo string) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).Where("reg_no = ?", regNo).First(&comp).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *repository) FindCompanyByAdminEmail(ctx context.Context, email string) (*Company, error) {
	var comp Company
	err := r.db.WithContext(ctx).Where("admin_email = ?", email).First(&comp).Error
	if err != nil {
		return nil, err
	}
	return &comp, nil
}
