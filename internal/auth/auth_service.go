package auth

import (
	"context"
	"crypto/subtle"

	autherrors "go-compliance/internal/auth/errors"
	"go-compliance/internal/company"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, username, password string) (CompanyProfile, error)
}

type service struct {
	companyRepo company.Repository
	logger      *zap.Logger
}

func NewService(companyRepo company.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{companyRepo: companyRepo, logger: l}
}

// Login is a stateless one-shot credential check against the approved
// company's admin email. No session or token is issued.
func (s *service) Login(ctx context.Context, username, password string) (CompanyProfile, error) {
	comp, err := s.companyRepo.FindCompanyByAdminEmail(ctx, username)
	if err != nil {
		s.logger.Warn("login failed, unknown admin email")
		return CompanyProfile{}, autherrors.ErrInvalidCredentials
	}

	// Constant-time compare; the credential is stored as given.
	if subtle.ConstantTimeCompare([]byte(comp.Password), []byte(password)) != 1 {
		s.logger.Warn("login failed, credential mismatch",
			zap.String("reg_no", comp.RegNo),
		)
		return CompanyProfile{}, autherrors.ErrInvalidCredentials
	}

	s.logger.Info("login success", zap.String("reg_no", comp.RegNo))

	return CompanyProfile{
		CompanyName:  comp.CompanyName,
		RegNo:        comp.RegNo,
		AdminName:    comp.AdminName,
		AdminEmail:   comp.AdminEmail,
		IndustryType: comp.IndustryType,
	}, nil
}
