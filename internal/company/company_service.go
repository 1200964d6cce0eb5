package company

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	companyerrors "go-compliance/internal/company/errors"
	"go-compliance/internal/events"
	"go-compliance/internal/messaging/kafka"
	"go-compliance/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const CompanyListCacheKey = "companies:list"

const companyListCacheTTL = 30 * time.Minute

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, req RegisterCompanyRequest) error
	ListApplications(ctx context.Context) ([]ApplicationResponse, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	ListCompanies(ctx context.Context) ([]CompanyListItem, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// Apply stores a new pending application. The email must be unknown to both
// the pending and the approved collection; the unique index on each table
// backstops the check under concurrency.
func (s *service) Apply(ctx context.Context, req RegisterCompanyRequest) error {
	s.logger.Debug("company application requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("company_email", req.CompanyEmail),
	)

	applied, err := s.repo.ApplicationExistsByEmail(ctx, req.CompanyEmail)
	if err != nil {
		s.logger.Error("apply check pending failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	approved, err := s.repo.CompanyExistsByEmail(ctx, req.CompanyEmail)
	if err != nil {
		s.logger.Error("apply check approved failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if applied || approved {
		s.logger.Warn("apply rejected, duplicate email",
			zap.String("company_email", req.CompanyEmail),
		)
		return companyerrors.ErrCompanyAlreadyApplied
	}

	app := &CompanyApplication{
		CompanyName:  req.CompanyName,
		IndustryType: req.IndustryType,
		CompanyEmail: req.CompanyEmail,
		RegNo:        req.RegNo,
		AdminName:    req.AdminName,
		AdminEmail:   req.AdminEmail,
		Contact:      req.Contact,
		Password:     req.Password,
		Verified:     false,
	}

	if err := s.repo.CreateApplication(ctx, app); err != nil {
		s.logger.Error("apply persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("company application submitted",
		zap.String("company_email", req.CompanyEmail),
	)
	return nil
}

// ListApplications returns every stored application. Approve and Reject both
// delete the row, so everything here is pending by construction.
func (s *service) ListApplications(ctx context.Context) ([]ApplicationResponse, error) {
	apps, err := s.repo.ListApplications(ctx)
	if err != nil {
		s.logger.Error("list applications failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		resp = append(resp, ApplicationResponse{
			ID:           a.ID.String(),
			CompanyName:  a.CompanyName,
			IndustryType: a.IndustryType,
			CompanyEmail: a.CompanyEmail,
			RegNo:        a.RegNo,
			AdminName:    a.AdminName,
			AdminEmail:   a.AdminEmail,
			Contact:      a.Contact,
			Verified:     a.Verified,
			CreatedAt:    a.CreatedAt,
		})
	}
	return resp, nil
}

// Approve migrates one application into the approved collection. Insert,
// delete and the outbox event share a single transaction: no crash window
// can leave the record in both collections.
func (s *service) Approve(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	uid, err := uuid.Parse(id)
	if err != nil {
		return companyerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	app, err := qtx.FindApplicationByID(ctx, uid)
	if err != nil {
		s.logger.Warn("approve lookup failed",
			zap.String("request_id", rid),
			zap.String("application_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	comp := newCompanyFromApplication(app, time.Now().UTC())
	if err := qtx.CreateCompany(ctx, comp); err != nil {
		s.logger.Error("approve insert company failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := qtx.DeleteApplication(ctx, app.ID); err != nil {
		s.logger.Error("approve delete application failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.CompanyApprovedEvent{
			EventType:    "company_approved",
			RequestID:    rid,
			CompanyID:    comp.ID.String(),
			CompanyRegNo: comp.RegNo,
			CompanyEmail: comp.CompanyEmail,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal company_approved failed", zap.Error(err))
			return err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "company",
			AggregateID:   comp.RegNo,
			EventType:     event.EventType,
			Topic:         events.CompanyApprovedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("approve outbox persist failed", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve commit failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	s.invalidateListCache(ctx)

	s.logger.Info("company approved",
		zap.String("request_id", rid),
		zap.String("application_id", id),
		zap.String("reg_no", comp.RegNo),
	)
	return nil
}

// Reject deletes the application. No record of the rejection is kept.
func (s *service) Reject(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return companyerrors.ErrInvalidRequestID
	}

	app, err := s.repo.FindApplicationByID(ctx, uid)
	if err != nil {
		s.logger.Warn("reject lookup failed",
			zap.String("application_id", id),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}

	if err := s.repo.DeleteApplication(ctx, app.ID); err != nil {
		s.logger.Error("reject delete failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("company application rejected",
		zap.String("application_id", id),
		zap.String("company_email", app.CompanyEmail),
	)
	return nil
}

// ListCompanies serves the approved-company projection from redis when warm;
// singleflight keeps a cold cache from stampeding the database.
func (s *service) ListCompanies(ctx context.Context) ([]CompanyListItem, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CompanyListCacheKey).Result(); err == nil {
			var resp []CompanyListItem
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CompanyListCacheKey, func() (interface{}, error) {
		companies, err := s.repo.ListCompanies(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]CompanyListItem, 0, len(companies))
		for _, c := range companies {
			resp = append(resp, CompanyListItem{
				ID:           c.ID.String(),
				CompanyName:  c.CompanyName,
				RegNo:        c.RegNo,
				IndustryType: c.IndustryType,
				AdminEmail:   c.AdminEmail,
				CreatedAt:    c.CreatedAt,
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, CompanyListCacheKey, jsonData, companyListCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("list companies failed", zap.Error(err))
		return nil, err
	}

	return v.([]CompanyListItem), nil
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CompanyListCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate company list cache",
			zap.Error(err),
			zap.String("key", CompanyListCacheKey),
		)
	}
}
