package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/events"
	"github.com/spec-kit/dealer-service/internal/repository"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// TxBeginner starts transactions; satisfied by *pgxpool.Pool.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// saleRepos bundles the repositories the workflow needs, bound to one
// transaction.
type saleRepos struct {
	requests repository.PurchaseRequestRepository
	sales    repository.SaleRepository
	vehicles repository.VehicleRepository
}

func newSaleRepos(db repository.DB) saleRepos {
	return saleRepos{
		requests: repository.NewPurchaseRequestRepository(db),
		sales:    repository.NewSaleRepository(db),
		vehicles: repository.NewVehicleRepository(db),
	}
}

// SaleService approves a pending purchase request into a sale. The whole
// workflow runs in one transaction with the request and vehicle rows
// locked, so two concurrent approvals cannot both sell the same vehicle.
type SaleService struct {
	db         TxBeginner
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
	repos      func(repository.DB) saleRepos
}

// NewSaleService builds the service. now defaults to the UTC wall clock.
func NewSaleService(db TxBeginner, dispatcher events.Dispatcher, logger *zap.Logger, now func() time.Time) *SaleService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		db:         db,
		dispatcher: dispatcher,
		logger:     logger,
		now:        now,
		repos:      newSaleRepos,
	}
}

// ProcessSale validates a pending request against a still-available
// vehicle, then inserts the sale, approves the request and marks the
// vehicle sold. All three writes commit together or not at all.
func (s *SaleService) ProcessSale(ctx context.Context, requestID int64) (*domain.Sale, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := s.repos(tx)

	request, vehicle, err := repos.requests.GetWithVehicleForUpdate(ctx, requestID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("purchase request", map[string]any{"request_id": requestID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	if request.Status != domain.PurchaseRequestStatusPending {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("purchase request is not pending. Current status: %s", request.Status), nil)
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("vehicle is not available. Current status: %s", vehicle.Status), nil)
	}

	sale := &domain.Sale{
		UserID:    request.UserID,
		VehicleID: request.VehicleID,
		SoldAt:    s.now(),
		Price:     vehicle.Price,
	}
	if err := repos.sales.Create(ctx, sale); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := repos.requests.UpdateStatus(ctx, request.ID, domain.PurchaseRequestStatusApproved); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if err := repos.vehicles.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusSold); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("sale processed",
		zap.Int64("sale_id", sale.ID),
		zap.Int64("vehicle_id", sale.VehicleID),
		zap.Int64("user_id", sale.UserID),
		zap.Float64("price", sale.Price))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventSaleCompleted, sale.UserID, events.SaleCompletedPayload{
			SaleID:    sale.ID,
			RequestID: request.ID,
			VehicleID: sale.VehicleID,
			Price:     sale.Price,
		}))
	}
	return sale, nil
}
