package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/events"
	"github.com/spec-kit/dealer-service/internal/repository"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// PurchaseService handles customer purchase requests. A request does not
// reserve the vehicle; every request against an Available vehicle reaches
// Pending, and the sale workflow decides the winner at approval time.
type PurchaseService struct {
	requests   repository.PurchaseRequestRepository
	vehicles   repository.VehicleRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewPurchaseService builds the service. now defaults to the UTC wall clock.
func NewPurchaseService(requests repository.PurchaseRequestRepository, vehicles repository.VehicleRepository, dispatcher events.Dispatcher, logger *zap.Logger, now func() time.Time) *PurchaseService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseService{
		requests:   requests,
		vehicles:   vehicles,
		dispatcher: dispatcher,
		logger:     logger,
		now:        now,
	}
}

// CreateRequest records a purchase request for an Available vehicle.
func (s *PurchaseService) CreateRequest(ctx context.Context, userID, vehicleID int64) (*domain.PurchaseRequest, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("vehicle", map[string]any{"vehicle_id": vehicleID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("vehicle is not available for purchase. Current status: %s", vehicle.Status), nil)
	}

	request := &domain.PurchaseRequest{
		UserID:      userID,
		VehicleID:   vehicleID,
		RequestedAt: s.now(),
		Status:      domain.PurchaseRequestStatusPending,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("purchase request created",
		zap.Int64("request_id", request.ID),
		zap.Int64("user_id", userID),
		zap.Int64("vehicle_id", vehicleID))

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventPurchaseRequestCreated, userID, events.PurchaseRequestCreatedPayload{
			RequestID: request.ID,
			VehicleID: vehicleID,
		}))
	}
	return request, nil
}

// History lists the user's purchase requests with vehicle details, newest
// first.
func (s *PurchaseService) History(ctx context.Context, userID int64) ([]repository.PurchaseHistoryItem, error) {
	items, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return items, nil
}
