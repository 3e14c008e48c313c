package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/events"
	"github.com/spec-kit/dealer-service/internal/repository"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// VehicleUpdate carries a partial update. Nil numeric fields and empty
// string fields mean "no change"; a string field can therefore never be
// cleared to empty through an update.
type VehicleUpdate struct {
	Make    string
	Model   string
	Year    *int
	Price   *float64
	Mileage *int
	Color   string
	Status  string
}

// VehicleService covers inventory listing and admin CRUD.
type VehicleService struct {
	vehicles   repository.VehicleRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewVehicleService builds the service.
func NewVehicleService(vehicles repository.VehicleRepository, dispatcher events.Dispatcher, logger *zap.Logger) *VehicleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VehicleService{vehicles: vehicles, dispatcher: dispatcher, logger: logger}
}

// List returns vehicles matching the filter.
func (s *VehicleService) List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	result, err := s.vehicles.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return result, nil
}

// Get loads one vehicle.
func (s *VehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("vehicle", map[string]any{"vehicle_id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}
	return vehicle, nil
}

// Create adds a vehicle to the inventory.
func (s *VehicleService) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return apperrors.NewInternalError(err)
	}
	s.logger.Info("vehicle created",
		zap.Int64("vehicle_id", vehicle.ID),
		zap.String("make", vehicle.Make),
		zap.String("model", vehicle.Model))
	return nil
}

// Update applies a partial update. A status change must follow the
// vehicle lifecycle: Sold is terminal.
func (s *VehicleService) Update(ctx context.Context, id int64, upd VehicleUpdate) (*domain.Vehicle, error) {
	vehicle, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != "" {
		next := domain.VehicleStatus(upd.Status)
		if !domain.CanTransition(vehicle.Status, next) {
			return nil, apperrors.NewConflict(
				fmt.Sprintf("vehicle status cannot change from %s to %s", vehicle.Status, next), nil)
		}
	}

	applyVehicleUpdate(vehicle, upd)

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.NewNotFound("vehicle", map[string]any{"vehicle_id": id})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.logger.Info("vehicle updated", zap.Int64("vehicle_id", vehicle.ID))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventVehicleUpdated, 0, events.VehicleUpdatedPayload{
			VehicleID: vehicle.ID,
			Status:    vehicle.Status,
		}))
	}
	return vehicle, nil
}

func applyVehicleUpdate(v *domain.Vehicle, upd VehicleUpdate) {
	if upd.Make != "" {
		v.Make = upd.Make
	}
	if upd.Model != "" {
		v.Model = upd.Model
	}
	if upd.Year != nil {
		v.Year = *upd.Year
	}
	if upd.Price != nil {
		v.Price = *upd.Price
	}
	if upd.Mileage != nil {
		v.Mileage = *upd.Mileage
	}
	if upd.Color != "" {
		v.Color = upd.Color
	}
	if upd.Status != "" {
		v.Status = domain.VehicleStatus(upd.Status)
	}
}
