package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dealer-service/internal/domain"
)

// PurchaseHistoryItem is a request joined with its vehicle for listings.
type PurchaseHistoryItem struct {
	Request domain.PurchaseRequest
	Vehicle domain.Vehicle
}

// PurchaseRequestRepository encapsulates purchase request persistence.
type PurchaseRequestRepository interface {
	Create(ctx context.Context, request *domain.PurchaseRequest) error
	// GetWithVehicleForUpdate loads a request joined with its vehicle and
	// locks both rows for the remainder of the transaction.
	GetWithVehicleForUpdate(ctx context.Context, id int64) (*domain.PurchaseRequest, *domain.Vehicle, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PurchaseRequestStatus) error
	ListByUser(ctx context.Context, userID int64) ([]PurchaseHistoryItem, error)
}

type purchaseRequestRepository struct {
	db DB
}

// NewPurchaseRequestRepository instantiates repository.
func NewPurchaseRequestRepository(db DB) PurchaseRequestRepository {
	return &purchaseRequestRepository{db: db}
}

func (r *purchaseRequestRepository) Create(ctx context.Context, request *domain.PurchaseRequest) error {
	const query = `
        INSERT INTO purchase_requests (user_id, vehicle_id, requested_at, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		request.UserID,
		request.VehicleID,
		request.RequestedAt,
		request.Status,
	).Scan(&request.ID)
}

func (r *purchaseRequestRepository) GetWithVehicleForUpdate(ctx context.Context, id int64) (*domain.PurchaseRequest, *domain.Vehicle, error) {
	const query = `
        SELECT pr.id, pr.user_id, pr.vehicle_id, pr.requested_at, pr.status,
               v.id, v.make, v.model, v.year, v.price, v.mileage, v.color, v.status
        FROM purchase_requests pr
        JOIN vehicles v ON v.id = pr.vehicle_id
        WHERE pr.id=$1
        FOR UPDATE OF pr, v`

	var request domain.PurchaseRequest
	var vehicle domain.Vehicle
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.UserID,
		&request.VehicleID,
		&request.RequestedAt,
		&request.Status,
		&vehicle.ID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Price,
		&vehicle.Mileage,
		&vehicle.Color,
		&vehicle.Status,
	); err != nil {
		return nil, nil, err
	}
	return &request, &vehicle, nil
}

func (r *purchaseRequestRepository) UpdateStatus(ctx context.Context, id int64, status domain.PurchaseRequestStatus) error {
	const query = `UPDATE purchase_requests SET status=$1 WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *purchaseRequestRepository) ListByUser(ctx context.Context, userID int64) ([]PurchaseHistoryItem, error) {
	const query = `
        SELECT pr.id, pr.user_id, pr.vehicle_id, pr.requested_at, pr.status,
               v.id, v.make, v.model, v.year, v.price, v.mileage, v.color, v.status
        FROM purchase_requests pr
        JOIN vehicles v ON v.id = pr.vehicle_id
        WHERE pr.user_id=$1
        ORDER BY pr.requested_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []PurchaseHistoryItem
	for rows.Next() {
		var item PurchaseHistoryItem
		if err := rows.Scan(
			&item.Request.ID,
			&item.Request.UserID,
			&item.Request.VehicleID,
			&item.Request.RequestedAt,
			&item.Request.Status,
			&item.Vehicle.ID,
			&item.Vehicle.Make,
			&item.Vehicle.Model,
			&item.Vehicle.Year,
			&item.Vehicle.Price,
			&item.Vehicle.Mileage,
			&item.Vehicle.Color,
			&item.Vehicle.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
