package repository

import (
	"context"

	"github.com/spec-kit/dealer-service/internal/domain"
)

// SaleRepository encapsulates sale record persistence. Sales are written
// once and never updated.
type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	CountByVehicle(ctx context.Context, vehicleID int64) (int64, error)
}

type saleRepository struct {
	db DB
}

// NewSaleRepository instantiates repository.
func NewSaleRepository(db DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	const query = `
        INSERT INTO sales (user_id, vehicle_id, sold_at, price)
        VALUES ($1,$2,$3,$4)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		sale.UserID,
		sale.VehicleID,
		sale.SoldAt,
		sale.Price,
	).Scan(&sale.ID)
}

func (r *saleRepository) CountByVehicle(ctx context.Context, vehicleID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM sales WHERE vehicle_id=$1`
	var count int64
	if err := r.db.QueryRow(ctx, query, vehicleID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
