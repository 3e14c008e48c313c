package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dealer-service/internal/domain"
)

// VehicleFilter captures catalog search parameters.
type VehicleFilter struct {
	Make     *string
	Model    *string
	MinYear  *int
	MaxYear  *int
	MinPrice *float64
	MaxPrice *float64
	Status   *domain.VehicleStatus
}

// VehicleRepository encapsulates inventory persistence.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	ListWithFilter(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error)
}

type vehicleRepository struct {
	db DB
}

// NewVehicleRepository instantiates repository.
func NewVehicleRepository(db DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (make, model, year, price, mileage, color, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Price,
		vehicle.Mileage,
		vehicle.Color,
		vehicle.Status,
	).Scan(&vehicle.ID)
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        UPDATE vehicles SET make=$1, model=$2, year=$3, price=$4, mileage=$5, color=$6, status=$7
        WHERE id=$8`
	cmd, err := r.db.Exec(ctx, query,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Price,
		vehicle.Mileage,
		vehicle.Color,
		vehicle.Status,
		vehicle.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	const query = `UPDATE vehicles SET status=$1 WHERE id=$2`
	cmd, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	const query = `
        SELECT id, make, model, year, price, mileage, color, status
        FROM vehicles WHERE id=$1`

	var vehicle domain.Vehicle
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.Make,
		&vehicle.Model,
		&vehicle.Year,
		&vehicle.Price,
		&vehicle.Mileage,
		&vehicle.Color,
		&vehicle.Status,
	); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ListWithFilter(ctx context.Context, filter VehicleFilter) ([]domain.Vehicle, error) {
	base := `SELECT id, make, model, year, price, mileage, color, status FROM vehicles`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Make != nil && strings.TrimSpace(*filter.Make) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Make))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(make) LIKE $%d", len(args)))
	}
	if filter.Model != nil && strings.TrimSpace(*filter.Model) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Model))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(model) LIKE $%d", len(args)))
	}
	if filter.MinYear != nil {
		args = append(args, *filter.MinYear)
		clauses = append(clauses, fmt.Sprintf("year >= $%d", len(args)))
	}
	if filter.MaxYear != nil {
		args = append(args, *filter.MaxYear)
		clauses = append(clauses, fmt.Sprintf("year <= $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clauses = append(clauses, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY id`, base, strings.Join(clauses, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Vehicle
	for rows.Next() {
		var vehicle domain.Vehicle
		if err := rows.Scan(
			&vehicle.ID,
			&vehicle.Make,
			&vehicle.Model,
			&vehicle.Year,
			&vehicle.Price,
			&vehicle.Mileage,
			&vehicle.Color,
			&vehicle.Status,
		); err != nil {
			return nil, err
		}
		result = append(result, vehicle)
	}
	return result, rows.Err()
}
