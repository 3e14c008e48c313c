package dto

import "github.com/spec-kit/dealer-service/internal/domain"

// CreateVehicleRequest payload for new inventory.
type CreateVehicleRequest struct {
	Make    string  `json:"make"`
	Model   string  `json:"model"`
	Year    int     `json:"year"`
	Price   float64 `json:"price"`
	Mileage int     `json:"mileage"`
	Color   string  `json:"color"`
	Status  string  `json:"status"`
}

// UpdateVehicleRequest is a partial update: absent numeric fields are nil
// and absent string fields are empty, both meaning "no change".
type UpdateVehicleRequest struct {
	Make    string   `json:"make"`
	Model   string   `json:"model"`
	Year    *int     `json:"year"`
	Price   *float64 `json:"price"`
	Mileage *int     `json:"mileage"`
	Color   string   `json:"color"`
	Status  string   `json:"status"`
}

// VehicleResponse is the catalog shape.
type VehicleResponse struct {
	ID      int64   `json:"id"`
	Make    string  `json:"make"`
	Model   string  `json:"model"`
	Year    int     `json:"year"`
	Price   float64 `json:"price"`
	Mileage int     `json:"mileage"`
	Color   string  `json:"color"`
	Status  string  `json:"status"`
}

// NewVehicleResponse maps a domain vehicle.
func NewVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:      v.ID,
		Make:    v.Make,
		Model:   v.Model,
		Year:    v.Year,
		Price:   v.Price,
		Mileage: v.Mileage,
		Color:   v.Color,
		Status:  string(v.Status),
	}
}
