package domain

// VehicleStatus enumerates lifecycle states for inventory vehicles.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "Available"
	VehicleStatusPending   VehicleStatus = "Pending"
	VehicleStatusSold      VehicleStatus = "Sold"
)

// Valid reports whether the status is one of the known values.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusPending, VehicleStatusSold:
		return true
	}
	return false
}

// vehicleTransitions defines the allowed status flow. Sold is terminal:
// a vehicle is Sold exactly when a sale record exists for it.
var vehicleTransitions = map[VehicleStatus][]VehicleStatus{
	VehicleStatusAvailable: {VehicleStatusPending, VehicleStatusSold},
	VehicleStatusPending:   {VehicleStatusAvailable, VehicleStatusSold},
	VehicleStatusSold:      {},
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to VehicleStatus) bool {
	if from == to {
		return true
	}
	for _, s := range vehicleTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Vehicle is the inventory aggregate.
type Vehicle struct {
	ID      int64
	Make    string
	Model   string
	Year    int
	Price   float64
	Mileage int
	Color   string
	Status  VehicleStatus
}
