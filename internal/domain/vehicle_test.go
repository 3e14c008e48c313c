package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from VehicleStatus
		to   VehicleStatus
		want bool
	}{
		{"available to pending", VehicleStatusAvailable, VehicleStatusPending, true},
		{"available to sold", VehicleStatusAvailable, VehicleStatusSold, true},
		{"pending back to available", VehicleStatusPending, VehicleStatusAvailable, true},
		{"pending to sold", VehicleStatusPending, VehicleStatusSold, true},
		{"sold to available", VehicleStatusSold, VehicleStatusAvailable, false},
		{"sold to pending", VehicleStatusSold, VehicleStatusPending, false},
		{"same status is a no-op", VehicleStatusSold, VehicleStatusSold, true},
		{"unknown source", VehicleStatus("Scrapped"), VehicleStatusAvailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestVehicleStatusValid(t *testing.T) {
	assert.True(t, VehicleStatusAvailable.Valid())
	assert.True(t, VehicleStatusPending.Valid())
	assert.True(t, VehicleStatusSold.Valid())
	assert.False(t, VehicleStatus("").Valid())
	assert.False(t, VehicleStatus("available").Valid())
}
