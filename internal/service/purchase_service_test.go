package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/events"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

func newPurchaseFixture() (*PurchaseService, *fakePurchaseRepo, *fakeVehicleRepo, *captureDispatcher) {
	vehicles := newFakeVehicleRepo()
	requests := newFakePurchaseRepo(vehicles)
	dispatcher := &captureDispatcher{}
	svc := NewPurchaseService(requests, vehicles, dispatcher, nil, fixedClock(testEpoch))
	return svc, requests, vehicles, dispatcher
}

func TestCreateRequestForAvailableVehicle(t *testing.T) {
	svc, requests, vehicles, dispatcher := newPurchaseFixture()
	vehicle := seedVehicle(t, vehicles, domain.VehicleStatusAvailable)

	request, err := svc.CreateRequest(context.Background(), 9, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseRequestStatusPending, request.Status)
	assert.Equal(t, int64(9), request.UserID)
	assert.Equal(t, vehicle.ID, request.VehicleID)
	assert.Equal(t, testEpoch, request.RequestedAt)
	assert.Len(t, requests.requests, 1)

	published := dispatcher.byType(events.EventPurchaseRequestCreated)
	require.Len(t, published, 1)
}

func TestCreateRequestDoesNotReserveVehicle(t *testing.T) {
	svc, _, vehicles, _ := newPurchaseFixture()
	vehicle := seedVehicle(t, vehicles, domain.VehicleStatusAvailable)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, 9, vehicle.ID)
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, 10, vehicle.ID)
	require.NoError(t, err, "several customers may request the same vehicle")

	stored, err := vehicles.GetByID(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusAvailable, stored.Status)
}

func TestCreateRequestRejectsUnavailableVehicle(t *testing.T) {
	svc, _, vehicles, _ := newPurchaseFixture()
	vehicle := seedVehicle(t, vehicles, domain.VehicleStatusSold)

	_, err := svc.CreateRequest(context.Background(), 9, vehicle.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
	assert.Contains(t, err.Error(), "Sold")
}

func TestCreateRequestUnknownVehicle(t *testing.T) {
	svc, _, _, _ := newPurchaseFixture()

	_, err := svc.CreateRequest(context.Background(), 9, 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestHistoryReturnsOnlyOwnRequests(t *testing.T) {
	svc, _, vehicles, _ := newPurchaseFixture()
	vehicle := seedVehicle(t, vehicles, domain.VehicleStatusAvailable)
	ctx := context.Background()

	_, err := svc.CreateRequest(ctx, 9, vehicle.ID)
	require.NoError(t, err)
	_, err = svc.CreateRequest(ctx, 10, vehicle.ID)
	require.NoError(t, err)

	items, err := svc.History(ctx, 9)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].Request.UserID)
	assert.Equal(t, vehicle.Make, items[0].Vehicle.Make)

	empty, err := svc.History(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
