package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/events"
	"github.com/spec-kit/dealer-service/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if user.Role == role {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type fakeOTPRepo struct {
	mu     sync.Mutex
	nextID int64
	codes  []*domain.OneTimeCode
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{}
}

func (r *fakeOTPRepo) Create(_ context.Context, code *domain.OneTimeCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	code.ID = r.nextID
	copied := *code
	r.codes = append(r.codes, &copied)
	return nil
}

func (r *fakeOTPRepo) findNewest(userID int64, purpose, codeHash string) *domain.OneTimeCode {
	var newest *domain.OneTimeCode
	for _, c := range r.codes {
		if c.UserID != userID || c.Purpose != purpose || c.CodeHash != codeHash || c.ConsumedAt != nil {
			continue
		}
		if newest == nil || c.ExpiresAt.After(newest.ExpiresAt) {
			newest = c
		}
	}
	return newest
}

func (r *fakeOTPRepo) FindActive(_ context.Context, userID int64, purpose, codeHash string) (*domain.OneTimeCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if newest := r.findNewest(userID, purpose, codeHash); newest != nil {
		copied := *newest
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOTPRepo) Consume(_ context.Context, userID int64, purpose, codeHash string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	newest := r.findNewest(userID, purpose, codeHash)
	if newest == nil || !newest.ExpiresAt.After(now) {
		return false, nil
	}
	stamp := now
	newest.ConsumedAt = &stamp
	return true, nil
}

type fakeVehicleRepo struct {
	mu        sync.Mutex
	nextID    int64
	vehicles  map[int64]*domain.Vehicle
	updateErr error
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: map[int64]*domain.Vehicle{}}
}

func (r *fakeVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	vehicle.ID = r.nextID
	copied := *vehicle
	r.vehicles[vehicle.ID] = &copied
	return nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, vehicle *domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.vehicles[vehicle.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *vehicle
	r.vehicles[vehicle.ID] = &copied
	return nil
}

func (r *fakeVehicleRepo) UpdateStatus(_ context.Context, id int64, status domain.VehicleStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	vehicle, ok := r.vehicles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	vehicle.Status = status
	return nil
}

func (r *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vehicle, ok := r.vehicles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *vehicle
	return &copied, nil
}

func (r *fakeVehicleRepo) ListWithFilter(_ context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Vehicle
	for _, vehicle := range r.vehicles {
		if filter.Status != nil && vehicle.Status != *filter.Status {
			continue
		}
		result = append(result, *vehicle)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakePurchaseRepo struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*domain.PurchaseRequest
	vehicles *fakeVehicleRepo
}

func newFakePurchaseRepo(vehicles *fakeVehicleRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{requests: map[int64]*domain.PurchaseRequest{}, vehicles: vehicles}
}

func (r *fakePurchaseRepo) Create(_ context.Context, request *domain.PurchaseRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	request.ID = r.nextID
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakePurchaseRepo) GetWithVehicleForUpdate(ctx context.Context, id int64) (*domain.PurchaseRequest, *domain.Vehicle, error) {
	r.mu.Lock()
	request, ok := r.requests[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil, pgx.ErrNoRows
	}
	vehicle, err := r.vehicles.GetByID(ctx, request.VehicleID)
	if err != nil {
		return nil, nil, err
	}
	copied := *request
	return &copied, vehicle, nil
}

func (r *fakePurchaseRepo) UpdateStatus(_ context.Context, id int64, status domain.PurchaseRequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	request.Status = status
	return nil
}

func (r *fakePurchaseRepo) ListByUser(ctx context.Context, userID int64) ([]repository.PurchaseHistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []repository.PurchaseHistoryItem
	for _, request := range r.requests {
		if request.UserID != userID {
			continue
		}
		item := repository.PurchaseHistoryItem{Request: *request}
		if vehicle, ok := r.vehicles.vehicles[request.VehicleID]; ok {
			item.Vehicle = *vehicle
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Request.RequestedAt.After(result[j].Request.RequestedAt)
	})
	return result, nil
}

type fakeSaleRepo struct {
	mu        sync.Mutex
	nextID    int64
	sales     []domain.Sale
	createErr error
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	sale.ID = r.nextID
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *fakeSaleRepo) CountByVehicle(_ context.Context, vehicleID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, sale := range r.sales {
		if sale.VehicleID == vehicleID {
			count++
		}
	}
	return count, nil
}

// fakeTx satisfies pgx.Tx through embedding; only Commit and Rollback are
// exercised because the fake repositories ignore their DB handle.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

type captureDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *captureDispatcher) byType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
