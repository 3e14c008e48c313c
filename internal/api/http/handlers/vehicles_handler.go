package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dealer-service/internal/api/dto"
	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/repository"
	"github.com/spec-kit/dealer-service/internal/service"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// VehicleManager is the inventory surface consumed by this handler.
type VehicleManager interface {
	List(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error)
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	Update(ctx context.Context, id int64, upd service.VehicleUpdate) (*domain.Vehicle, error)
}

// VehiclesHandler exposes catalog browsing and admin CRUD.
type VehiclesHandler struct {
	vehicles VehicleManager
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(vehicles VehicleManager) *VehiclesHandler {
	return &VehiclesHandler{vehicles: vehicles}
}

// List handles GET /vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	var filter repository.VehicleFilter

	if make := c.Query("make"); make != "" {
		filter.Make = &make
	}
	if model := c.Query("model"); model != "" {
		filter.Model = &model
	}
	if v, ok, err := queryInt(c, "min_year"); err != nil {
		return err
	} else if ok {
		filter.MinYear = &v
	}
	if v, ok, err := queryInt(c, "max_year"); err != nil {
		return err
	} else if ok {
		filter.MaxYear = &v
	}
	if v, ok, err := queryFloat(c, "min_price"); err != nil {
		return err
	} else if ok {
		filter.MinPrice = &v
	}
	if v, ok, err := queryFloat(c, "max_price"); err != nil {
		return err
	} else if ok {
		filter.MaxPrice = &v
	}
	if status := c.Query("status"); status != "" {
		s := domain.VehicleStatus(status)
		if !s.Valid() {
			return apperrors.NewValidationError("validation failed",
				map[string]any{"status": "must be one of: Available, Pending, Sold"})
		}
		filter.Status = &s
	}

	vehicles, err := h.vehicles.List(c.Context(), filter)
	if err != nil {
		return err
	}

	result := make([]dto.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		result = append(result, dto.NewVehicleResponse(&vehicles[i]))
	}
	return c.JSON(result)
}

// Get handles GET /vehicles/:id.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("validation failed", map[string]any{"id": "must be a positive integer"})
	}

	vehicle, err := h.vehicles.Get(c.Context(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVehicleResponse(vehicle))
}

// Create handles POST /vehicles.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	requireVehicleString(details, "make", req.Make, 100)
	requireVehicleString(details, "model", req.Model, 100)
	requireVehicleString(details, "color", req.Color, 50)
	if req.Year < 1900 || req.Year > 2100 {
		details["year"] = "must be between 1900 and 2100"
	}
	if req.Price < 0 {
		details["price"] = "must be greater than or equal to 0"
	}
	if req.Mileage < 0 {
		details["mileage"] = "must be greater than or equal to 0"
	}
	if !domain.VehicleStatus(req.Status).Valid() {
		details["status"] = "must be one of: Available, Pending, Sold"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	vehicle := &domain.Vehicle{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Price:   req.Price,
		Mileage: req.Mileage,
		Color:   req.Color,
		Status:  domain.VehicleStatus(req.Status),
	}
	if err := h.vehicles.Create(c.Context(), vehicle); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewVehicleResponse(vehicle))
}

// Update handles PUT /vehicles/:id. Only fields present in the body are
// applied; an absent or empty string field is "no change".
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewValidationError("validation failed", map[string]any{"id": "must be a positive integer"})
	}

	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if len(req.Make) > 100 {
		details["make"] = "must not exceed 100 characters"
	}
	if len(req.Model) > 100 {
		details["model"] = "must not exceed 100 characters"
	}
	if len(req.Color) > 50 {
		details["color"] = "must not exceed 50 characters"
	}
	if req.Year != nil && (*req.Year < 1900 || *req.Year > 2100) {
		details["year"] = "must be between 1900 and 2100"
	}
	if req.Price != nil && *req.Price < 0 {
		details["price"] = "must be greater than or equal to 0"
	}
	if req.Mileage != nil && *req.Mileage < 0 {
		details["mileage"] = "must be greater than or equal to 0"
	}
	if req.Status != "" && !domain.VehicleStatus(req.Status).Valid() {
		details["status"] = "must be one of: Available, Pending, Sold"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details)
	}

	vehicle, err := h.vehicles.Update(c.Context(), int64(id), service.VehicleUpdate{
		Make:    req.Make,
		Model:   req.Model,
		Year:    req.Year,
		Price:   req.Price,
		Mileage: req.Mileage,
		Color:   req.Color,
		Status:  req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVehicleResponse(vehicle))
}

func requireVehicleString(details map[string]any, field, value string, maxLen int) {
	if value == "" {
		details[field] = "is required"
		return
	}
	if len(value) > maxLen {
		details[field] = "must not exceed " + strconv.Itoa(maxLen) + " characters"
	}
}

func queryInt(c *fiber.Ctx, name string) (int, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, apperrors.NewValidationError("validation failed", map[string]any{name: "must be an integer"})
	}
	return v, true, nil
}

func queryFloat(c *fiber.Ctx, name string) (float64, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, apperrors.NewValidationError("validation failed", map[string]any{name: "must be a number"})
	}
	return v, true, nil
}
