package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dealer-service/internal/api/dto"
	"github.com/spec-kit/dealer-service/internal/auth"
	"github.com/spec-kit/dealer-service/internal/domain"
	"github.com/spec-kit/dealer-service/internal/repository"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// PurchaseManager is the purchase surface consumed by this handler.
type PurchaseManager interface {
	CreateRequest(ctx context.Context, userID, vehicleID int64) (*domain.PurchaseRequest, error)
	History(ctx context.Context, userID int64) ([]repository.PurchaseHistoryItem, error)
}

// PurchasesHandler exposes customer purchase requests.
type PurchasesHandler struct {
	purchases PurchaseManager
}

// NewPurchasesHandler constructs handler.
func NewPurchasesHandler(purchases PurchaseManager) *PurchasesHandler {
	return &PurchasesHandler{purchases: purchases}
}

// CreateRequest handles POST /purchases/request.
func (h *PurchasesHandler) CreateRequest(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PurchaseRequestCreate
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VehicleID <= 0 {
		return apperrors.NewValidationError("validation failed",
			map[string]any{"vehicle_id": "must be greater than 0"})
	}

	request, err := h.purchases.CreateRequest(c.Context(), principal.UserID, req.VehicleID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.PurchaseRequestResponse{
		ID:          request.ID,
		UserID:      request.UserID,
		VehicleID:   request.VehicleID,
		RequestedAt: request.RequestedAt,
		Status:      string(request.Status),
		Message:     "Purchase request created successfully. Awaiting admin approval.",
	})
}

// History handles GET /purchases/history.
func (h *PurchasesHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	items, err := h.purchases.History(c.Context(), principal.UserID)
	if err != nil {
		return err
	}

	result := make([]dto.PurchaseHistoryItem, 0, len(items))
	for _, item := range items {
		result = append(result, dto.PurchaseHistoryItem{
			ID:           item.Request.ID,
			VehicleID:    item.Vehicle.ID,
			VehicleMake:  item.Vehicle.Make,
			VehicleModel: item.Vehicle.Model,
			VehicleYear:  item.Vehicle.Year,
			VehiclePrice: item.Vehicle.Price,
			RequestedAt:  item.Request.RequestedAt,
			Status:       string(item.Request.Status),
		})
	}
	return c.JSON(result)
}
