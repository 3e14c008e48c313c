package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dealer-service/internal/api/dto"
	"github.com/spec-kit/dealer-service/internal/domain"
	apperrors "github.com/spec-kit/dealer-service/pkg/util"
)

// SaleProcessor is the sale workflow consumed by this handler.
type SaleProcessor interface {
	ProcessSale(ctx context.Context, requestID int64) (*domain.Sale, error)
}

// SalesHandler exposes admin sale processing.
type SalesHandler struct {
	sales SaleProcessor
}

// NewSalesHandler constructs handler.
func NewSalesHandler(sales SaleProcessor) *SalesHandler {
	return &SalesHandler{sales: sales}
}

// Process handles POST /sales/:requestId/process.
func (h *SalesHandler) Process(c *fiber.Ctx) error {
	requestID, err := c.ParamsInt("requestId")
	if err != nil || requestID <= 0 {
		return apperrors.NewValidationError("validation failed",
			map[string]any{"requestId": "must be a positive integer"})
	}

	sale, err := h.sales.ProcessSale(c.Context(), int64(requestID))
	if err != nil {
		return err
	}

	return c.JSON(dto.SaleResponse{
		Message: "Sale processed successfully",
		Sale: dto.SaleInfo{
			ID:        sale.ID,
			UserID:    sale.UserID,
			VehicleID: sale.VehicleID,
			SoldAt:    sale.SoldAt,
			Price:     sale.Price,
		},
	})
}
