package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dealer-service/internal/api/dto"
	"github.com/spec-kit/dealer-service/internal/domain"
)

// CustomerLister is the account listing consumed by this handler.
type CustomerLister interface {
	ListCustomers(ctx context.Context) ([]domain.User, error)
}

// CustomersHandler exposes the admin customer listing.
type CustomersHandler struct {
	users CustomerLister
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(users CustomerLister) *CustomersHandler {
	return &CustomersHandler{users: users}
}

// List handles GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.users.ListCustomers(c.Context())
	if err != nil {
		return err
	}

	result := make([]dto.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		result = append(result, dto.CustomerResponse{
			ID:        customer.ID,
			Email:     customer.Email,
			Role:      string(customer.Role),
			CreatedAt: customer.CreatedAt,
		})
	}
	return c.JSON(result)
}
