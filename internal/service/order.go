package service

import (
	"context"
	"log/slog"

	"github.com/order-wizard/ow-api/internal/domain/model"
	apperrors "github.com/order-wizard/ow-api/internal/errors"
	"github.com/order-wizard/ow-api/internal/ports"
)

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	Repo   ports.OrderRepository
	Logger *slog.Logger
}

// OrderService provides order CRUD scoped to the authenticated user.
type OrderService struct {
	repo   ports.OrderRepository
	logger *slog.Logger
}

// NewOrderService constructs a new OrderService.
func NewOrderService(opts OrderServiceOptions) *OrderService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{repo: opts.Repo, logger: logger}
}

// Create validates and persists a new order for the user.
func (s *OrderService) Create(ctx context.Context, userID string, req model.CreateOrderRequest) (model.Order, error) {
	if userID == "" {
		return model.Order{}, apperrors.Unauthorized("no user")
	}
	if err := req.Validate(); err != nil {
		return model.Order{}, err
	}
	order, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		return model.Order{}, err
	}
	s.logger.Info("order created", "order_id", order.ID, "user_id", userID)
	return order, nil
}

// Get returns the user's order by ID.
func (s *OrderService) Get(ctx context.Context, userID, orderID string) (model.Order, error) {
	if userID == "" {
		return model.Order{}, apperrors.Unauthorized("no user")
	}
	if orderID == "" {
		return model.Order{}, apperrors.ValidationField("id", "order ID is required")
	}
	return s.repo.Get(ctx, userID, orderID)
}

// List returns all of the user's orders, newest first.
func (s *OrderService) List(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("no user")
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update applies a partial update to the user's order.
func (s *OrderService) Update(ctx context.Context, userID, orderID string, req model.UpdateOrderRequest) (model.Order, error) {
	if userID == "" {
		return model.Order{}, apperrors.Unauthorized("no user")
	}
	if orderID == "" {
		return model.Order{}, apperrors.ValidationField("id", "order ID is required")
	}
	if err := req.Validate(); err != nil {
		return model.Order{}, err
	}
	order, err := s.repo.Update(ctx, userID, orderID, req)
	if err != nil {
		return model.Order{}, err
	}
	s.logger.Info("order updated", "order_id", order.ID, "user_id", userID)
	return order, nil
}

// Delete removes the user's order.
func (s *OrderService) Delete(ctx context.Context, userID, orderID string) error {
	if userID == "" {
		return apperrors.Unauthorized("no user")
	}
	if orderID == "" {
		return apperrors.ValidationField("id", "order ID is required")
	}
	if err := s.repo.Delete(ctx, userID, orderID); err != nil {
		return err
	}
	s.logger.Info("order deleted", "order_id", orderID, "user_id", userID)
	return nil
}
