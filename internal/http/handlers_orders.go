package httpx

import (
	"log/slog"
	"net/http"

	"github.com/order-wizard/ow-api/internal/domain/model"
	"github.com/order-wizard/ow-api/internal/service"
)

// OrderHandlers serves the order CRUD endpoints. All routes run behind
// RequireAuth, so the user ID is always present in the request context.
type OrderHandlers struct {
	orders *service.OrderService
	logger *slog.Logger
}

// OrderHandlersOptions groups dependencies for NewOrderHandlers.
type OrderHandlersOptions struct {
	Orders *service.OrderService
	Logger *slog.Logger
}

// NewOrderHandlers constructs handlers for the order endpoints.
func NewOrderHandlers(opts OrderHandlersOptions) *OrderHandlers {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderHandlers{orders: opts.Orders, logger: logger.With("component", "order_handlers")}
}

// List returns all orders belonging to the authenticated user, newest first.
func (h *OrderHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	orders, err := h.orders.List(r.Context(), userID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// An empty list serializes as [] rather than null.
	if orders == nil {
		orders = []model.Order{}
	}
	WriteJSON(w, http.StatusOK, orders)
}

// Create persists a new order for the authenticated user.
func (h *OrderHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())

	var req model.CreateOrderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	order, err := h.orders.Create(r.Context(), userID, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, order)
}

// Get returns a single order by ID, scoped to the authenticated user.
func (h *OrderHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	orderID := r.PathValue("id")

	order, err := h.orders.Get(r.Context(), userID, orderID)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

// Update applies a partial update to an order.
func (h *OrderHandlers) Update(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	orderID := r.PathValue("id")

	var req model.UpdateOrderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	order, err := h.orders.Update(r.Context(), userID, orderID, req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, order)
}

// Delete removes an order.
func (h *OrderHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	orderID := r.PathValue("id")

	if err := h.orders.Delete(r.Context(), userID, orderID); err != nil {
		WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
