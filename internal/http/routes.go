package httpx

import (
	"log/slog"
	"net/http"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/service"
)

// RouterServices groups everything the router needs to wire its routes.
type RouterServices struct {
	Auth   *service.AuthService
	Orders *service.OrderService
	HTTP   config.HTTPConfig
	OAuth  config.OAuthConfig
	Logger *slog.Logger
}

// NewRouter builds the application handler: routes plus the shared
// middleware chain (recovery outermost, then logging, then CORS).
func NewRouter(svcs RouterServices) http.Handler {
	logger := svcs.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	mux.HandleFunc("GET /openapi.json", docsHandler)

	registerAuthRoutes(mux, svcs, logger)
	registerOrderRoutes(mux, svcs, logger)

	var handler http.Handler = mux
	handler = CORS(svcs.HTTP.OriginList())(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, svcs RouterServices, logger *slog.Logger) {
	h := NewAuthHandlers(AuthHandlersOptions{
		Auth:   svcs.Auth,
		OAuth:  svcs.OAuth,
		Logger: logger,
	})

	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("GET /auth/me", h.Me)
	mux.HandleFunc("POST /auth/logout", h.Logout)
}

func registerOrderRoutes(mux *http.ServeMux, svcs RouterServices, logger *slog.Logger) {
	h := NewOrderHandlers(OrderHandlersOptions{
		Orders: svcs.Orders,
		Logger: logger,
	})

	requireAuth := RequireAuth(svcs.Auth)
	mux.Handle("GET /orders", requireAuth(http.HandlerFunc(h.List)))
	mux.Handle("POST /orders", requireAuth(http.HandlerFunc(h.Create)))
	mux.Handle("GET /orders/{id}", requireAuth(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /orders/{id}", requireAuth(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /orders/{id}", requireAuth(http.HandlerFunc(h.Delete)))
}
