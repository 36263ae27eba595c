package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/order-wizard/ow-api/config"
	"github.com/order-wizard/ow-api/internal/service"
)

// AuthHandlers serves the login flow endpoints.
type AuthHandlers struct {
	auth   *service.AuthService
	oauth  config.OAuthConfig
	logger *slog.Logger
}

// AuthHandlersOptions groups dependencies for NewAuthHandlers.
type AuthHandlersOptions struct {
	Auth   *service.AuthService
	OAuth  config.OAuthConfig
	Logger *slog.Logger
}

// NewAuthHandlers constructs handlers for the auth endpoints.
func NewAuthHandlers(opts AuthHandlersOptions) *AuthHandlers {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandlers{auth: opts.Auth, oauth: opts.OAuth, logger: logger.With("component", "auth_handlers")}
}

// Login starts the authorization flow and redirects the browser to the
// provider's authorization endpoint.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.auth.BeginLogin(r.Context())
	if err != nil {
		h.logger.Error("begin login failed", "error", err)
		WriteAppError(w, err)
		return
	}

	http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
}

// Callback completes the authorization flow: it consumes the state, exchanges
// the code, creates a session, and sends the browser on. Provider errors
// redirect to the configured failure page when one is set so browser flows
// don't dead-end on a JSON body.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	in := service.CallbackInput{
		Code:             query.Get("code"),
		State:            query.Get("state"),
		ErrorCode:        query.Get("error"),
		ErrorDescription: query.Get("error_description"),
	}

	sess, err := h.auth.HandleCallback(r.Context(), in)
	if err != nil {
		h.logger.Warn("callback failed", "error", err)
		if h.oauth.FailureRedirect != "" {
			http.SetCookie(w, h.auth.BuildLogoutCookie())
			http.Redirect(w, r, h.oauth.FailureRedirect, http.StatusTemporaryRedirect)
			return
		}
		WriteAppError(w, err)
		return
	}

	http.SetCookie(w, h.auth.BuildCookie(sess))
	http.Redirect(w, r, h.oauth.SuccessRedirect, http.StatusTemporaryRedirect)
}

// Me returns the current session snapshot for the session cookie on the
// request, or a 401 when there is none.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(h.auth.CookieName())
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	snapshot, err := h.auth.CurrentSession(r.Context(), cookie.Value)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, snapshot)
}

// Logout removes the server-side session and clears the cookie. Logging out
// without a session is not an error.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := ""
	if cookie, err := r.Cookie(h.auth.CookieName()); err == nil {
		sessionID = cookie.Value
	}

	if err := h.auth.Logout(r.Context(), sessionID); err != nil {
		h.logger.Error("logout failed", "error", err)
		WriteAppError(w, err)
		return
	}

	http.SetCookie(w, h.auth.BuildLogoutCookie())
	w.WriteHeader(http.StatusNoContent)
}
