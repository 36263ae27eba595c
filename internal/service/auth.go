package service

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/order-wizard/ow-api/config"
	domainauth "github.com/order-wizard/ow-api/internal/domain/auth"
	apperrors "github.com/order-wizard/ow-api/internal/errors"
	"github.com/order-wizard/ow-api/internal/observability/statsd"
	"github.com/order-wizard/ow-api/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider  ports.AuthProvider
	Pending   ports.PendingStore
	Sessions  ports.SessionStore
	Extractor *IdentityExtractor
	Session   config.SessionConfig
	Cleanup   config.CleanupConfig
	Logger    *slog.Logger
	// Metrics is optional.
	Metrics statsd.Sink
}

// AuthService orchestrates the login flow: it owns the pending-auth
// lifecycle, drives the provider, and persists sessions. Provider calls
// happen outside any store operation.
type AuthService struct {
	provider  ports.AuthProvider
	pending   ports.PendingStore
	sessions  ports.SessionStore
	extractor *IdentityExtractor
	session   config.SessionConfig
	cleanup   config.CleanupConfig
	logger    *slog.Logger
	metrics   statsd.Sink
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = NewIdentityExtractor(IdentityExtractorOptions{})
	}
	return &AuthService{
		provider:  opts.Provider,
		pending:   opts.Pending,
		sessions:  opts.Sessions,
		extractor: extractor,
		session:   opts.Session,
		cleanup:   opts.Cleanup,
		logger:    logger,
		metrics:   opts.Metrics,
	}
}

func (s *AuthService) count(name string) {
	if s.metrics != nil {
		s.metrics.Count(name, 1, nil)
	}
}

// BeginLogin starts an authentication attempt: it asks the provider for an
// authorization URL, records the pending state, and returns the URL to
// redirect the browser to.
func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	res, err := s.provider.Begin(ctx)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeAuth, "begin auth flow")
	}

	p := domainauth.PendingAuth{
		State:     res.State,
		Verifier:  res.Verifier,
		Nonce:     res.Nonce,
		CreatedAt: time.Now(),
	}
	if err := s.pending.Store(ctx, p); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "store pending auth")
	}

	s.logger.Debug("login started", "state", res.State)
	s.count("login.started")
	return res.AuthURL, nil
}

// CallbackInput carries the query parameters of a provider callback.
// ErrorCode and ErrorDescription are set when the provider reported a
// failure instead of issuing a code.
type CallbackInput struct {
	Code             string
	State            string
	ErrorCode        string
	ErrorDescription string
}

// HandleCallback completes the flow for a provider callback. The pending
// state is consumed before any provider call, so a given state is redeemable
// exactly once even if the later steps fail.
func (s *AuthService) HandleCallback(ctx context.Context, in CallbackInput) (domainauth.Session, error) {
	sess, err := s.handleCallback(ctx, in)
	if err != nil {
		s.count("login.failure")
		return domainauth.Session{}, err
	}
	s.count("login.success")
	return sess, nil
}

func (s *AuthService) handleCallback(ctx context.Context, in CallbackInput) (domainauth.Session, error) {
	if in.ErrorCode != "" {
		// Burn the state so a declined attempt cannot be replayed.
		if in.State != "" {
			if _, _, err := s.pending.Take(ctx, in.State); err != nil {
				s.logger.Warn("consume pending auth after provider error", "error", err)
			}
		}
		if in.ErrorDescription != "" {
			return domainauth.Session{}, apperrors.Authf("provider returned %s: %s", in.ErrorCode, in.ErrorDescription)
		}
		return domainauth.Session{}, apperrors.Authf("provider returned %s", in.ErrorCode)
	}
	if in.Code == "" {
		return domainauth.Session{}, apperrors.Auth("missing authorization code")
	}
	if in.State == "" {
		return domainauth.Session{}, apperrors.Auth("missing state parameter")
	}

	p, ok, err := s.pending.Take(ctx, in.State)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "consume pending auth")
	}
	if !ok {
		return domainauth.Session{}, apperrors.Auth("unknown or already used state")
	}

	token, err := s.provider.Exchange(ctx, in.Code, p.Verifier)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeAuth, "exchange authorization code")
	}

	profile, err := s.provider.FetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeTransport, "fetch user info")
	}

	identity, err := s.extractor.Extract(profile)
	if err != nil {
		return domainauth.Session{}, err
	}

	ttl := s.sessionTTL()
	sess, err := s.sessions.Create(ctx, identity, profile, ttl)
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create session")
	}

	s.logger.Info("login completed", "user_id", identity.ID, "session_id", sess.ID)
	return sess, nil
}

// CurrentSession returns the introspection view of the session carried by the
// cookie. Expiry is not enforced here; a stale session remains visible until
// it is swept.
func (s *AuthService) CurrentSession(ctx context.Context, sessionID string) (domainauth.Snapshot, error) {
	if sessionID == "" {
		return domainauth.Snapshot{}, apperrors.Unauthorized("no session")
	}
	sess, ok, err := s.sessions.Snapshot(ctx, sessionID)
	if err != nil {
		return domainauth.Snapshot{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "load session")
	}
	if !ok {
		return domainauth.Snapshot{}, apperrors.Unauthorized("no session")
	}
	return sess.Snapshot(), nil
}

// ResolveUser returns the user ID for a live session, enforcing expiry.
func (s *AuthService) ResolveUser(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", apperrors.Unauthorized("no session")
	}
	userID, ok, err := s.sessions.ResolveUserID(ctx, sessionID)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "resolve session")
	}
	if !ok {
		return "", apperrors.Unauthorized("session expired or unknown")
	}
	return userID, nil
}

// Logout removes the session. Logging out an unknown or already removed
// session succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Remove(ctx, sessionID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "remove session")
	}
	s.logger.Debug("logout", "session_id", sessionID)
	return nil
}

// CleanupExpired sweeps stale pending attempts and expired sessions. Safe to
// run concurrently with logins; repeated runs are no-ops once stores are
// clean.
func (s *AuthService) CleanupExpired(ctx context.Context) error {
	pendingRemoved, err := s.pending.Sweep(ctx, s.cleanup.PendingMaxAge)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "sweep pending auth")
	}
	sessionsRemoved, err := s.sessions.Sweep(ctx)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "sweep sessions")
	}
	if pendingRemoved > 0 || sessionsRemoved > 0 {
		s.logger.Info("cleanup pass",
			"pending_removed", pendingRemoved,
			"sessions_removed", sessionsRemoved)
	}
	return nil
}

// BuildCookie constructs the session cookie for a newly created session. The
// MaxAge mirrors the configured session TTL so browser and server expire
// together.
func (s *AuthService) BuildCookie(sess domainauth.Session) *http.Cookie {
	c := &http.Cookie{
		Name:     s.session.CookieName,
		Value:    sess.ID,
		Path:     "/",
		Domain:   s.session.CookieDomain,
		HttpOnly: true,
		Secure:   s.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl := s.sessionTTL(); ttl != nil {
		c.MaxAge = int(ttl.Seconds())
	}
	return c
}

// BuildLogoutCookie constructs an expired cookie that clears the session on
// the browser.
func (s *AuthService) BuildLogoutCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.session.CookieName,
		Value:    "",
		Path:     "/",
		Domain:   s.session.CookieDomain,
		HttpOnly: true,
		Secure:   s.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

// CookieName exposes the configured session cookie name for handlers.
func (s *AuthService) CookieName() string {
	return s.session.CookieName
}

func (s *AuthService) sessionTTL() *time.Duration {
	if s.session.TTL <= 0 {
		return nil
	}
	ttl := s.session.TTL
	return &ttl
}
