package config

import (
	"fmt"
	"strings"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	IssuerURL    string `env:"ISSUER_URL"`
	RedirectURL  string `env:"REDIRECT_URL"      envDefault:"http://localhost:8080/auth/callback"`
	Scopes       string `env:"SCOPES"            envDefault:"openid email"`

	// SuccessRedirect is where the browser is sent after a completed login.
	SuccessRedirect string `env:"SUCCESS_REDIRECT" envDefault:"http://localhost:5173/auth/success"`

	// FailureRedirect is where the browser is sent when the provider reports
	// an authorization error. Leave empty to return a structured error instead.
	FailureRedirect string `env:"FAILURE_REDIRECT"`
}

// ScopeList splits the configured scope string on spaces and commas.
func (o OAuthConfig) ScopeList() []string {
	fields := strings.FieldsFunc(o.Scopes, func(r rune) bool {
		return r == ' ' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Name   string `env:"NAME"    envDefault:"Dev User"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Mode == "" {
		a.Mode = AuthModeOAuth
	}
	// An empty scope list breaks the OIDC flow; default to bare openid.
	if len(a.OAuth.ScopeList()) == 0 {
		a.OAuth.Scopes = "openid"
	}
}
