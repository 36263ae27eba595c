package config

import "strings"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://orders.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// AllowedOrigins is the comma-separated list of origins allowed to make
	// credentialed cross-origin requests (the frontend serving the UI).
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173"`
}

// OriginList splits AllowedOrigins on commas, dropping empty entries.
func (h HTTPConfig) OriginList() []string {
	parts := strings.Split(h.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
