package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the API. X-API-Key is allowed
// so browser clients can pass a per-request market data key override.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"X-API-Key",
		},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
