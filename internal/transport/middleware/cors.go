package middleware

import (
	"github.com/rs/cors"

	"github.com/rsimmons/yukawa/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing for the
// browser client, answering preflight requests itself.
func CORS(cfg config.CORSConfig) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins:   config.ParseList(cfg.AllowedOrigins),
		AllowedMethods:   config.ParseList(cfg.AllowedMethods),
		AllowedHeaders:   config.ParseList(cfg.AllowedHeaders),
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
	return c.Handler
}
