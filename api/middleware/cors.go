package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware applying the shared permissive origin policy.
// The frontend is served from multiple preview hosts, so origins are
// matched with AllowOriginFunc instead of a fixed list.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return true
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
