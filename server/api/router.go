package api

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dekarrin/phpsyn/server/middle"
)

// Mount attaches api's endpoints to r: /healthz unauthenticated, and
// everything under PathPrefix behind bearer auth. Every request, whether it
// hits a named route or not, gets a correlation ID via middle.RequestID.
func (api API) Mount(r chi.Router) {
	r.Use(middle.RequestID(api.Log))

	r.Get("/healthz", api.HTTPHealthz())

	auth := middle.RequireAuth(api.Store.APIKeys(), api.Secret, time.Second, api.Log)

	r.Route(PathPrefix, func(sub chi.Router) {
		sub.Use(middle.DontPanic(api.Log))
		sub.With(auth).Post("/parse", api.HTTPParse())
		sub.With(auth).Get("/history", api.HTTPHistory())
	})
}
