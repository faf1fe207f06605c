// Package api provides the HTTP API endpoints of the phpsyn parse service.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dekarrin/phpsyn"
	"github.com/dekarrin/phpsyn/internal/plog"
	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/middle"
	"github.com/dekarrin/phpsyn/server/result"
)

// PathPrefix is the prefix of all paths in the API. Routers should mount a
// sub-router that routes all requests to the API at this path.
const PathPrefix = "/v1"

// API holds the dependencies needed by endpoint handlers. Create one and
// assign the result of its HTTP* methods as handlers on a router.
type API struct {
	// Store gives access to the persisted parse history and API keys.
	Store dao.Store

	// ParseOptions controls dialect-sensitive lexing, e.g. whether short
	// open tags are accepted, for the /v1/parse endpoint.
	ParseOptions phpsyn.Options

	// Secret is the secret used to sign and verify bearer tokens.
	Secret []byte

	// UnauthDelay is the amount of time a request pauses before responding
	// with an HTTP-401 or HTTP-500, to deprioritize such requests.
	UnauthDelay time.Duration

	// Log receives one line per handled request.
	Log *plog.Logger
}

type EndpointFunc func(req *http.Request) result.Result

func (api API) httpEndpoint(ep EndpointFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		log := middle.LoggerFromContext(req.Context(), api.Log)

		defer panicTo500(w, log)
		r := ep(req)

		if r.Status == 0 {
			log.Errorf("endpoint result was never populated")
			http.Error(w, "An internal server error occurred", http.StatusInternalServerError)
			return
		}

		if r.Status == http.StatusUnauthorized || r.Status == http.StatusInternalServerError {
			time.Sleep(api.UnauthDelay)
		}

		r.WriteResponse(w, log)
	}
}

func panicTo500(w http.ResponseWriter, log *plog.Logger) {
	if panicErr := recover(); panicErr != nil {
		result.InternalServerError("panic: %v", panicErr).WriteResponse(w, log)
	}
}

// remoteIP strips the ephemeral client port off of an http.Request's
// RemoteAddr.
func remoteIP(req *http.Request) string {
	parts := strings.SplitN(req.RemoteAddr, ":", 2)
	return parts[0]
}
