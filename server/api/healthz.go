package api

import (
	"net/http"

	"github.com/dekarrin/phpsyn/internal/version"
	"github.com/dekarrin/phpsyn/server/result"
)

// HealthzResponse is the JSON body returned by /healthz.
type HealthzResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HTTPHealthz returns a HandlerFunc reporting the service as live. It
// performs no backend checks; it exists so load balancers and orchestrators
// have a cheap liveness probe that needs no authentication.
func (api API) HTTPHealthz() http.HandlerFunc {
	return api.httpEndpoint(api.epHealthz)
}

func (api API) epHealthz(req *http.Request) result.Result {
	resp := HealthzResponse{
		Status:  "ok",
		Version: version.Current,
	}
	return result.OK(resp, "%s checked health", remoteIP(req))
}
