// Package middle contains middleware for use with the phpsyn parse service.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/dekarrin/phpsyn/internal/plog"
	"github.com/dekarrin/phpsyn/server/dao"
	"github.com/dekarrin/phpsyn/server/result"
	"github.com/dekarrin/phpsyn/server/token"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthAPIKey
)

type requestLogKey struct{}

// RequestID returns Middleware that generates a correlation ID for the
// request, tags every subsequent log line for it via plog.Logger.
// WithRequestID, sets it as the X-Request-Id response header, and stores the
// tagged logger in the request's context for LoggerFromContext to retrieve.
//
// This should be the outermost middleware in the chain so that every other
// handler and middleware logs under the same request ID.
func RequestID(log *plog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.NewRandom()
			idStr := id.String()
			if err != nil {
				idStr = "unknown"
			}

			reqLog := log.WithRequestID(idStr)
			w.Header().Set("X-Request-Id", idStr)

			ctx := context.WithValue(r.Context(), requestLogKey{}, reqLog)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerFromContext returns the per-request logger that RequestID attached
// to ctx, or fallback if RequestID has not run for this request.
func LoggerFromContext(ctx context.Context, fallback *plog.Logger) *plog.Logger {
	if l, ok := ctx.Value(requestLogKey{}).(*plog.Logger); ok {
		return l
	}
	return fallback
}

// AuthHandler is middleware that accepts a request, extracts the bearer
// token used for authentication, and looks up the dao.APIKey it names.
//
// AuthAPIKey will contain the looked-up key and AuthLoggedIn whether the
// caller presented a valid one (only meaningful for optional auth; for
// required auth, failing to authenticate ends the request before it reaches
// the next handler).
type AuthHandler struct {
	db            dao.APIKeyRepository
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	log           *plog.Logger
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var key dao.APIKey

	log := LoggerFromContext(req.Context(), ah.log)

	tok, err := token.Get(req)
	if err != nil {
		if ah.required {
			r := result.Unauthorized("", err.Error())
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w, log)
			return
		}
	} else {
		lookupKey, err := token.Validate(req.Context(), tok, ah.secret, ah.db)
		if err != nil {
			if ah.required {
				r := result.Unauthorized("", err.Error())
				time.Sleep(ah.unauthedDelay)
				r.WriteResponse(w, log)
				return
			}
		} else {
			key = lookupKey
			loggedIn = true
		}
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthAPIKey, key)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

// RequireAuth returns Middleware that rejects any request without a valid
// bearer token for a non-revoked key with an HTTP-401.
func RequireAuth(db dao.APIKeyRepository, secret []byte, unauthDelay time.Duration, log *plog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      true,
			log:           log,
			next:          next,
		}
	}
}

// OptionalAuth returns Middleware that looks up the caller's key if one is
// presented but does not reject the request if it is absent or invalid.
func OptionalAuth(db dao.APIKeyRepository, secret []byte, unauthDelay time.Duration, log *plog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{
			db:            db,
			secret:        secret,
			unauthedDelay: unauthDelay,
			required:      false,
			log:           log,
			next:          next,
		}
	}
}

// DontPanic returns a Middleware that recovers from a panic in next, writing
// out a generic HTTP-500 response and logging the panic and stack trace
// instead of letting it crash the server.
func DontPanic(log *plog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w, LoggerFromContext(r.Context(), log))
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter, log *plog.Logger) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w, log)
		return true
	}
	return false
}
