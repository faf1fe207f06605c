// Package result contains the Result type that parse-service API handlers
// return instead of writing directly to an http.ResponseWriter, so that
// logging and JSON marshaling happen in exactly one place.
package result

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dekarrin/phpsyn/internal/plog"
)

type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// OK returns a Result for an HTTP-200 response.
func OK(respObj interface{}, internalMsg ...interface{}) Result {
	return build(http.StatusOK, respObj, "OK", internalMsg)
}

// NoContent returns a Result for an HTTP-204 response.
func NoContent(internalMsg ...interface{}) Result {
	return build(http.StatusNoContent, nil, "no content", internalMsg)
}

// BadRequest returns a Result for an HTTP-400 response with userMsg as the
// client-visible error.
func BadRequest(userMsg string, internalMsg ...interface{}) Result {
	return buildErr(http.StatusBadRequest, userMsg, "bad request", internalMsg)
}

// Unauthorized returns a Result for an HTTP-401 response along with the
// WWW-Authenticate header the parse service expects clients to honor.
func Unauthorized(userMsg string, internalMsg ...interface{}) Result {
	if userMsg == "" {
		userMsg = "You are not authorized to do that"
	}
	return buildErr(http.StatusUnauthorized, userMsg, "unauthorized", internalMsg).
		WithHeader("WWW-Authenticate", `Bearer realm="phpsyn parse service"`)
}

// ErrBody returns a Result for an error response carrying body as its JSON
// payload instead of the standard ErrorResponse shape, used where the
// client-facing failure has its own structured format (e.g. a syntax error
// record).
func ErrBody(status int, body interface{}, internalMsg ...interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: formatInternalMsg(fmt.Sprintf("HTTP-%d", status), internalMsg),
		resp:        body,
	}
}

// NotFound returns a Result for an HTTP-404 response.
func NotFound(internalMsg ...interface{}) Result {
	return buildErr(http.StatusNotFound, "The requested resource was not found", "not found", internalMsg)
}

// InternalServerError returns a Result for an HTTP-500 response.
func InternalServerError(internalMsg ...interface{}) Result {
	return buildErr(http.StatusInternalServerError, "An internal server error occurred", "internal server error", internalMsg)
}

func build(status int, respObj interface{}, fallback string, internalMsg []interface{}) Result {
	return Result{
		IsJSON:      true,
		Status:      status,
		InternalMsg: formatInternalMsg(fallback, internalMsg),
		resp:        respObj,
	}
}

func buildErr(status int, userMsg, fallback string, internalMsg []interface{}) Result {
	return Result{
		IsJSON:      true,
		IsErr:       true,
		Status:      status,
		InternalMsg: formatInternalMsg(fallback, internalMsg),
		resp:        ErrorResponse{Error: userMsg, Status: status},
	}
}

// TextErr is like BadRequest etc. but writes the response as plain text
// instead of JSON, used for responses produced outside the normal handler
// flow (e.g. recovering from a panic).
func TextErr(status int, userMsg, internalMsg string, v ...interface{}) Result {
	return Result{
		IsErr:       true,
		Status:      status,
		InternalMsg: fmt.Sprintf(internalMsg, v...),
		resp:        userMsg,
	}
}

func formatInternalMsg(fallback string, args []interface{}) string {
	if len(args) == 0 {
		return fallback
	}
	format, ok := args[0].(string)
	if !ok {
		return fallback
	}
	return fmt.Sprintf(format, args[1:]...)
}

// Result is the outcome of an API handler: an HTTP status, an optional JSON
// or plain-text body, and an internal message logged but never shown to the
// client.
type Result struct {
	Status      int
	IsErr       bool
	IsJSON      bool
	InternalMsg string

	resp interface{}
	hdrs [][2]string

	respJSONBytes []byte
}

// WithHeader returns a copy of r with name: val added as a response header.
func (r Result) WithHeader(name, val string) Result {
	cp := r
	cp.hdrs = append(append([][2]string{}, r.hdrs...), [2]string{name, val})
	return cp
}

// PrepareMarshaledResponse marshals r's body to JSON ahead of time, so a
// marshal failure can be turned into an error response before any bytes are
// written to the client.
func (r *Result) PrepareMarshaledResponse() error {
	if r.respJSONBytes != nil || !r.IsJSON || r.Status == http.StatusNoContent {
		return nil
	}
	var err error
	r.respJSONBytes, err = json.Marshal(r.resp)
	return err
}

// WriteResponse writes r to w as its JSON or plain-text body, and logs the
// outcome via log.
func (r Result) WriteResponse(w http.ResponseWriter, log *plog.Logger) {
	if r.Status == 0 {
		panic("result not populated")
	}

	if err := r.PrepareMarshaledResponse(); err != nil {
		panic(fmt.Sprintf("could not marshal response: %s", err.Error()))
	}

	var respBytes []byte
	if r.IsJSON {
		w.Header().Set("Content-Type", "application/json")
		respBytes = r.respJSONBytes
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Status != http.StatusNoContent {
			respBytes = []byte(fmt.Sprintf("%v", r.resp))
		}
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}

	w.WriteHeader(r.Status)
	if r.Status != http.StatusNoContent {
		w.Write(respBytes)
	}

	if log == nil {
		return
	}
	if r.IsErr {
		log.Errorf("HTTP-%d %s", r.Status, r.InternalMsg)
	} else {
		log.Infof("HTTP-%d %s", r.Status, r.InternalMsg)
	}
}
