// Package server exposes table construction and parsing over HTTP: a
// single demo credential guards POST /v1/grammar and POST /v1/parse/{id},
// the same way server/token.go gates TunaQuest's mutating routes, scaled
// down to a library with no user store of its own.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorResponse is the JSON body written for any non-2xx result.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Result is a deferred HTTP response: build one in a handler and let
// writeResponse marshal and write it, so logging/timing wrappers can
// inspect the status before anything reaches the wire.
type Result struct {
	Status int
	IsErr  bool
	resp   interface{}
	hdrs   [][2]string
}

func (r Result) WithHeader(name, val string) Result {
	r.hdrs = append(append([][2]string(nil), r.hdrs...), [2]string{name, val})
	return r
}

// OK returns an HTTP-200 JSON result.
func OK(respObj interface{}) Result {
	return Result{Status: http.StatusOK, resp: respObj}
}

// Created returns an HTTP-201 JSON result.
func Created(respObj interface{}) Result {
	return Result{Status: http.StatusCreated, resp: respObj}
}

// BadRequest returns an HTTP-400 JSON error result.
func BadRequest(userMsg string) Result {
	return errResult(http.StatusBadRequest, userMsg)
}

// NotFound returns an HTTP-404 JSON error result.
func NotFound(userMsg string) Result {
	return errResult(http.StatusNotFound, userMsg)
}

// Unauthorized returns an HTTP-401 JSON error result with the
// WWW-Authenticate header set, per RFC 6750.
func Unauthorized(userMsg string) Result {
	if userMsg == "" {
		userMsg = "you are not authorized to do that"
	}
	return errResult(http.StatusUnauthorized, userMsg).
		WithHeader("WWW-Authenticate", `Bearer realm="lrgen"`)
}

// InternalServerError returns an HTTP-500 JSON error result. userMsg is
// never attacker-controlled input; it is a fixed, operator-facing string.
func InternalServerError(userMsg string) Result {
	return errResult(http.StatusInternalServerError, userMsg)
}

func errResult(status int, userMsg string) Result {
	return Result{
		Status: status,
		IsErr:  true,
		resp:   ErrorResponse{Error: userMsg, Status: status},
	}
}

func (r Result) writeResponse(w http.ResponseWriter) {
	if r.Status == 0 {
		panic("result not populated")
	}

	var body []byte
	if r.Status != http.StatusNoContent {
		b, err := json.Marshal(r.resp)
		if err != nil {
			panic(fmt.Sprintf("could not marshal response: %s", err))
		}
		body = b
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	for _, h := range r.hdrs {
		w.Header().Set(h[0], h[1])
	}
	w.WriteHeader(r.Status)
	if body != nil {
		w.Write(body)
	}
}
