// Package http provides helpers for writing JSON responses with a consistent shape.
// Success responses carry the payload directly; error responses carry the
// {"error": ..., "details": ...} wire form from platform/errors
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "gitfolio/internal/platform/errors"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondOK writes a 200 with the payload as the body
func RespondOK(w stdhttp.ResponseWriter, _ *stdhttp.Request, data any) {
	JSON(w, stdhttp.StatusOK, data)
}

// RespondError maps a project error onto a status and an error body and writes it
func RespondError(w stdhttp.ResponseWriter, _ *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	JSON(w, status, perr.WireFrom(err))
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent || resp.Body == nil {
		w.WriteHeader(status)
		return
	}

	// If Body is an error, derive status from error *before* writing
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	JSON(w, status, resp.Body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and body
func Error(err error) Response { return Response{Body: err} }

// Headers returns a bodyless 200 response carrying only the given headers,
// used by the cache-priming HEAD endpoints
func Headers(h stdhttp.Header) Response {
	return Response{Status: stdhttp.StatusOK, Header: h}
}
