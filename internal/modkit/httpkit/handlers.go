// Package httpkit is the handler and routing toolkit modules build on. Modules
// import it instead of the platform http package
package httpkit

import (
	"net/http"

	phttp "marquee/internal/platform/net/http"
	"marquee/internal/platform/net/http/bind"
)

type (
	// Response is a return style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Call adapts a handler that reads no body. A returned Response is written as
// is, anything else is wrapped in a 200 envelope
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		return respond(out, err)
	})
}

// JSON adapts a handler whose body is decoded and validated into T
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.Decode[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		out, err := fn(r, in)
		return respond(out, err)
	})
}

func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}

// Body decodes an optional JSON body into T, an empty body gives the zero value
func Body[T any](r *http.Request) (T, error) {
	return bind.Decode[T](r, bind.Options{Optional: true})
}

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Post mounts a handler under POST that reads its own body, if any
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, Call(h)) }

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, Call(h)) }

// PostJSON mounts a handler under POST with a required JSON body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}
