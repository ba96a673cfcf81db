/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mockapi

import (
	"context"
	"net/http"
	"net/url"

	"dirpx.dev/apiflow/envelope"
)

// Result is what a Handler returns: exactly one of a success payload or an
// explicit (status, body) failure.
type Result struct {
	status  int
	body    any
	failure bool
}

// Success returns payload with status 200.
func Success(payload any) Result {
	return Result{status: http.StatusOK, body: payload}
}

// Failure returns status with the standard {code, message} body.
func Failure(status int, message string) Result {
	return Result{status: status, body: envelope.ErrorBody{Code: status, Message: message}, failure: true}
}

// FailureBody returns status with an arbitrary body.
func FailureBody(status int, body any) Result {
	return Result{status: status, body: body, failure: true}
}

// IsFailure reports whether r is a Failure.
func (r Result) IsFailure() bool { return r.failure }

// Status returns the HTTP status to respond with.
func (r Result) Status() int { return r.status }

// Body returns the payload or failure body.
func (r Result) Body() any { return r.body }

// Call is the input a Handler sees.
type Call struct {
	Method  string
	Path    string // resolved request path
	Pattern string // matched route pattern
	Params  map[string]string
	Query   url.Values
	Header  http.Header

	// Body is the request body decoded from JSON: map[string]any, []any,
	// a scalar, or nil.
	Body any
}

// Param returns the bound path parameter name.
func (c Call) Param(name string) string { return c.Params[name] }

// Data returns the body as an object; a non-object body yields an empty map.
func (c Call) Data() map[string]any {
	if m, ok := c.Body.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Handler produces the response for a matched route.
type Handler func(ctx context.Context, c Call) Result

// Route is one mock route entry.
type Route struct {
	Method  string
	Pattern string
	Handler Handler
}

// On is shorthand for a Route literal.
func On(method, pattern string, h Handler) Route {
	return Route{Method: method, Pattern: pattern, Handler: h}
}
