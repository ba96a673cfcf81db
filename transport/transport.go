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

// Package transport defines the Transport contract and the real network
// transport over net/http.
package transport

import (
	"context"
	"errors"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/request"
)

// Failure sentinels. Transports join one of these with the underlying
// cause so callers can test with errors.Is.
var (
	// ErrNetwork: the backend could not be reached.
	ErrNetwork = errors.New("transport: network error")
	// ErrTimeout: the deadline expired before a response arrived.
	ErrTimeout = errors.New("transport: timeout")
	// ErrRequest: the descriptor could not be turned into a request.
	ErrRequest = errors.New("transport: invalid request")
)

// Transport sends a descriptor and returns the completed response.
//
// A response with any status is a success at this level; only failures
// that produced no status are returned as errors.
type Transport interface {
	RoundTrip(ctx context.Context, d *request.Descriptor) (*envelope.Response, error)
}

// Func adapts a function to Transport.
type Func func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error)

// RoundTrip calls f.
func (f Func) RoundTrip(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
	return f(ctx, d)
}
