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

// Package mock provides a recording fake Transport for tests. It never
// performs network I/O.
package mock

import (
	"context"
	"net/http"
	"sync"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/request"
	"dirpx.dev/apiflow/transport"
)

// Response is a canned reply. When Error is set it is returned instead.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
	Error  error
}

// Config controls construction of a Transport.
type Config struct {
	// DefaultResponse is used when nothing was configured for a request.
	// Nil means 200 with {"status":"success"}.
	DefaultResponse *Response
}

// Transport records every descriptor it receives and replies from the
// responses configured with On. It is safe for concurrent use.
type Transport struct {
	mu        sync.Mutex
	responses map[string]*Response
	def       *Response
	calls     []*request.Descriptor
}

// New creates a fake transport.
func New(cfg Config) *Transport {
	def := cfg.DefaultResponse
	if def == nil {
		def = &Response{Status: http.StatusOK, Body: []byte(`{"status":"success"}`)}
	}
	return &Transport{responses: make(map[string]*Response), def: def}
}

// On starts configuration of a reply for method and the resolved path.
func (t *Transport) On(method, path string) *ResponseBuilder {
	return &ResponseBuilder{t: t, key: method + " " + path}
}

// RoundTrip implements transport.Transport. The descriptor is cloned before
// being recorded.
func (t *Transport) RoundTrip(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
	path, err := d.Resolve()
	if err != nil {
		path = d.Path
	}

	t.mu.Lock()
	t.calls = append(t.calls, d.Clone())
	r, ok := t.responses[d.Method+" "+path]
	if !ok {
		r = t.def
	}
	t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Error != nil {
		return nil, r.Error
	}
	h := r.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	return &envelope.Response{Status: r.Status, Header: h, Body: append([]byte(nil), r.Body...)}, nil
}

// Calls returns the descriptors received so far.
func (t *Transport) Calls() []*request.Descriptor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*request.Descriptor(nil), t.calls...)
}

// Reset forgets recorded calls; configured replies are kept.
func (t *Transport) Reset() {
	t.mu.Lock()
	t.calls = nil
	t.mu.Unlock()
}

// ResponseBuilder configures one reply.
type ResponseBuilder struct {
	t   *Transport
	key string
}

// Return sets the reply.
func (b *ResponseBuilder) Return(r *Response) *Transport {
	b.t.mu.Lock()
	b.t.responses[b.key] = r
	b.t.mu.Unlock()
	return b.t
}

// ReturnError makes the request fail with err.
func (b *ResponseBuilder) ReturnError(err error) *Transport {
	return b.Return(&Response{Error: err})
}

var _ transport.Transport = (*Transport)(nil)
