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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/request"
	"dirpx.dev/apiflow/transport"
)

// ErrNoFallback is returned for an unmatched request when the adapter has
// no fallback transport.
var ErrNoFallback = errors.New("mockapi: no route matched and no fallback transport")

// Jitter is the latency window added before a mock response, drawn
// uniformly from [Min, Max).
type Jitter struct {
	Min time.Duration
	Max time.Duration
}

// DefaultJitter mirrors a typical mobile round trip.
var DefaultJitter = Jitter{Min: 200 * time.Millisecond, Max: 600 * time.Millisecond}

// Config configures an Adapter.
type Config struct {
	Table *Table

	// Fallback receives every request the table does not match, and every
	// request when Enabled is false.
	Fallback transport.Transport

	Enabled bool
	Delay   Jitter

	Logger *slog.Logger

	// Rand drives the jitter; nil seeds one from the clock.
	Rand *rand.Rand
}

// Adapter is a transport.Transport that answers from a Table.
type Adapter struct {
	cfg Config
	log *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewAdapter returns an Adapter.
func NewAdapter(cfg Config) *Adapter {
	a := &Adapter{cfg: cfg, log: cfg.Logger, rng: cfg.Rand}
	if a.log == nil {
		a.log = slog.New(slog.DiscardHandler)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return a
}

// RoundTrip implements transport.Transport.
func (a *Adapter) RoundTrip(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
	if !a.cfg.Enabled {
		return a.forward(ctx, d)
	}
	path, err := d.Resolve()
	if err != nil {
		return nil, errors.Join(transport.ErrRequest, err)
	}
	m, ok := a.cfg.Table.Lookup(d.Method, path)
	if !ok {
		return a.forward(ctx, d)
	}

	if err := a.sleep(ctx); err != nil {
		return nil, err
	}

	call := Call{
		Method:  d.Method,
		Path:    path,
		Pattern: m.Route.Pattern,
		Params:  m.Params,
		Query:   d.Query,
		Header:  d.Header,
	}
	var res Result
	if call.Body, err = decodeBody(d.Body); err != nil {
		res = Failure(http.StatusBadRequest, "Invalid JSON body")
	} else {
		res = invoke(ctx, m.Route.Handler, call)
	}

	a.log.DebugContext(ctx, "mock request",
		slog.String("request_id", d.ID),
		slog.String("method", d.Method),
		slog.String("path", path),
		slog.String("pattern", m.Route.Pattern),
		slog.Int("status", res.Status()),
	)
	resp, err := envelope.JSON(res.Status(), res.Body())
	if err != nil {
		return envelope.JSON(http.StatusInternalServerError,
			envelope.ErrorBody{Code: http.StatusInternalServerError, Message: "mock: encode response: " + err.Error()})
	}
	return resp, nil
}

func (a *Adapter) forward(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
	if a.cfg.Fallback == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFallback, d)
	}
	return a.cfg.Fallback.RoundTrip(ctx, d)
}

// delay draws one jitter value. Each request draws independently and
// sleeps on its own timer.
func (a *Adapter) delay() time.Duration {
	j := a.cfg.Delay
	if j.Max <= j.Min {
		return j.Min
	}
	a.mu.Lock()
	n := a.rng.Int63n(int64(j.Max - j.Min))
	a.mu.Unlock()
	return j.Min + time.Duration(n)
}

func (a *Adapter) sleep(ctx context.Context) error {
	dur := a.delay()
	if dur <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(dur)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return errors.Join(transport.ErrTimeout, ctx.Err())
		}
		return ctx.Err()
	}
}

// invoke runs h, turning a panic into a 500 failure.
func invoke(ctx context.Context, h Handler, c Call) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Failure(http.StatusInternalServerError, fmt.Sprintf("mock handler panic: %v", p))
		}
	}()
	return h(ctx, c)
}

// decodeBody normalizes a Go body into its JSON-decoded form.
func decodeBody(body any) (any, error) {
	var raw []byte
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(b) == 0 {
			return nil, nil
		}
		raw = b
	case json.RawMessage:
		raw = b
	default:
		var err error
		if raw, err = json.Marshal(b); err != nil {
			return nil, err
		}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

var _ transport.Transport = (*Adapter)(nil)
