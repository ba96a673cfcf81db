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

// Package middleware composes cross-cutting request behavior around a
// Handler: default headers, cache busting, loading indicators and logging.
//
// Chain(a, b, c)(h) enters a, b, c in order and leaves them in reverse, so
// the first middleware listed sees the request first and the outcome last.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/request"
)

// Handler sends a descriptor and returns the raw response.
type Handler func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error)

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// Chain composes ms so that ms[0] is outermost. Nil entries are skipped.
func Chain(ms ...Middleware) Middleware {
	return func(h Handler) Handler {
		for i := len(ms) - 1; i >= 0; i-- {
			if ms[i] != nil {
				h = ms[i](h)
			}
		}
		return h
	}
}

// Header and query names set by this package.
const (
	ContentTypeJSON = "application/json"
	CacheBustParam  = "_t"
)

// ContentType sets Content-Type: application/json on POST, PUT and PATCH
// requests that do not carry one.
func ContentType() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
			if d.Mutating() && d.Header.Get("Content-Type") == "" {
				if d.Header == nil {
					d.Header = make(http.Header)
				}
				d.Header.Set("Content-Type", ContentTypeJSON)
			}
			return next(ctx, d)
		}
	}
}

// CacheBust adds _t=<unix ms> to GET requests. Values are strictly
// increasing across calls even when the clock does not advance. A nil now
// uses time.Now.
func CacheBust(now func() time.Time) Middleware {
	if now == nil {
		now = time.Now
	}
	var last atomic.Int64
	stamp := func() int64 {
		for {
			prev := last.Load()
			v := now().UnixMilli()
			if v <= prev {
				v = prev + 1
			}
			if last.CompareAndSwap(prev, v) {
				return v
			}
		}
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
			if d.ReadOnly() {
				if d.Query == nil {
					d.Query = url.Values{}
				}
				d.Query.Set(CacheBustParam, strconv.FormatInt(stamp(), 10))
			}
			return next(ctx, d)
		}
	}
}

// Indicator is a loading overlay, such as *ui.Loading.
type Indicator interface {
	Show(text string)
	Close()
}

// Loading defaults.
const (
	DefaultLoadingText  = "Loading..."
	DefaultLoadingDelay = 300 * time.Millisecond
)

// LoadingConfig configures Loading.
type LoadingConfig struct {
	// Delay before the indicator appears. Zero or negative shows it at once.
	Delay time.Duration
	// Text defaults to "Loading...".
	Text      string
	Indicator Indicator
}

// Loading shows cfg.Indicator while the request is in flight. With a
// positive Delay the indicator only appears if the request is still
// running when it elapses. The pending timer is stopped and the indicator
// closed on every exit path.
func Loading(cfg LoadingConfig) Middleware {
	if cfg.Text == "" {
		cfg.Text = DefaultLoadingText
	}
	return func(next Handler) Handler {
		if cfg.Indicator == nil {
			return next
		}
		return func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
			stop := schedule(cfg.Delay, func() { cfg.Indicator.Show(cfg.Text) })
			defer func() {
				stop()
				cfg.Indicator.Close()
			}()
			return next(ctx, d)
		}
	}
}

// LoadingFlag is a per-request loading state.
type LoadingFlag struct {
	v atomic.Bool
}

// Set updates the flag.
func (f *LoadingFlag) Set(v bool) { f.v.Store(v) }

// Loading reports the flag.
func (f *LoadingFlag) Loading() bool { return f.v.Load() }

// DelayLoading raises flag once delay has elapsed and lowers it when the
// request settles. The flag never rises for requests faster than delay.
func DelayLoading(delay time.Duration, flag *LoadingFlag) Middleware {
	return func(next Handler) Handler {
		if flag == nil {
			return next
		}
		return func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
			stop := schedule(delay, func() { flag.Set(true) })
			defer func() {
				stop()
				flag.Set(false)
			}()
			return next(ctx, d)
		}
	}
}

// schedule runs fn after delay, or right away when delay <= 0. The
// returned stop waits for a running fn so that cleanup always happens
// after it.
func schedule(delay time.Duration, fn func()) (stop func()) {
	if delay <= 0 {
		fn()
		return func() {}
	}
	var mu sync.Mutex
	stopped := false
	t := time.AfterFunc(delay, func() {
		mu.Lock()
		defer mu.Unlock()
		if !stopped {
			fn()
		}
	})
	return func() {
		t.Stop()
		mu.Lock()
		stopped = true
		mu.Unlock()
	}
}

// Logging logs each request and its outcome at debug level.
func Logging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
			attrs := []any{
				slog.String("request_id", d.ID),
				slog.String("method", d.Method),
				slog.String("path", d.Path),
			}
			logger.DebugContext(ctx, "request", attrs...)
			start := time.Now()
			resp, err := next(ctx, d)
			attrs = append(attrs, slog.Duration("elapsed", time.Since(start)))
			switch {
			case err != nil:
				logger.DebugContext(ctx, "request failed", append(attrs, slog.Any("err", err))...)
			case resp != nil:
				logger.DebugContext(ctx, "response", append(attrs, slog.Int("status", resp.Status))...)
			}
			return resp, err
		}
	}
}
