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

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/request"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "https://petstore3.swagger.io/api/v3"

// DefaultTimeout bounds a single round trip.
const DefaultTimeout = 60 * time.Second

// Config configures HTTP.
type Config struct {
	BaseURL string

	// Timeout bounds each round trip; zero means DefaultTimeout, negative
	// disables it.
	Timeout time.Duration

	// RateLimit is the sustained requests per second; zero disables
	// limiting. Burst defaults to 1.
	RateLimit float64
	Burst     int

	Client *http.Client
	Logger *slog.Logger
}

// HTTP is a Transport over net/http.
type HTTP struct {
	base    string
	timeout time.Duration
	client  *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewHTTP returns an HTTP transport.
func NewHTTP(cfg Config) *HTTP {
	t := &HTTP{
		base:    cfg.BaseURL,
		timeout: cfg.Timeout,
		client:  cfg.Client,
		log:     cfg.Logger,
	}
	if t.base == "" {
		t.base = DefaultBaseURL
	}
	if t.timeout == 0 {
		t.timeout = DefaultTimeout
	}
	if t.client == nil {
		t.client = http.DefaultClient
	}
	if t.log == nil {
		t.log = slog.New(slog.DiscardHandler)
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		t.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return t
}

// RoundTrip implements Transport.
func (t *HTTP) RoundTrip(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := t.newRequest(ctx, d)
	if err != nil {
		return nil, errors.Join(ErrRequest, err)
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil, err
			}
			// Wait also fails early when the deadline cannot be met.
			return nil, errors.Join(ErrTimeout, err)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.log.DebugContext(ctx, "http round trip failed",
			slog.String("request_id", d.ID), slog.String("url", req.URL.String()), slog.Any("err", err))
		return nil, wrapFailure(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapFailure(ctx, err)
	}
	t.log.DebugContext(ctx, "http round trip",
		slog.String("request_id", d.ID),
		slog.String("method", d.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)
	return &envelope.Response{Status: resp.StatusCode, Header: resp.Header, Body: body}, nil
}

func (t *HTTP) newRequest(ctx context.Context, d *request.Descriptor) (*http.Request, error) {
	if !request.ValidMethod(d.Method) {
		return nil, fmt.Errorf("%w: %q", request.ErrInvalidMethod, d.Method)
	}
	u, err := d.URL(t.base)
	if err != nil {
		return nil, err
	}
	var body io.Reader
	switch b := d.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, d.Method, u, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range d.Header {
		req.Header[k] = append([]string(nil), vs...)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// wrapFailure attaches ErrTimeout or ErrNetwork to err. Cancellation by the
// caller is returned as-is.
func wrapFailure(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return errors.Join(ErrTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return errors.Join(ErrNetwork, err)
}
