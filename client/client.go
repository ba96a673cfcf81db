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

// Package client runs a request through the middleware chain, the
// transport (usually the mock dispatcher in front of the real network) and
// the classifier.
//
//	c, _ := client.New(client.Config{Transport: adapter, Classifier: cls})
//	pet, err := client.Send[model.Pet](ctx, c, request.Get("/pet/{petId}",
//	    request.WithParam("petId", "7")))
package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"dirpx.dev/apiflow"
	"dirpx.dev/apiflow/classify"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/middleware"
	"dirpx.dev/apiflow/reason"
	"dirpx.dev/apiflow/request"
	"dirpx.dev/apiflow/transport"
)

// ErrNoTransport is returned by New without a transport.
var ErrNoTransport = errors.New("client: transport is required")

// Config configures a Client.
type Config struct {
	Transport  transport.Transport
	Classifier *classify.Classifier

	// Middleware runs inside the default chain (Logging, ContentType,
	// CacheBust) and outside per-call middleware.
	Middleware []middleware.Middleware

	// Clock feeds the cache-bust stamp; nil uses time.Now.
	Clock func() time.Time

	Logger *slog.Logger
}

// Client is safe for concurrent use.
type Client struct {
	tr   transport.Transport
	cls  *classify.Classifier
	base []middleware.Middleware
	log  *slog.Logger
}

// New returns a Client. A nil Classifier gets a default one with no
// notifier or navigator.
func New(cfg Config) (*Client, error) {
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	cls := cfg.Classifier
	if cls == nil {
		cls = classify.New(classify.Config{Logger: log})
	}
	base := []middleware.Middleware{
		middleware.Logging(log),
		middleware.ContentType(),
		middleware.CacheBust(cfg.Clock),
	}
	base = append(base, cfg.Middleware...)
	return &Client{tr: cfg.Transport, cls: cls, base: base, log: log}, nil
}

// Classifier returns the classifier in use.
func (c *Client) Classifier() *classify.Classifier { return c.cls }

// Do sends d and returns the body of a successful response. Any failure is
// a *apiflow.Error that has already been surfaced by the classifier. d is
// not modified.
func (c *Client) Do(ctx context.Context, d *request.Descriptor, mws ...middleware.Middleware) ([]byte, error) {
	if d == nil {
		return nil, c.cls.Failure(ctx, nil)
	}
	ctx = classify.WithGuard(ctx)
	chain := make([]middleware.Middleware, 0, len(c.base)+len(mws))
	chain = append(append(chain, c.base...), mws...)

	resp, err := middleware.Chain(chain...)(c.send)(ctx, d.Clone())
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// send is the innermost handler: the transport call plus classification,
// so per-call middleware observes the classified outcome.
func (c *Client) send(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
	resp, err := c.tr.RoundTrip(ctx, d)
	if err != nil {
		return nil, c.cls.Failure(ctx, err)
	}
	if _, err := c.cls.Response(ctx, resp); err != nil {
		return nil, c.cls.Failure(ctx, err)
	}
	return resp, nil
}

// Send is Do followed by decoding the body into T.
func Send[T any](ctx context.Context, c *Client, d *request.Descriptor, mws ...middleware.Middleware) (T, error) {
	var out T
	body, err := c.Do(ctx, d, mws...)
	if err != nil {
		return out, err
	}
	if len(body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.WarnContext(ctx, "undecodable response body",
			slog.String("request_id", d.ID), slog.String("path", d.Path), slog.Any("err", err))
		e := apiflow.E(code.ClientError, "Invalid response body",
			apiflow.WithReasonOption(reason.ResponseInvalid),
			apiflow.WithCauseOption(err))
		return out, c.cls.Failure(classify.WithGuard(ctx), e)
	}
	return out, nil
}
