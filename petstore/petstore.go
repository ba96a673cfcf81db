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

// Package petstore is the typed API surface for the pet store backend.
// Every call goes through a client.Client, so mock routing, middleware
// and classification apply uniformly; errors are *apiflow.Error.
package petstore

import (
	"context"
	"strconv"

	"dirpx.dev/apiflow/client"
	"dirpx.dev/apiflow/middleware"
	"dirpx.dev/apiflow/request"
)

// Option configures an API.
type Option func(*API)

// WithAPIKey sets the api_key header sent on pet deletion.
func WithAPIKey(key string) Option {
	return func(a *API) { a.apiKey = key }
}

// WithMiddleware adds per-call middleware, such as a loading indicator, to
// every request.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(a *API) { a.mws = append(a.mws, mws...) }
}

// API groups the pet, store and user operations.
type API struct {
	Pet   *PetAPI
	Store *StoreAPI
	User  *UserAPI

	c      *client.Client
	apiKey string
	mws    []middleware.Middleware
}

// New returns an API bound to c.
func New(c *client.Client, opts ...Option) *API {
	a := &API{c: c}
	for _, opt := range opts {
		opt(a)
	}
	a.Pet = &PetAPI{a}
	a.Store = &StoreAPI{a}
	a.User = &UserAPI{a}
	return a
}

func send[T any](ctx context.Context, a *API, d *request.Descriptor) (T, error) {
	return client.Send[T](ctx, a.c, d, a.mws...)
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
