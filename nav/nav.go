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

// Package nav is a small named-route router with history. It is the
// navigation collaborator the classifier resets on authentication expiry.
package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

var (
	// ErrUnknownRoute is returned when navigating to an unregistered name.
	ErrUnknownRoute = errors.New("nav: unknown route")
	// ErrNoHistory is returned by Back on the first page.
	ErrNoHistory = errors.New("nav: no history")
	// ErrAborted wraps the error a BeforeEach guard used to cancel navigation.
	ErrAborted = errors.New("nav: navigation aborted")
)

// Route is one named destination.
type Route struct {
	Name string
	Path string
}

// Guard runs before every navigation. A non-nil error cancels it.
type Guard func(ctx context.Context, to, from Route) error

// Hook runs after every completed navigation.
type Hook func(to, from Route)

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger for navigation events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.log = l
		}
	}
}

// Router keeps a history stack of routes. It is safe for concurrent use;
// guards and hooks run without the lock held.
type Router struct {
	log    *slog.Logger
	routes map[string]Route

	mu      sync.Mutex
	history []Route
	before  []hook[Guard]
	after   []hook[Hook]
	nextID  int
}

type hook[F any] struct {
	id int
	fn F
}

// New registers routes. Paths get a leading '/'. Duplicate or empty names
// are rejected.
func New(routes []Route, opts ...Option) (*Router, error) {
	r := &Router{
		log:    slog.New(slog.DiscardHandler),
		routes: make(map[string]Route, len(routes)),
	}
	for _, rt := range routes {
		if rt.Name == "" {
			return nil, fmt.Errorf("nav: route with path %q has no name", rt.Path)
		}
		if _, dup := r.routes[rt.Name]; dup {
			return nil, fmt.Errorf("nav: duplicate route %q", rt.Name)
		}
		if !strings.HasPrefix(rt.Path, "/") {
			rt.Path = "/" + rt.Path
		}
		r.routes[rt.Name] = rt
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// BeforeEach adds a guard and returns a function removing it.
func (r *Router) BeforeEach(g Guard) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.before = append(r.before, hook[Guard]{id, g})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.before = removeHook(r.before, id)
	}
}

// AfterEach adds a hook and returns a function removing it.
func (r *Router) AfterEach(h Hook) (remove func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.after = append(r.after, hook[Hook]{id, h})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.after = removeHook(r.after, id)
	}
}

func removeHook[F any](hs []hook[F], id int) []hook[F] {
	for i, h := range hs {
		if h.id == id {
			return append(hs[:i:i], hs[i+1:]...)
		}
	}
	return hs
}

// Push navigates to name, keeping history.
func (r *Router) Push(ctx context.Context, name string) error {
	return r.navigate(ctx, name, func(h []Route, to Route) []Route { return append(h, to) })
}

// Replace swaps the current page for name.
func (r *Router) Replace(ctx context.Context, name string) error {
	return r.navigate(ctx, name, func(h []Route, to Route) []Route {
		if len(h) == 0 {
			return []Route{to}
		}
		out := append([]Route(nil), h[:len(h)-1]...)
		return append(out, to)
	})
}

// ReplaceAll navigates to name and clears the history.
func (r *Router) ReplaceAll(name string) error {
	return r.navigate(context.Background(), name, func([]Route, Route) []Route { return nil })
}

// Back returns to the previous page. Guards run for it too.
func (r *Router) Back(ctx context.Context) error {
	r.mu.Lock()
	if len(r.history) < 2 {
		r.mu.Unlock()
		return ErrNoHistory
	}
	to := r.history[len(r.history)-2]
	r.mu.Unlock()
	return r.navigate(ctx, to.Name, func(h []Route, _ Route) []Route {
		if len(h) < 2 {
			return h
		}
		return append([]Route(nil), h[:len(h)-1]...)
	})
}

func (r *Router) navigate(ctx context.Context, name string, apply func([]Route, Route) []Route) error {
	to, ok := r.routes[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}

	r.mu.Lock()
	from := current(r.history)
	guards := make([]Guard, 0, len(r.before))
	for _, h := range r.before {
		guards = append(guards, h.fn)
	}
	r.mu.Unlock()

	for _, g := range guards {
		if err := g(ctx, to, from); err != nil {
			r.log.InfoContext(ctx, "navigation aborted",
				slog.String("from", from.Path), slog.String("to", to.Path), slog.Any("err", err))
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}
	}

	r.mu.Lock()
	h := apply(r.history, to)
	if len(h) == 0 || h[len(h)-1].Name != to.Name {
		h = append(h, to)
	}
	r.history = h
	hooks := make([]Hook, 0, len(r.after))
	for _, a := range r.after {
		hooks = append(hooks, a.fn)
	}
	r.mu.Unlock()

	r.log.DebugContext(ctx, "navigated", slog.String("from", from.Path), slog.String("to", to.Path))
	for _, fn := range hooks {
		fn(to, from)
	}
	return nil
}

// Current returns the active route, zero before the first navigation.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return current(r.history)
}

// CurrentPath returns the active route's path.
func (r *Router) CurrentPath() string { return r.Current().Path }

// History returns a copy of the history stack, oldest first.
func (r *Router) History() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Route(nil), r.history...)
}

func current(h []Route) Route {
	if len(h) == 0 {
		return Route{}
	}
	return h[len(h)-1]
}
