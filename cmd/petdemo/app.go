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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"dirpx.dev/apiflow/classify"
	"dirpx.dev/apiflow/client"
	"dirpx.dev/apiflow/internal/config"
	"dirpx.dev/apiflow/middleware"
	"dirpx.dev/apiflow/mockapi"
	"dirpx.dev/apiflow/mockapi/gen"
	"dirpx.dev/apiflow/nav"
	"dirpx.dev/apiflow/persist"
	"dirpx.dev/apiflow/petstore"
	"dirpx.dev/apiflow/theme"
	"dirpx.dev/apiflow/transport"
	"dirpx.dev/apiflow/ui"
)

const (
	themeDark = theme.Dark

	demoAPIKey = "special-key"
)

var routes = []nav.Route{
	{Name: "home", Path: "/pages/index/index"},
	{Name: "login", Path: "/pages/login/index"},
	{Name: "pets", Path: "/pages/pets/index"},
	{Name: "orders", Path: "/pages/orders/index"},
	{Name: "profile", Path: "/pages/profile/index"},
}

type app struct {
	log *slog.Logger
	out io.Writer

	router  *nav.Router
	toast   *ui.Toast
	loading *ui.Loading
	message *ui.Message
	theme   *theme.Store
	cls     *classify.Classifier

	// api sends the api_key header; guest does not.
	api   *petstore.API
	guest *petstore.API

	detach []func()
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger, storage persist.Storage, out io.Writer) (*app, error) {
	router, err := nav.New(routes, nav.WithLogger(log))
	if err != nil {
		return nil, err
	}
	a := &app{
		log:     log,
		out:     out,
		router:  router,
		toast:   ui.NewToast(ui.WithPage(router.CurrentPath)),
		loading: ui.NewLoading(ui.WithPage(router.CurrentPath)),
		message: ui.NewMessage(ui.WithPage(router.CurrentPath)),
		theme:   theme.New(nil),
	}

	plugin := &persist.Plugin{Storage: storage, Logger: log}
	for _, s := range []persist.Store{a.toast, a.loading, a.message, a.theme} {
		detach, err := plugin.Attach(ctx, s)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("petdemo: restore %s: %w", s.ID(), err)
		}
		a.detach = append(a.detach, detach)
	}
	a.theme.Init()

	tokens, err := mockapi.NewTokens(cfg.TokenSecret, mockapi.DefaultTokenTTL)
	if err != nil {
		a.Close()
		return nil, err
	}
	table, err := mockapi.NewBackend(gen.New(nil), tokens).Table()
	if err != nil {
		a.Close()
		return nil, err
	}
	lo, hi := cfg.MockDelay()
	tr := mockapi.NewAdapter(mockapi.Config{
		Table: table,
		Fallback: transport.NewHTTP(transport.Config{
			BaseURL:   cfg.APIBaseURL,
			Timeout:   cfg.RequestTimeout(),
			RateLimit: cfg.RateLimit,
			Logger:    log,
		}),
		Enabled: cfg.MockEnabled,
		Delay:   mockapi.Jitter{Min: lo, Max: hi},
		Logger:  log,
	})

	a.cls = classify.New(classify.Config{
		Notifier:  a.toast,
		Navigator: router,
		Logger:    log,
	})
	c, err := client.New(client.Config{Transport: tr, Classifier: a.cls, Logger: log})
	if err != nil {
		a.Close()
		return nil, err
	}
	loading := middleware.Loading(middleware.LoadingConfig{
		Delay:     cfg.LoadingDelay(),
		Indicator: a.loading,
	})
	a.api = petstore.New(c, petstore.WithAPIKey(demoAPIKey), petstore.WithMiddleware(loading))
	a.guest = petstore.New(c, petstore.WithMiddleware(loading))
	return a, nil
}

// Close stops pending redirects and persistence.
func (a *app) Close() {
	if a.cls != nil {
		a.cls.Close()
	}
	for _, d := range a.detach {
		d()
	}
	a.detach = nil
}

// Run executes one flow, or all of them in order.
func (a *app) Run(ctx context.Context, flow string) error {
	flows := map[string]func(context.Context) error{
		"purchase": a.purchase,
		"errors":   a.errorsFlow,
		"crud":     a.crud,
	}
	if flow == "all" {
		for _, name := range []string{"purchase", "crud", "errors"} {
			if err := a.runOne(ctx, name, flows[name]); err != nil {
				return err
			}
		}
		return nil
	}
	fn, ok := flows[flow]
	if !ok {
		return fmt.Errorf("unknown flow %q", flow)
	}
	return a.runOne(ctx, flow, fn)
}

func (a *app) runOne(ctx context.Context, name string, fn func(context.Context) error) error {
	a.printf("== %s (theme %s, page %s)\n", name, a.theme.Get().Mode, a.router.CurrentPath())
	if err := fn(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (a *app) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

// wait blocks for d or until ctx ends.
func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return context.Cause(ctx)
	}
}

var errUnexpected = errors.New("unexpected result")
