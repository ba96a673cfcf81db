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

// Command mockserver serves the pet store mock routes over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dirpx.dev/apiflow/internal/config"
	"dirpx.dev/apiflow/internal/logging"
	"dirpx.dev/apiflow/mockapi"
	"dirpx.dev/apiflow/mockapi/gen"
	"dirpx.dev/apiflow/mockserver"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mockserver:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	log.Debug("configuration loaded", "config", cfg.String())

	tokens, err := mockapi.NewTokens(cfg.TokenSecret, mockapi.DefaultTokenTTL)
	if err != nil {
		return err
	}
	table, err := mockapi.NewBackend(gen.New(nil), tokens).Table()
	if err != nil {
		return err
	}
	lo, hi := cfg.MockDelay()
	h, err := mockserver.New(mockserver.Config{
		Table:  table,
		Delay:  mockapi.Jitter{Min: lo, Max: hi},
		Logger: log,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.MockServerAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("mock server listening", "addr", srv.Addr, "routes", len(table.Routes()))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
