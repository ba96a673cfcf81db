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

// Command petdemo drives the pet store API through the full request
// pipeline: mock routing, middleware, classification, notices and the
// session-expiry redirect.
//
//	petdemo -flow purchase
//	petdemo -flow errors
//	MOCK_ENABLED=false petdemo -flow crud
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dirpx.dev/apiflow/internal/config"
	"dirpx.dev/apiflow/internal/logging"
	"dirpx.dev/apiflow/persist"
)

func main() {
	flow := flag.String("flow", "all", "flow to run: purchase, errors, crud or all")
	dark := flag.Bool("dark", false, "switch the persisted theme to dark")
	flag.Parse()

	if err := run(*flow, *dark); err != nil {
		fmt.Fprintln(os.Stderr, "petdemo:", err)
		os.Exit(1)
	}
}

func run(flow string, dark bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	a, err := newApp(ctx, cfg, log, storage, os.Stdout)
	if err != nil {
		return err
	}
	defer a.Close()

	if dark {
		a.theme.Toggle(themeDark)
	}
	return a.Run(ctx, flow)
}

func openStorage(ctx context.Context, cfg *config.Config) (persist.Storage, func(), error) {
	if cfg.StorageDriver != config.StorageRedis {
		return persist.NewMemory(), func() {}, nil
	}
	r := persist.NewRedis(persist.RedisConfig{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, nil, err
	}
	return r, func() { _ = r.Close() }, nil
}
