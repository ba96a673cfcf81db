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

// Package persist keeps one storage entry per named store: the snapshot is
// read into the store when it is attached and rewritten on every change.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// DefaultExclude lists store ids that are never persisted.
var DefaultExclude = []string{"temp"}

// DefaultWriteTimeout bounds each snapshot write.
const DefaultWriteTimeout = 2 * time.Second

// ErrNotFound is returned by Storage.Get for a missing key.
var ErrNotFound = errors.New("persist: not found")

// Storage is a key-value backend.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
}

// Store is a named state container that can be snapshotted.
type Store interface {
	ID() string
	Snapshot() ([]byte, error)
	Restore(data []byte) error
	OnChange(fn func()) (cancel func())
}

// Plugin attaches stores to a Storage.
type Plugin struct {
	Storage Storage
	// Exclude lists ids left alone; nil means DefaultExclude.
	Exclude []string
	// WriteTimeout bounds each write; zero means DefaultWriteTimeout.
	WriteTimeout time.Duration
	Logger       *slog.Logger
}

// Excluded reports whether id is not persisted.
func (p *Plugin) Excluded(id string) bool {
	ex := p.Exclude
	if ex == nil {
		ex = DefaultExclude
	}
	return slices.Contains(ex, id)
}

// Attach restores s from storage, when a snapshot exists, and then writes a
// fresh snapshot after every change. The returned detach stops the writes.
// Excluded stores are left untouched and detach is a no-op.
func (p *Plugin) Attach(ctx context.Context, s Store) (detach func(), err error) {
	if p.Excluded(s.ID()) {
		return func() {}, nil
	}
	if p.Storage == nil {
		return nil, errors.New("persist: no storage")
	}
	log := p.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	data, err := p.Storage.Get(ctx, s.ID())
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("persist: read %s: %w", s.ID(), err)
	case len(data) > 0:
		if err := s.Restore(data); err != nil {
			return nil, err
		}
		log.DebugContext(ctx, "store restored", slog.String("store", s.ID()))
	}

	timeout := p.WriteTimeout
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	base := context.WithoutCancel(ctx)
	cancel := s.OnChange(func() {
		snap, err := s.Snapshot()
		if err != nil {
			log.Error("store snapshot failed", slog.String("store", s.ID()), slog.Any("err", err))
			return
		}
		wctx, done := context.WithTimeout(base, timeout)
		defer done()
		if err := p.Storage.Set(wctx, s.ID(), snap); err != nil {
			log.Error("store write failed", slog.String("store", s.ID()), slog.Any("err", err))
		}
	})
	return cancel, nil
}
