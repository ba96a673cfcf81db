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

// Package state provides Box, a mutex-guarded value with change
// subscriptions and JSON snapshots. UI stores and the theme store are
// built on it so the persistence plugin can treat them uniformly.
package state

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Box holds one value of type T. Every mutation is a complete assignment
// under the lock; subscribers run after the lock is released, in
// subscription order.
type Box[T any] struct {
	id string

	mu   sync.Mutex
	v    T
	subs []sub[T]
	next int
}

type sub[T any] struct {
	id int
	fn func(T)
}

// New returns a Box identified by id holding initial.
func New[T any](id string, initial T) *Box[T] {
	return &Box[T]{id: id, v: initial}
}

// ID returns the store identifier used as the persistence key.
func (b *Box[T]) ID() string { return b.id }

// Get returns the current value.
func (b *Box[T]) Get() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.v
}

// Set replaces the value and notifies subscribers.
func (b *Box[T]) Set(v T) {
	b.mu.Lock()
	b.v = v
	subs := b.snapshotSubs()
	b.mu.Unlock()
	notify(subs, v)
}

// Update applies fn to a copy of the value, stores the result and notifies
// subscribers.
func (b *Box[T]) Update(fn func(*T)) T {
	b.mu.Lock()
	v := b.v
	fn(&v)
	b.v = v
	subs := b.snapshotSubs()
	b.mu.Unlock()
	notify(subs, v)
	return v
}

// Subscribe registers fn for change notifications and returns a function
// that removes it.
func (b *Box[T]) Subscribe(fn func(T)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.subs = append(b.subs, sub[T]{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// OnChange is Subscribe without the value, for observers that only need
// to know that something changed.
func (b *Box[T]) OnChange(fn func()) (cancel func()) {
	return b.Subscribe(func(T) { fn() })
}

// Snapshot encodes the current value as JSON.
func (b *Box[T]) Snapshot() ([]byte, error) {
	v := b.Get()
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("state: snapshot %s: %w", b.id, err)
	}
	return data, nil
}

// Restore decodes data over the current value and notifies subscribers.
// Fields absent from data keep their current value.
func (b *Box[T]) Restore(data []byte) error {
	v := b.Get()
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("state: restore %s: %w", b.id, err)
	}
	b.Set(v)
	return nil
}

func (b *Box[T]) snapshotSubs() []sub[T] {
	if len(b.subs) == 0 {
		return nil
	}
	return append([]sub[T](nil), b.subs...)
}

func notify[T any](subs []sub[T], v T) {
	for _, s := range subs {
		s.fn(v)
	}
}
