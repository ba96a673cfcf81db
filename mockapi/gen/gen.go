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

// Package gen produces randomized but schema-valid mock records.
//
// All randomness comes from the *rand.Rand a Gen is built with, so tests
// can seed it. A Gen is safe for concurrent use.
package gen

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/model"
)

// Categories and Tags are the fixed sets pets draw from.
var (
	Categories = []model.Category{
		{ID: 1, Name: "Dogs"},
		{ID: 2, Name: "Cats"},
		{ID: 3, Name: "Birds"},
		{ID: 4, Name: "Fish"},
		{ID: 5, Name: "Reptiles"},
	}
	Tags = []model.Tag{
		{ID: 1, Name: "friendly"},
		{ID: 2, Name: "playful"},
		{ID: 3, Name: "calm"},
		{ID: 4, Name: "energetic"},
		{ID: 5, Name: "trained"},
		{ID: 6, Name: "house-trained"},
	}
)

// Gen generates mock data.
type Gen struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option configures a Gen.
type Option func(*Gen)

// WithClock replaces time.Now for dates.
func WithClock(now func() time.Time) Option {
	return func(g *Gen) { g.now = now }
}

// New returns a Gen drawing from rng. A nil rng is seeded from the clock.
func New(rng *rand.Rand, opts ...Option) *Gen {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Gen{rng: rng, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Number returns an integer in [min, max). It returns min when max <= min.
func (g *Gen) Number(min, max int) int {
	if max <= min {
		return min
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return min + g.rng.Intn(max-min)
}

// Float returns a float in [0, 1).
func (g *Gen) Float() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64()
}

// ID returns an id in [0, 10000).
func (g *Gen) ID() int { return g.Number(0, 10000) }

// Name returns "<prefix>_<n>" with n in [0, 1000).
func (g *Gen) Name(prefix string) string {
	if prefix == "" {
		prefix = "name"
	}
	return fmt.Sprintf("%s_%d", prefix, g.Number(0, 1000))
}

// Code returns "<prefix>_<n>" with n in [0, 1000).
func (g *Gen) Code(prefix string) string {
	if prefix == "" {
		prefix = "CODE"
	}
	return fmt.Sprintf("%s_%d", prefix, g.Number(0, 1000))
}

// Bool returns a fair coin flip.
func (g *Gen) Bool() bool { return g.Float() > 0.5 }

// Date returns today shifted by dayOffset days as "2006-01-02".
func (g *Gen) Date(dayOffset int) string {
	return g.now().AddDate(0, 0, dayOffset).Format(time.DateOnly)
}

// Datetime returns now shifted by dayOffset days as "2006-01-02 15:04:05".
func (g *Gen) Datetime(dayOffset int) string {
	return g.now().AddDate(0, 0, dayOffset).Format(time.DateTime)
}

// Pick returns a random element of items. items must not be empty.
func Pick[T any](g *Gen, items []T) T {
	return items[g.Number(0, len(items))]
}

// Array calls fn for indexes 0..n-1.
func Array[T any](n int, fn func(i int) T) []T {
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fn(i))
	}
	return out
}

// BaseResponse wraps data in the default success envelope.
func BaseResponse(data any) envelope.Envelope { return envelope.Base(data) }

// ListResponse wraps items in a paginated envelope; total < 0 means len(items).
func ListResponse[T any](items []T, total int, more bool) envelope.Envelope {
	return envelope.List(items, total, more)
}
