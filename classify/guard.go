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

package classify

import (
	"context"
	"sync/atomic"
)

type guardKey struct{}

// guard tracks the side effects already produced for one request.
type guard struct {
	escalated atomic.Bool
	notified  atomic.Bool
}

// WithGuard returns a context that limits escalation and notices to one
// each for the lifetime of a request. The client installs it per call.
func WithGuard(ctx context.Context) context.Context {
	if guardFrom(ctx) != nil {
		return ctx
	}
	return context.WithValue(ctx, guardKey{}, &guard{})
}

func guardFrom(ctx context.Context) *guard {
	g, _ := ctx.Value(guardKey{}).(*guard)
	return g
}

// firstEscalation reports whether this is the request's first escalation.
// Without a guard every call is first.
func firstEscalation(ctx context.Context) bool {
	g := guardFrom(ctx)
	return g == nil || g.escalated.CompareAndSwap(false, true)
}

func firstNotice(ctx context.Context) bool {
	g := guardFrom(ctx)
	return g == nil || g.notified.CompareAndSwap(false, true)
}
