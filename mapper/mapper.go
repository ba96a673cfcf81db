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

package mapper

import (
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/apiflow/apis"
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/internal/segtrie"
	"dirpx.dev/apiflow/reason"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build process:
//
//  1. Seed the builder with package defaults (HTTP, gRPC, notice).
//  2. Apply opts in order.
//  3. Normalize and validate every reason prefix.
//  4. Build per-kind segment tries for each dimension.
//  5. Copy all maps so the snapshot shares nothing with the builder.
//
// An error means an invalid prefix.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	httpT, err := compile("HTTP", b.http)
	if err != nil {
		return nil, err
	}
	grpcT, err := compile("gRPC", b.grpc)
	if err != nil {
		return nil, err
	}
	noticeT, err := compile("notice", b.notice)
	if err != nil {
		return nil, err
	}
	return &mapper{http: httpT, grpc: grpcT, notice: noticeT}, nil
}

// MustNew is New that panics on error. Intended for package-level vars.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

var defaultMapper = sync.OnceValue(func() apis.Mapper { return MustNew() })

// Default returns a shared Mapper built from the package defaults only.
func Default() apis.Mapper { return defaultMapper() }

// mapper combines per-kind defaults, exact overrides and reason-prefix
// tries for each resolved dimension. Lookups are O(depth) and safe for
// concurrent use once constructed.
type mapper struct {
	http   table[int]
	grpc   table[codes.Code]
	notice table[string]
}

// table is the frozen form of rules.
type table[V any] struct {
	defaults  map[code.Code]V
	overrides map[code.Code]V
	tries     map[code.Code]*segtrie.Trie[V]
	fallback  V
}

const (
	srcOverride = "override"
	srcPrefix   = "prefix"
	srcDefault  = "default"
	srcFallback = "fallback"
)

// resolve applies the precedence override > prefix > default > fallback.
func (t table[V]) resolve(c code.Code, r reason.Reason) (v V, source, pattern string) {
	if v, ok := t.overrides[c]; ok {
		return v, srcOverride, ""
	}
	if tr, ok := t.tries[c]; ok && r != reason.Empty {
		if v, ok, pat := tr.MatchWithPattern(string(r)); ok {
			return v, srcPrefix, pat
		}
	}
	if v, ok := t.defaults[c]; ok {
		return v, srcDefault, ""
	}
	return t.fallback, srcFallback, ""
}

func compile[V any](dim string, r *rules[V]) (table[V], error) {
	t := table[V]{
		defaults:  freeze(r.defaults),
		overrides: freeze(r.overrides),
		fallback:  r.fallback,
	}
	for c, list := range r.prefixes {
		if len(list) == 0 {
			continue
		}
		tr := segtrie.New[V](segtrie.WithSegmentValidator(validPrefixSegment))
		for _, pr := range list {
			p, err := normalizeAndValidatePrefix(pr.prefix)
			if err != nil {
				return table[V]{}, fmt.Errorf("mapper: invalid %s reason-prefix %q for kind %q: %w", dim, pr.prefix, c, err)
			}
			if err := tr.Insert(p, pr.val); err != nil {
				return table[V]{}, fmt.Errorf("mapper: cannot insert %s prefix %q for kind %q: %w", dim, p, c, err)
			}
		}
		if t.tries == nil {
			t.tries = make(map[code.Code]*segtrie.Trie[V], len(r.prefixes))
		}
		t.tries[c] = tr
	}
	return t, nil
}

// HTTPStatus resolves an HTTP status for kind c and reason r. It is never zero.
func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	v, _, _ := m.http.resolve(c, r)
	return v
}

// GRPCStatus resolves a gRPC code with the same precedence as HTTPStatus.
func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	v, _, _ := m.grpc.resolve(c, r)
	return v
}

// Notice resolves the user-facing notification text.
func (m *mapper) Notice(c code.Code, r reason.Reason) string {
	v, _, _ := m.notice.resolve(c, r)
	return v
}

// Resolve keeps the three answers consistent for a single error.
func (m *mapper) Resolve(c code.Code, r reason.Reason) apis.Resolution {
	return apis.Resolution{
		HTTP:   m.HTTPStatus(c, r),
		GRPC:   m.GRPCStatus(c, r),
		Notice: m.Notice(c, r),
	}
}

// Explain produces a textual trace of how each dimension was resolved:
//
//	kind="unauthorized" reason="status.forbidden"
//	http: source=prefix pattern="status.forbidden" -> 403
//	grpc: source=prefix pattern="status.forbidden" -> PERMISSIONDENIED(7)
//	notice: source=default -> "Session expired, please log in again"
//
// It is meant for inspection and logs, not for machine parsing.
func (m *mapper) Explain(c code.Code, r reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q reason=%q\n", c, r)

	v, src, pat := m.http.resolve(c, r)
	_, _ = fmt.Fprintf(&b, "http: %s -> %d\n", origin(src, pat), v)

	g, src, pat := m.grpc.resolve(c, r)
	_, _ = fmt.Fprintf(&b, "grpc: %s -> %s(%d)\n", origin(src, pat), strings.ToUpper(g.String()), int(g))

	n, src, pat := m.notice.resolve(c, r)
	_, _ = fmt.Fprintf(&b, "notice: %s -> %q", origin(src, pat), n)

	return b.String()
}

func origin(src, pat string) string {
	if src == srcPrefix {
		return fmt.Sprintf("source=%s pattern=%q", src, pat)
	}
	return "source=" + src
}

// normalizeAndValidatePrefix makes a prefix canonical. Empty prefixes and
// prefixes made only of "*" are rejected as too generic.
func normalizeAndValidatePrefix(raw string) (string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	allWild := true
	for _, seg := range strings.Split(p, ".") {
		if seg != "*" && !validPrefixSegment(seg) {
			return "", fmt.Errorf("invalid segment %q", seg)
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}

// validPrefixSegment reports whether seg matches [a-z][a-z0-9_]*.
func validPrefixSegment(seg string) bool {
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}

func freeze[K comparable, V any](src map[K]V) map[K]V {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
