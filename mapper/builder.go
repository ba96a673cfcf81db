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
	"net/http"

	"dirpx.dev/apiflow/code"
	"google.golang.org/grpc/codes"
)

type prefixRule[V any] struct {
	// prefix is the raw, dot-separated reason prefix (may contain "*").
	// It is normalized and validated when the trie is built.
	prefix string
	val    V
}

// rules collects the user-adjustable inputs for one resolved dimension
// (HTTP status, gRPC code or notice text).
type rules[V any] struct {
	defaults  map[code.Code]V
	overrides map[code.Code]V
	prefixes  map[code.Code][]prefixRule[V]
	fallback  V
}

func newRules[V any](seed map[code.Code]V, fallback V) *rules[V] {
	r := &rules[V]{
		defaults:  make(map[code.Code]V, len(seed)),
		overrides: make(map[code.Code]V),
		prefixes:  make(map[code.Code][]prefixRule[V]),
		fallback:  fallback,
	}
	for k, v := range seed {
		r.defaults[k] = v
	}
	return r
}

func (r *rules[V]) addPrefix(c code.Code, prefix string, v V) {
	r.prefixes[c] = append(r.prefixes[c], prefixRule[V]{prefix: prefix, val: v})
}

type builder struct {
	http   *rules[int]
	grpc   *rules[codes.Code]
	notice *rules[string]
}

// newBuilder seeds a builder with the package defaults.
func newBuilder() *builder {
	b := &builder{
		http:   newRules(defaultHTTP, http.StatusInternalServerError),
		grpc:   newRules(defaultGRPC, codes.Internal),
		notice: newRules(defaultNotice, ""),
	}
	for _, p := range defaultPrefixes {
		b.http.addPrefix(p.kind, p.prefix, p.http)
		b.grpc.addPrefix(p.kind, p.prefix, p.grpc)
	}
	return b
}
