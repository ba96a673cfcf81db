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

package mockapi

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"dirpx.dev/apiflow/internal/segtrie"
	"dirpx.dev/apiflow/request"
)

// ErrInvalidRoute is returned by NewTable for a bad verb, pattern or a nil
// handler.
var ErrInvalidRoute = errors.New("mockapi: invalid route")

// Table is an immutable route table.
type Table struct {
	routes []Route
	byVerb map[string]*segtrie.Trie[int]
}

// Match is a successful table lookup.
type Match struct {
	Route Route
	// Params holds the decoded path parameters.
	Params map[string]string
}

// NewTable compiles routes. Registration order decides between patterns
// that match the same path.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byVerb: make(map[string]*segtrie.Trie[int]),
	}
	for _, r := range routes {
		m := strings.ToUpper(r.Method)
		if !request.ValidMethod(m) || r.Handler == nil || !strings.HasPrefix(r.Pattern, "/") {
			return nil, fmt.Errorf("%w: %s %s", ErrInvalidRoute, r.Method, r.Pattern)
		}
		r.Method = m
		tr, ok := t.byVerb[m]
		if !ok {
			tr = segtrie.New[int](segtrie.WithSeparator('/'))
			t.byVerb[m] = tr
		}
		if err := tr.Insert(triePattern(r.Pattern), len(t.routes)); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %v", ErrInvalidRoute, r.Method, r.Pattern, err)
		}
		t.routes = append(t.routes, r)
	}
	return t, nil
}

// MustTable is NewTable that panics on error.
func MustTable(routes ...Route) *Table {
	t, err := NewTable(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the first registered route matching method and path.
// path is the escaped form, as produced by request.Descriptor.Resolve, so
// an escaped "/" inside a parameter stays within its segment.
func (t *Table) Lookup(method, path string) (Match, bool) {
	if t == nil {
		return Match{}, false
	}
	tr, ok := t.byVerb[strings.ToUpper(method)]
	if !ok {
		return Match{}, false
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	hits := tr.Lookup(path)
	if len(hits) == 0 {
		return Match{}, false
	}
	return Match{Route: t.routes[hits[0].Value], Params: unescape(hits[0].Params)}, true
}

// unescape decodes captured segments in place. A malformed escape keeps
// the raw segment.
func unescape(params map[string]string) map[string]string {
	for k, v := range params {
		if dec, err := url.PathUnescape(v); err == nil {
			params[k] = dec
		}
	}
	return params
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// triePattern turns a trailing "*" into the trie's catch-all.
func triePattern(p string) string {
	if strings.HasSuffix(p, "/*") {
		return p + "*"
	}
	return p
}
