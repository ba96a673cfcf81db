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

// Package segtrie implements a segment-aware trie shared by the mapper and
// the mock route table.
//
// Keys are split on a single separator byte. A pattern segment may be:
//
//	literal   matches itself
//	*         matches exactly one segment
//	{name}    matches exactly one segment and binds it to name
//	**        (last segment only) matches one or more remaining segments
//
// Two lookups are offered. Match is a longest-prefix match used for dotted
// reasons ("storage.pg" matches "storage.pg.connect"). Lookup returns every
// pattern that matches the whole key, in insertion order, used for paths
// ("/pet/{petId}" matches "/pet/7").
//
// A Trie is built once and then only read; it is safe for concurrent reads
// after the last Insert.
package segtrie

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidPattern is returned by Insert for empty segments, a misplaced
// "**", a malformed "{name}" or a segment the validator rejects.
var ErrInvalidPattern = errors.New("segtrie: invalid pattern")

const (
	wildOne  = "*"
	wildTail = "**"
)

// Option configures a Trie at construction.
type Option func(*config)

type config struct {
	sep   byte
	valid func(string) bool
}

// WithSeparator sets the segment separator (default '.').
func WithSeparator(sep byte) Option {
	return func(c *config) { c.sep = sep }
}

// WithSegmentValidator restricts literal segments, both in patterns and in
// looked-up keys. A key segment failing it ends that branch of the search.
func WithSegmentValidator(fn func(string) bool) Option {
	return func(c *config) { c.valid = fn }
}

// Trie maps segment patterns to values of type T.
type Trie[T any] struct {
	cfg  config
	root *node[T]
	seq  int
}

type node[T any] struct {
	lit  map[string]*node[T]
	one  *node[T] // "*" and "{name}"
	tail *node[T] // "**"
	ents []entry[T]
}

type entry[T any] struct {
	val     T
	pattern string
	binds   []string // one per single-segment wildcard, "" for "*"
	seq     int
}

// Hit is one full match returned by Lookup.
type Hit[T any] struct {
	Value   T
	Pattern string
	Params  map[string]string
}

// New returns an empty trie.
func New[T any](opts ...Option) *Trie[T] {
	cfg := config{sep: '.', valid: func(s string) bool { return s != "" }}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Trie[T]{cfg: cfg, root: &node[T]{}}
}

// Insert associates pattern with val. Inserting the same pattern twice keeps
// both entries; Match returns the first, Lookup returns both in order.
func (t *Trie[T]) Insert(pattern string, val T) error {
	if t == nil {
		return ErrInvalidPattern
	}
	segs := t.split(pattern)
	var binds []string
	cur := t.root
	for i, s := range segs {
		switch {
		case s == "":
			return ErrInvalidPattern
		case s == wildTail:
			if i != len(segs)-1 {
				return ErrInvalidPattern
			}
			if cur.tail == nil {
				cur.tail = &node[T]{}
			}
			cur = cur.tail
		case s == wildOne:
			binds = append(binds, "")
			cur = cur.oneChild()
		case s[0] == '{':
			name, ok := paramName(s)
			if !ok {
				return ErrInvalidPattern
			}
			binds = append(binds, name)
			cur = cur.oneChild()
		default:
			if !t.cfg.valid(s) {
				return ErrInvalidPattern
			}
			if cur.lit == nil {
				cur.lit = make(map[string]*node[T])
			}
			next, ok := cur.lit[s]
			if !ok {
				next = &node[T]{}
				cur.lit[s] = next
			}
			cur = next
		}
	}
	cur.ents = append(cur.ents, entry[T]{val: val, pattern: pattern, binds: binds, seq: t.seq})
	t.seq++
	return nil
}

func (n *node[T]) oneChild() *node[T] {
	if n.one == nil {
		n.one = &node[T]{}
	}
	return n.one
}

// Match returns the value of the deepest pattern that is a segment-wise
// prefix of key. At equal depth a literal segment beats a wildcard.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(key)
	return v, ok
}

// MatchWithPattern is Match that also reports the pattern as inserted.
func (t *Trie[T]) MatchWithPattern(key string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	segs := t.split(key)
	best := -1
	var bestEnt *entry[T]

	var walk func(n *node[T], i int)
	walk = func(n *node[T], i int) {
		if len(n.ents) > 0 && i > best {
			best, bestEnt = i, &n.ents[0]
		}
		if i >= len(segs) || !t.cfg.valid(segs[i]) {
			return
		}
		if next, ok := n.lit[segs[i]]; ok {
			walk(next, i+1)
		}
		if n.one != nil {
			walk(n.one, i+1)
		}
		if n.tail != nil && len(n.tail.ents) > 0 && len(segs) > best {
			best, bestEnt = len(segs), &n.tail.ents[0]
		}
	}
	walk(t.root, 0)

	if bestEnt == nil {
		return zero, false, ""
	}
	return bestEnt.val, true, bestEnt.pattern
}

// Lookup returns every pattern that matches all of key, ordered by insertion.
func (t *Trie[T]) Lookup(key string) []Hit[T] {
	if t == nil {
		return nil
	}
	segs := t.split(key)

	type found struct {
		ent  *entry[T]
		caps []string
	}
	var hits []found

	var walk func(n *node[T], i int, caps []string)
	walk = func(n *node[T], i int, caps []string) {
		if i == len(segs) {
			for k := range n.ents {
				hits = append(hits, found{ent: &n.ents[k], caps: caps})
			}
			return
		}
		if !t.cfg.valid(segs[i]) {
			return
		}
		if next, ok := n.lit[segs[i]]; ok {
			walk(next, i+1, caps)
		}
		if n.one != nil {
			c := make([]string, len(caps), len(caps)+1)
			copy(c, caps)
			walk(n.one, i+1, append(c, segs[i]))
		}
		if n.tail != nil {
			for _, s := range segs[i:] {
				if !t.cfg.valid(s) {
					return
				}
			}
			for k := range n.tail.ents {
				hits = append(hits, found{ent: &n.tail.ents[k], caps: caps})
			}
		}
	}
	walk(t.root, 0, nil)

	sort.Slice(hits, func(a, b int) bool { return hits[a].ent.seq < hits[b].ent.seq })

	out := make([]Hit[T], 0, len(hits))
	for _, h := range hits {
		var params map[string]string
		for k, name := range h.ent.binds {
			if name == "" || k >= len(h.caps) {
				continue
			}
			if params == nil {
				params = make(map[string]string, len(h.ent.binds))
			}
			params[name] = h.caps[k]
		}
		out = append(out, Hit[T]{Value: h.ent.val, Pattern: h.ent.pattern, Params: params})
	}
	return out
}

// split trims one leading and one trailing separator and splits the rest.
// The empty key and a lone separator both yield no segments.
func (t *Trie[T]) split(s string) []string {
	sep := string(t.cfg.sep)
	s = strings.TrimPrefix(s, sep)
	s = strings.TrimSuffix(s, sep)
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

func paramName(s string) (string, bool) {
	if len(s) < 3 || s[len(s)-1] != '}' {
		return "", false
	}
	name := s[1 : len(s)-1]
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return "", false
		}
	}
	return name, true
}
