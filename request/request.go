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

package request

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidMethod is returned for verbs outside GET, POST, PUT, PATCH
	// and DELETE.
	ErrInvalidMethod = errors.New("request: invalid method")

	// ErrUnboundParam is returned by Resolve when a path placeholder has no
	// value in PathParams.
	ErrUnboundParam = errors.New("request: unbound path parameter")
)

// Descriptor describes one outbound call.
type Descriptor struct {
	// ID is unique per Descriptor; it correlates logs and scopes the
	// escalation guard. Clone keeps it.
	ID string

	Method string

	// Path is a template such as "/pet/{petId}/uploadImage".
	Path string

	PathParams map[string]string
	Query      url.Values
	Header     http.Header

	// Body is encoded as JSON by transports. Nil means no body.
	Body any
}

// Option configures a Descriptor during construction.
type Option func(*Descriptor)

// New returns a Descriptor for method and path. The method is upper-cased
// and must be one of the supported verbs.
func New(method, path string, opts ...Option) (*Descriptor, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	if !ValidMethod(m) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, method)
	}
	return build(m, path, opts), nil
}

func build(method, path string, opts []Option) *Descriptor {
	d := &Descriptor{
		ID:     uuid.NewString(),
		Method: method,
		Path:   path,
		Query:  url.Values{},
		Header: http.Header{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Get, Post, Put, Patch and Delete build descriptors for fixed verbs.
func Get(path string, opts ...Option) *Descriptor { return build(http.MethodGet, path, opts) }

func Post(path string, opts ...Option) *Descriptor { return build(http.MethodPost, path, opts) }

func Put(path string, opts ...Option) *Descriptor { return build(http.MethodPut, path, opts) }

func Patch(path string, opts ...Option) *Descriptor { return build(http.MethodPatch, path, opts) }

func Delete(path string, opts ...Option) *Descriptor { return build(http.MethodDelete, path, opts) }

// ValidMethod reports whether m is a supported, upper-case verb.
func ValidMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Mutating reports whether the verb carries a body (POST, PUT, PATCH).
func (d *Descriptor) Mutating() bool {
	switch d.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// ReadOnly reports whether the verb is GET.
func (d *Descriptor) ReadOnly() bool { return d.Method == http.MethodGet }

// Validate checks the method and that every placeholder is bound.
func (d *Descriptor) Validate() error {
	if !ValidMethod(d.Method) {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, d.Method)
	}
	_, err := d.Resolve()
	return err
}

// Resolve substitutes every "{name}" in Path with its path-escaped value.
// A "{" without a closing "}" is kept literally.
func (d *Descriptor) Resolve() (string, error) {
	p := d.Path
	if !strings.Contains(p, "{") {
		return p, nil
	}
	var b strings.Builder
	b.Grow(len(p))
	for {
		open := strings.IndexByte(p, '{')
		if open < 0 {
			break
		}
		end := strings.IndexByte(p[open:], '}')
		if end < 0 {
			break
		}
		end += open
		name := p[open+1 : end]
		v, ok := d.PathParams[name]
		if !ok {
			return "", fmt.Errorf("%w: %q in %q", ErrUnboundParam, name, d.Path)
		}
		b.WriteString(p[:open])
		b.WriteString(url.PathEscape(v))
		p = p[end+1:]
	}
	b.WriteString(p)
	return b.String(), nil
}

// URL joins base with the resolved path and the encoded query.
func (d *Descriptor) URL(base string) (string, error) {
	path, err := d.Resolve()
	if err != nil {
		return "", err
	}
	u := strings.TrimRight(base, "/") + path
	if q := d.Query.Encode(); q != "" {
		u += "?" + q
	}
	return u, nil
}

// Clone returns a deep copy of the maps; Body is shared as-is.
func (d *Descriptor) Clone() *Descriptor {
	cp := *d
	if d.PathParams != nil {
		cp.PathParams = make(map[string]string, len(d.PathParams))
		for k, v := range d.PathParams {
			cp.PathParams[k] = v
		}
	}
	cp.Query = cloneValues(d.Query)
	cp.Header = d.Header.Clone()
	if cp.Header == nil {
		cp.Header = http.Header{}
	}
	return &cp
}

// String renders "METHOD path" for logs.
func (d *Descriptor) String() string {
	return d.Method + " " + d.Path
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
