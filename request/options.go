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

import "net/url"

// WithParam binds a "{name}" placeholder.
func WithParam(name, value string) Option {
	return func(d *Descriptor) {
		if d.PathParams == nil {
			d.PathParams = make(map[string]string)
		}
		d.PathParams[name] = value
	}
}

// WithParams binds several placeholders.
func WithParams(params map[string]string) Option {
	return func(d *Descriptor) {
		for k, v := range params {
			WithParam(k, v)(d)
		}
	}
}

// WithQuery appends values for key.
func WithQuery(key string, values ...string) Option {
	return func(d *Descriptor) {
		for _, v := range values {
			d.Query.Add(key, v)
		}
	}
}

// WithQueryValues merges q into the query.
func WithQueryValues(q url.Values) Option {
	return func(d *Descriptor) {
		for k, vs := range q {
			for _, v := range vs {
				d.Query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a header, replacing earlier values.
func WithHeader(key, value string) Option {
	return func(d *Descriptor) { d.Header.Set(key, value) }
}

// WithBody sets the JSON body.
func WithBody(body any) Option {
	return func(d *Descriptor) { d.Body = body }
}

// WithID overrides the generated ID.
func WithID(id string) Option {
	return func(d *Descriptor) { d.ID = id }
}
