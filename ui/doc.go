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

// Package ui holds the process-wide UI state the request pipeline drives:
// one toast, one loading overlay and one message dialog. Each is a single
// record that a new show call overwrites and Close resets. Rendering is
// left to whoever subscribes.
//
// The containers are passed explicitly; there are no package globals.
package ui

// PageFunc reports the page that owns a newly shown record.
type PageFunc func() string

// Option configures a container.
type Option func(*options)

type options struct {
	page PageFunc
}

// WithPage sets the current-page provider, typically nav.Router.CurrentPath.
func WithPage(fn PageFunc) Option {
	return func(o *options) { o.page = fn }
}

func buildOptions(opts []Option) options {
	o := options{page: func() string { return "" }}
	for _, opt := range opts {
		opt(&o)
	}
	if o.page == nil {
		o.page = func() string { return "" }
	}
	return o
}

// Store ids, also used as persistence keys.
const (
	ToastID   = "global-toast"
	LoadingID = "global-loading"
	MessageID = "global-message"
)
