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
	"dirpx.dev/apiflow/code"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen.
type Option func(*builder)

// WithHTTPDefault replaces the default HTTP status for kind c.
func WithHTTPDefault(c code.Code, status int) Option {
	return func(b *builder) { b.http.defaults[c] = status }
}

// WithGRPCDefault replaces the default gRPC code for kind c.
func WithGRPCDefault(c code.Code, gc codes.Code) Option {
	return func(b *builder) { b.grpc.defaults[c] = gc }
}

// WithNoticeDefault replaces the default notice for kind c. An empty text
// makes the classifier show the error's own message.
func WithNoticeDefault(c code.Code, text string) Option {
	return func(b *builder) { b.notice.defaults[c] = text }
}

// WithHTTPOverride pins the HTTP status for kind c regardless of reason.
func WithHTTPOverride(c code.Code, status int) Option {
	return func(b *builder) { b.http.overrides[c] = status }
}

// WithGRPCOverride pins the gRPC code for kind c regardless of reason.
func WithGRPCOverride(c code.Code, gc codes.Code) Option {
	return func(b *builder) { b.grpc.overrides[c] = gc }
}

// WithNoticeOverride pins the notice for kind c regardless of reason.
func WithNoticeOverride(c code.Code, text string) Option {
	return func(b *builder) { b.notice.overrides[c] = text }
}

// WithHTTPPrefix adds a longest-prefix-match rule on the reason for kind c.
// "*" matches exactly one segment.
func WithHTTPPrefix(c code.Code, prefix string, status int) Option {
	return func(b *builder) { b.http.addPrefix(c, prefix, status) }
}

// WithGRPCPrefix adds a longest-prefix-match gRPC rule for kind c.
func WithGRPCPrefix(c code.Code, prefix string, gc codes.Code) Option {
	return func(b *builder) { b.grpc.addPrefix(c, prefix, gc) }
}

// WithNoticePrefix adds a longest-prefix-match notice rule for kind c.
func WithNoticePrefix(c code.Code, prefix, text string) Option {
	return func(b *builder) { b.notice.addPrefix(c, prefix, text) }
}
