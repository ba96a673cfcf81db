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

// Package mapper resolves a classified error's kind (dirpx.dev/apiflow/code)
// and optional reason (dirpx.dev/apiflow/reason) to what the edges of the
// pipeline need: the HTTP status to write, the gRPC code to return and the
// notice text to show the user.
//
// # Resolution model
//
// Each of the three dimensions is resolved independently, in this order:
//
//  1. exact override for the kind;
//  2. per-kind longest-prefix-match (LPM) on the reason;
//  3. per-kind default;
//  4. fallback (500 / codes.Internal / empty notice).
//
// Prefix rules are segment-aware: reasons are "."-separated and "*" matches
// exactly one segment, so "status.forbidden" matches "status.forbidden.admin"
// but "status.f" matches nothing.
//
// # Defaults
//
//	unauthorized   401  Unauthenticated   "Session expired, please log in again"
//	client_error   400  InvalidArgument   (the error's own message)
//	network_error  503  Unavailable       "Network error, please check your connection"
//	timeout_error  504  DeadlineExceeded  "Request timed out, please try again"
//	unknown        500  Unknown           "An unexpected error occurred"
//
// A few reasons refine these: status.forbidden gives 403 / PermissionDenied
// and status.server gives 502 / Internal.
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithNoticeDefault(code.TimeoutError, "The pet shop is slow today"),
//	    mapper.WithHTTPPrefix(code.ClientError, "status.client", 422),
//	)
//
// A Mapper is a snapshot: all inputs are copied during New and it is safe to
// share across goroutines.
//
// # Diagnostics
//
// Explain returns a human-readable trace of which tier matched each
// dimension and, for prefix matches, the pattern used.
package mapper
