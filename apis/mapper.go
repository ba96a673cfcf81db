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

package apis

import (
	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/reason"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe resolver from a kind and an
// optional reason to everything the edges of the pipeline need to know
// about it: the HTTP status to write, the gRPC code to return, and the
// notice text to show the user.
type Mapper interface {
	// HTTPStatus returns the HTTP status for k and r.
	HTTPStatus(k code.Code, r reason.Reason) int

	// GRPCStatus returns the gRPC code for k and r.
	GRPCStatus(k code.Code, r reason.Reason) codes.Code

	// Notice returns the user-facing notification text for k and r.
	// An empty string means "use the error's own message".
	Notice(k code.Code, r reason.Reason) string

	// Resolve returns all three in one call.
	Resolve(k code.Code, r reason.Reason) Resolution

	// Explain returns a human-readable trace of which rule matched.
	Explain(k code.Code, r reason.Reason) string
}

// Resolution is the mapper's answer for a single error.
type Resolution struct {
	HTTP   int
	GRPC   codes.Code
	Notice string
}
