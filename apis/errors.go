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

// KindedError is an error classified into one of the pipeline kinds.
//
// The returned kind must already be canonical (see the code package).
// Adapters treat an empty or unknown kind as "unknown".
type KindedError interface {
	error

	// ErrorKind returns the machine-readable kind, e.g. "client_error".
	ErrorKind() string
}

// ReasonedError refines a kind with a dot-separated reason such as
// "status.forbidden". An empty reason is allowed.
type ReasonedError interface {
	error

	ErrorReason() string
}

// CodedError exposes the numeric status or business code that accompanied
// the failure. Zero means "no code".
type CodedError interface {
	error

	ErrorCode() int
}
