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

package code

// Kinds produced by the classifier. Every error that leaves the pipeline is
// exactly one of these.
const (
	// Unauthorized means the backend rejected the caller's credentials
	// (HTTP 401 or 403). It always triggers the re-authentication flow,
	// whatever business code the body carries.
	Unauthorized Code = "unauthorized"

	// ClientError covers every other response with status >= 400, and
	// transport failures that are neither connectivity nor deadline
	// problems. The message embeds the status when there is one.
	ClientError Code = "client_error"

	// NetworkError means the request never produced a status because the
	// backend could not be reached (dial, reset, DNS, gRPC Unavailable).
	NetworkError Code = "network_error"

	// TimeoutError means the request exceeded its deadline before a
	// response arrived.
	TimeoutError Code = "timeout_error"

	// Unknown is the fallback for failures that carry no usable
	// information at all.
	Unknown Code = "unknown"
)

// All returns the built-in kinds in decision-table order.
func All() []Code {
	return []Code{Unauthorized, ClientError, NetworkError, TimeoutError, Unknown}
}
