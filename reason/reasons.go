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

package reason

// Reasons attached by the classifier.
const (
	// StatusUnauthorized: the response status was 401.
	StatusUnauthorized Reason = "status.unauthorized"
	// StatusForbidden: the response status was 403.
	StatusForbidden Reason = "status.forbidden"
	// StatusClient: any other 4xx status.
	StatusClient Reason = "status.client"
	// StatusServer: a 5xx status.
	StatusServer Reason = "status.server"

	// TransportNetwork: the backend could not be reached.
	TransportNetwork Reason = "transport.network"
	// TransportDeadline: the request deadline expired.
	TransportDeadline Reason = "transport.deadline"
	// TransportOther: any other transport failure.
	TransportOther Reason = "transport.other"

	// RequestInvalid: the request descriptor could not be dispatched.
	RequestInvalid Reason = "request.invalid"

	// ResponseInvalid: a successful response body did not decode into the
	// expected type.
	ResponseInvalid Reason = "response.invalid"

	// GRPCPrefix prefixes reasons derived from gRPC status codes,
	// e.g. "grpc.unavailable".
	GRPCPrefix Reason = "grpc"
)
