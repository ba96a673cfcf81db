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

// ErrorView is the shape of a classified error that is safe to expose over
// the wire or in logs.
//
// Code is numeric so that the JSON form matches the backend's error body
// `{ "code": 404, "message": "Pet not found" }`; Kind and Reason are added
// for clients that understand them.
type ErrorView struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// ErrorDescriptor is a flat description of a classified error together with
// its resolved transport statuses, intended for structured logs and gRPC
// status details.
type ErrorDescriptor struct {
	Kind       string `json:"kind"`
	Reason     string `json:"reason,omitempty"`
	Code       int    `json:"code,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
	GRPCCode   int    `json:"grpc_code,omitempty"`
	Message    string `json:"message,omitempty"`
	Notice     string `json:"notice,omitempty"`
}
