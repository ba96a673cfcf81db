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

// Package request defines the per-call Request Descriptor that flows
// through the middleware chain into a transport.
//
// A Descriptor is built fresh for every call:
//
//	d, err := request.New(http.MethodGet, "/pet/{petId}",
//	    request.WithParam("petId", "7"),
//	    request.WithHeader("api_key", "special-key"),
//	)
//
// Middleware receives a Clone and annotates that; the caller's value is
// never modified after dispatch.
package request
