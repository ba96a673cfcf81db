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

// Package mockapi serves pet store requests from an in-process route table
// instead of the network.
//
// A Table maps a verb and a path pattern to a Handler. Patterns use
// "{name}" for a bound segment and a trailing "*" for a catch-all:
//
//	GET  /pet/{petId}
//	GET  /*
//
// When several patterns match, the one registered first wins, so specific
// routes are registered before wildcard fallbacks. Handlers return a
// Result, either Success(payload) or Failure(status, body); validation
// problems are Failures, never Go errors.
//
// Adapter is a transport.Transport that dispatches matched requests to the
// table after a random delay and forwards everything else, untouched, to a
// fallback transport.
package mockapi
