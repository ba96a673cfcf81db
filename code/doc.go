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

// Package code provides parsing, normalization and validation for error kinds.
//
// A kind is the top-level, machine-readable classification the pipeline
// assigns to a failed request: "unauthorized", "client_error",
// "network_error", "timeout_error" or "unknown". Kinds are:
//
//   - short and stable;
//   - lowercased;
//   - underscore-separated;
//   - usable as map keys in mappers and as JSON values in error views.
package code
