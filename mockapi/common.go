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

package mockapi

import (
	"context"
	"net/http"

	"dirpx.dev/apiflow/envelope"
)

// CommonRoutes are the GET and POST catch-alls. They echo the request in a
// base envelope and must be registered last.
func CommonRoutes() []Route {
	return []Route{
		On(http.MethodGet, "/*", echo),
		On(http.MethodPost, "/*", echo),
	}
}

func echo(_ context.Context, c Call) Result {
	query := make(map[string]any, len(c.Query))
	for k, vs := range c.Query {
		if len(vs) == 1 {
			query[k] = vs[0]
		} else {
			query[k] = vs
		}
	}
	return Success(envelope.Base(map[string]any{
		"message": "Mock response for " + c.Method + " " + c.Path,
		"params": map[string]any{
			"query": query,
			"body":  c.Body,
		},
	}))
}
