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
	"encoding/json"
	"math/rand"
	"testing"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/mockapi/gen"
	"dirpx.dev/apiflow/request"
	"dirpx.dev/apiflow/transport"
)

const testSecret = "test-secret"

func newBackend(t *testing.T) *Backend {
	t.Helper()
	tokens, err := NewTokens(testSecret, 0)
	if err != nil {
		t.Fatal(err)
	}
	return NewBackend(gen.New(rand.New(rand.NewSource(7))), tokens)
}

func newAdapter(t *testing.T, fallback transport.Transport) *Adapter {
	t.Helper()
	table, err := newBackend(t).Table()
	if err != nil {
		t.Fatal(err)
	}
	return NewAdapter(Config{Table: table, Fallback: fallback, Enabled: true})
}

func send(t *testing.T, a *Adapter, d *request.Descriptor) *envelope.Response {
	t.Helper()
	resp, err := a.RoundTrip(context.Background(), d)
	if err != nil {
		t.Fatalf("%s: %v", d, err)
	}
	return resp
}

func decode(t *testing.T, resp *envelope.Response) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(resp.Body, &m); err != nil {
		t.Fatalf("decode %s: %v", resp.Body, err)
	}
	return m
}
