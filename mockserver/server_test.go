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

package mockserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dirpx.dev/apiflow/mockapi"
	"dirpx.dev/apiflow/mockapi/gen"
	"dirpx.dev/apiflow/request"
	"dirpx.dev/apiflow/transport"
)

// fixedClock keeps generated timestamps identical on both sides.
var fixedClock = gen.WithClock(func() time.Time { return time.Date(2025, 6, 15, 14, 30, 5, 0, time.UTC) })

func newTable(t *testing.T, seed int64) *mockapi.Table {
	t.Helper()
	tokens, err := mockapi.NewTokens("secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	table, err := mockapi.NewBackend(gen.New(rand.New(rand.NewSource(seed)), fixedClock), tokens).Table()
	if err != nil {
		t.Fatal(err)
	}
	return table
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	s, err := New(Config{Table: newTable(t, 5)})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any, hdr map[string]string) (int, []byte, http.Header) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, resp.Header
}

func TestNew_RequiresTable(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("missing table must fail")
	}
}

func TestServer_Scenarios(t *testing.T) {
	srv := newServer(t)
	tests := []struct {
		name    string
		method  string
		path    string
		body    any
		hdr     map[string]string
		status  int
		message string
	}{
		{"pet not found", "GET", "/pet/404", nil, nil, 404, "Pet not found"},
		{"delete without key", "DELETE", "/pet/5", nil, nil, 401, "API key is required"},
		{"delete with key", "DELETE", "/pet/5", nil, map[string]string{"api_key": "k"}, 200, "Pet 5 deleted successfully"},
		{"zero quantity", "POST", "/store/order", map[string]any{"petId": 1, "quantity": 0}, nil, 400, "Quantity must be greater than 0"},
		{"bad json", "POST", "/store/order", json.RawMessage(`{`), nil, 400, "Invalid JSON body"},
		{"method not allowed", "PATCH", "/pet/1", nil, nil, 405, "Method PATCH not allowed for /pet/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if raw, ok := tt.body.(json.RawMessage); ok {
				req, _ := http.NewRequest(tt.method, srv.URL+tt.path, bytes.NewReader(raw))
				resp, err := srv.Client().Do(req)
				if err != nil {
					t.Fatal(err)
				}
				defer resp.Body.Close()
				b, _ := io.ReadAll(resp.Body)
				check(t, resp.StatusCode, b, tt.status, tt.message)
				return
			}
			st, b, _ := do(t, srv, tt.method, tt.path, tt.body, tt.hdr)
			check(t, st, b, tt.status, tt.message)
		})
	}
}

func check(t *testing.T, st int, b []byte, wantStatus int, wantMsg string) {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	if st != wantStatus || m["message"] != wantMsg {
		t.Fatalf("status=%d body=%s; want %d %q", st, b, wantStatus, wantMsg)
	}
}

func TestServer_CommonEchoAndRequestID(t *testing.T) {
	srv := newServer(t)
	st, b, hdr := do(t, srv, "GET", "/anything/else?x=1", nil, map[string]string{RequestIDHeader: "req-9"})
	if st != 200 || hdr.Get(RequestIDHeader) != "req-9" {
		t.Fatalf("status=%d header=%v", st, hdr)
	}
	var env struct {
		Code int `json:"code"`
		Data struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatal(err)
	}
	if env.Code != 2000 || env.Data.Message != "Mock response for GET /anything/else" {
		t.Fatalf("envelope = %+v", env)
	}

	st, _, hdr = do(t, srv, "GET", "/", nil, nil)
	if st != 404 || hdr.Get(RequestIDHeader) == "" {
		t.Fatalf("root: status=%d id=%q", st, hdr.Get(RequestIDHeader))
	}
}

// TestServer_MatchesAdapter checks that the server and the in-process
// dispatcher answer identically for identically seeded backends.
func TestServer_MatchesAdapter(t *testing.T) {
	srv := newServer(t)
	adapter := mockapi.NewAdapter(mockapi.Config{Table: newTable(t, 5), Enabled: true})

	reqs := []*request.Descriptor{
		request.Get("/pet/{petId}", request.WithParam("petId", "404")),
		request.Get("/store/order/{orderId}", request.WithParam("orderId", "11")),
		request.Get("/user/{username}", request.WithParam("username", "notfound")),
		request.Get("/pet/{petId}", request.WithParam("petId", "8")),
		request.Get("/store/order/{orderId}", request.WithParam("orderId", "4")),
		request.Delete("/user/{username}", request.WithParam("username", "john doe")),
		request.Delete("/user/{username}", request.WithParam("username", "a/b")),
	}
	httpT := transport.NewHTTP(transport.Config{BaseURL: srv.URL, Client: srv.Client()})
	for _, d := range reqs {
		want, err := adapter.RoundTrip(context.Background(), d)
		if err != nil {
			t.Fatal(err)
		}
		got, err := httpT.RoundTrip(context.Background(), d)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != want.Status || !bytes.Equal(bytes.TrimSpace(got.Body), bytes.TrimSpace(want.Body)) {
			t.Fatalf("%s: server %d %s; adapter %d %s", d, got.Status, got.Body, want.Status, want.Body)
		}
	}
}
