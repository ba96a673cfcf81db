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

package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dirpx.dev/apiflow/request"
)

func TestHTTP_RoundTrip(t *testing.T) {
	var got struct {
		method, path, query, apiKey, ctype string
		body                               map[string]any
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.apiKey = r.Header.Get("api_key")
		got.ctype = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &got.body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer srv.Close()

	tr := NewHTTP(Config{BaseURL: srv.URL + "/api/v3"})
	d := request.Post("/pet/{petId}",
		request.WithParam("petId", "9"),
		request.WithQuery("a", "1"),
		request.WithHeader("api_key", "k"),
		request.WithBody(map[string]any{"name": "Buddy"}),
	)
	resp, err := tr.RoundTrip(context.Background(), d)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Status != http.StatusCreated || string(resp.Body) != `{"id":1}` {
		t.Fatalf("resp = %d %s", resp.Status, resp.Body)
	}
	if got.method != http.MethodPost || got.path != "/api/v3/pet/9" || got.query != "a=1" {
		t.Fatalf("request line = %s %s?%s", got.method, got.path, got.query)
	}
	if got.apiKey != "k" || got.ctype != "application/json" || got.body["name"] != "Buddy" {
		t.Fatalf("headers/body = %q %q %v", got.apiKey, got.ctype, got.body)
	}
}

func TestHTTP_ErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resp, err := NewHTTP(Config{BaseURL: srv.URL}).RoundTrip(context.Background(), request.Get("/x"))
	if err != nil || resp.Status != http.StatusNotFound {
		t.Fatalf("got %v, %v", resp, err)
	}
}

func TestHTTP_Failures(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	closed := httptest.NewServer(http.NotFoundHandler())
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name string
		tr   *HTTP
		d    *request.Descriptor
		want error
	}{
		{"timeout", NewHTTP(Config{BaseURL: slow.URL, Timeout: 50 * time.Millisecond}), request.Get("/"), ErrTimeout},
		{"refused", NewHTTP(Config{BaseURL: closedURL}), request.Get("/"), ErrNetwork},
		{"unbound", NewHTTP(Config{BaseURL: closedURL}), request.Get("/pet/{petId}"), ErrRequest},
		{"bad body", NewHTTP(Config{BaseURL: closedURL}), request.Post("/", request.WithBody(make(chan int))), ErrRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tr.RoundTrip(context.Background(), tt.d)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func TestHTTP_RateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	tr := NewHTTP(Config{BaseURL: srv.URL, RateLimit: 1, Burst: 1})
	if _, err := tr.RoundTrip(context.Background(), request.Get("/")); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := tr.RoundTrip(ctx, request.Get("/")); !errors.Is(err, ErrTimeout) {
		t.Fatalf("second call within the window must time out, got %v", err)
	}
}
