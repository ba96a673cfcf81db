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

package request

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew_Methods(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"get", http.MethodGet, false},
		{" POST ", http.MethodPost, false},
		{"patch", http.MethodPatch, false},
		{"HEAD", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := New(tt.in, "/pet")
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidMethod) {
					t.Fatalf("want ErrInvalidMethod, got %v", err)
				}
				return
			}
			if err != nil || d.Method != tt.want {
				t.Fatalf("New(%q) = %v, %v", tt.in, d, err)
			}
			if d.ID == "" {
				t.Fatal("ID must be assigned")
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		d       *Descriptor
		want    string
		wantErr error
	}{
		{"static", Get("/store/inventory"), "/store/inventory", nil},
		{"one param", Get("/pet/{petId}", WithParam("petId", "7")), "/pet/7", nil},
		{"escaped", Get("/user/{username}", WithParam("username", "a b/c")), "/user/a%20b%2Fc", nil},
		{"two params", Post("/x/{a}/y/{b}", WithParams(map[string]string{"a": "1", "b": "2"})), "/x/1/y/2", nil},
		{"unclosed", Get("/weird/{oops"), "/weird/{oops", nil},
		{"missing", Get("/pet/{petId}"), "", ErrUnboundParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.d.Resolve()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("Resolve() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestURL(t *testing.T) {
	d := Get("/pet/findByStatus", WithQuery("status", "available", "sold"))
	got, err := d.URL("https://petstore3.swagger.io/api/v3/")
	if err != nil {
		t.Fatal(err)
	}
	want := "https://petstore3.swagger.io/api/v3/pet/findByStatus?status=available&status=sold"
	if got != want {
		t.Fatalf("URL() = %q; want %q", got, want)
	}
}

func TestClone_IsDeep(t *testing.T) {
	d := Delete("/pet/{petId}",
		WithParam("petId", "1"),
		WithQuery("q", "1"),
		WithHeader("api_key", "special-key"),
	)
	cp := d.Clone()
	cp.PathParams["petId"] = "2"
	cp.Query.Add("q", "2")
	cp.Header.Set("api_key", "other")

	if d.PathParams["petId"] != "1" || len(d.Query["q"]) != 1 || d.Header.Get("api_key") != "special-key" {
		t.Fatalf("Clone shares state with original: %+v", d)
	}
	if cp.ID != d.ID {
		t.Fatal("Clone must keep the ID")
	}
}

func TestVerbPredicates(t *testing.T) {
	if !Get("/").ReadOnly() || Get("/").Mutating() {
		t.Fatal("GET predicates wrong")
	}
	for _, d := range []*Descriptor{Post("/"), Put("/"), Patch("/")} {
		if !d.Mutating() || d.ReadOnly() {
			t.Fatalf("%s predicates wrong", d.Method)
		}
	}
	if Delete("/").Mutating() || Delete("/").ReadOnly() {
		t.Fatal("DELETE is neither")
	}
}

func TestValidate(t *testing.T) {
	d := Get("/pet/{petId}")
	if err := d.Validate(); !errors.Is(err, ErrUnboundParam) {
		t.Fatalf("want ErrUnboundParam, got %v", err)
	}
	d.Method = "TRACE"
	if err := d.Validate(); !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("want ErrInvalidMethod, got %v", err)
	}
}
