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

package apiflow

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/apiflow/code"
	"dirpx.dev/apiflow/reason"
)

func TestError_Basics(t *testing.T) {
	e := E(code.ClientError, "Request failed with status: 404",
		WithReasonOption(reason.StatusClient),
		WithCodeOption(404),
		WithDataOption(map[string]any{"code": 404, "message": "Pet not found"}),
		WithDetailOption("path", "/pet/404"),
	)

	if e.Kind != code.ClientError || e.Code != 404 {
		t.Fatalf("kind/code mismatch: %v %d", e.Kind, e.Code)
	}
	if e.Details["path"] != "/pet/404" {
		t.Fatal("detail missing")
	}

	s := e.Error()
	for _, sub := range []string{"client_error", "status.client", "(404)", "Request failed"} {
		if !strings.Contains(s, sub) {
			t.Fatalf("Error() missing %q in %q", sub, s)
		}
	}
}

func TestError_NilString(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil Error() = %q", e.Error())
	}
}

func TestError_CopyOnWrite(t *testing.T) {
	e1 := E(code.Unknown, "x").WithDetail("k1", 1)
	e2 := e1.WithDetail("k2", 2)
	if len(e1.Details) != 1 || len(e2.Details) != 2 {
		t.Fatal("details size mismatch")
	}

	e3 := e1.WithDetails(map[string]any{"k1": 3})
	if e1.Details["k1"] != 1 || e3.Details["k1"] != 3 {
		t.Fatal("merge must copy")
	}
	if e1.WithDetails(nil) != e1 {
		t.Fatal("empty merge must return receiver")
	}

	e4 := e1.WithMessage("y").WithCode(500)
	if e1.Message != "x" || e1.Code != 0 || e4.Message != "y" || e4.Code != 500 {
		t.Fatal("WithMessage/WithCode mutated original")
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("dial tcp: connection refused")
	e := E(code.NetworkError, "Network error").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("nil cause must return receiver")
	}
}

func TestError_IsKindSentinels(t *testing.T) {
	e := E(code.Unauthorized, "expired", WithCodeOption(401))
	wrapped := fmt.Errorf("purchase: %w", e)

	if !errors.Is(wrapped, ErrUnauthorized) {
		t.Fatal("errors.Is(ErrUnauthorized) must match by kind")
	}
	if errors.Is(wrapped, ErrClient) {
		t.Fatal("errors.Is(ErrClient) must not match")
	}
	if !errors.Is(wrapped, &Error{Kind: code.Unauthorized, Code: 401}) {
		t.Fatal("kind+code target must match")
	}
	if errors.Is(wrapped, &Error{Kind: code.Unauthorized, Code: 403}) {
		t.Fatal("different code must not match")
	}
	if KindOf(wrapped) != code.Unauthorized || !IsKind(wrapped, code.Unauthorized) {
		t.Fatal("KindOf/IsKind failed")
	}
	if KindOf(errors.New("plain")) != code.Empty {
		t.Fatal("KindOf on foreign error must be Empty")
	}
	if got, ok := As(wrapped); !ok || got != e {
		t.Fatal("As must return the wrapped *Error")
	}
}
