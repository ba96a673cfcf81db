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

package nav

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func newRouter(t *testing.T) *Router {
	t.Helper()
	r, err := New([]Route{
		{Name: "home", Path: "pages/index/Index"},
		{Name: "pet", Path: "/pages/pet/Pet"},
		{Name: "login", Path: "/pages/login/Login"},
		{Name: "protected", Path: "/subPages/protected/Index"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func names(rs []Route) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestNew_Invalid(t *testing.T) {
	if _, err := New([]Route{{Name: "a"}, {Name: "a"}}); err == nil {
		t.Fatal("duplicate names must fail")
	}
	if _, err := New([]Route{{Path: "/x"}}); err == nil {
		t.Fatal("empty name must fail")
	}
}

func TestPushBackReplaceAll(t *testing.T) {
	r := newRouter(t)
	ctx := context.Background()
	for _, n := range []string{"home", "pet"} {
		if err := r.Push(ctx, n); err != nil {
			t.Fatal(err)
		}
	}
	if r.CurrentPath() != "/pages/pet/Pet" {
		t.Fatalf("current = %q", r.CurrentPath())
	}
	if err := r.Back(ctx); err != nil {
		t.Fatal(err)
	}
	if got := names(r.History()); !reflect.DeepEqual(got, []string{"home"}) {
		t.Fatalf("history = %v", got)
	}
	if err := r.Back(ctx); !errors.Is(err, ErrNoHistory) {
		t.Fatalf("err = %v", err)
	}

	_ = r.Push(ctx, "pet")
	if err := r.ReplaceAll("login"); err != nil {
		t.Fatal(err)
	}
	if got := names(r.History()); !reflect.DeepEqual(got, []string{"login"}) {
		t.Fatalf("ReplaceAll must clear history, got %v", got)
	}
	if err := r.Push(ctx, "nope"); !errors.Is(err, ErrUnknownRoute) {
		t.Fatalf("err = %v", err)
	}
}

func TestReplace(t *testing.T) {
	r := newRouter(t)
	ctx := context.Background()
	_ = r.Push(ctx, "home")
	_ = r.Push(ctx, "pet")
	if err := r.Replace(ctx, "login"); err != nil {
		t.Fatal(err)
	}
	if got := names(r.History()); !reflect.DeepEqual(got, []string{"home", "login"}) {
		t.Fatalf("history = %v", got)
	}
}

func TestGuardsAndHooks(t *testing.T) {
	r := newRouter(t)
	ctx := context.Background()
	denied := errors.New("user cancelled")
	r.BeforeEach(func(_ context.Context, to, _ Route) error {
		if to.Name == "protected" {
			return denied
		}
		return nil
	})
	var visited []string
	remove := r.AfterEach(func(to, from Route) { visited = append(visited, from.Name+">"+to.Name) })

	_ = r.Push(ctx, "home")
	err := r.Push(ctx, "protected")
	if !errors.Is(err, ErrAborted) || !errors.Is(err, denied) {
		t.Fatalf("err = %v", err)
	}
	if r.Current().Name != "home" {
		t.Fatalf("aborted navigation must not change the page, got %q", r.Current().Name)
	}
	_ = r.Push(ctx, "pet")
	remove()
	_ = r.Push(ctx, "login")

	if !reflect.DeepEqual(visited, []string{">home", "home>pet"}) {
		t.Fatalf("visited = %v", visited)
	}
}
