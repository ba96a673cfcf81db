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

package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"dirpx.dev/apiflow/envelope"
	"dirpx.dev/apiflow/request"
)

func ok(context.Context, *request.Descriptor) (*envelope.Response, error) {
	return &envelope.Response{Status: http.StatusOK}, nil
}

func TestChain_Order(t *testing.T) {
	var trace []string
	mk := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
				trace = append(trace, "in:"+name)
				defer func() { trace = append(trace, "out:"+name) }()
				return next(ctx, d)
			}
		}
	}
	h := Chain(mk("a"), nil, mk("b"), mk("c"))(func(ctx context.Context, d *request.Descriptor) (*envelope.Response, error) {
		trace = append(trace, "handler")
		return ok(ctx, d)
	})
	if _, err := h(context.Background(), request.Get("/x")); err != nil {
		t.Fatal(err)
	}
	want := []string{"in:a", "in:b", "in:c", "handler", "out:c", "out:b", "out:a"}
	if !reflect.DeepEqual(trace, want) {
		t.Fatalf("trace = %v", trace)
	}
}

func TestContentType(t *testing.T) {
	tests := []struct {
		d    *request.Descriptor
		want string
	}{
		{request.Post("/pet"), ContentTypeJSON},
		{request.Put("/pet"), ContentTypeJSON},
		{request.Patch("/pet"), ContentTypeJSON},
		{request.Get("/pet"), ""},
		{request.Delete("/pet/1"), ""},
		{request.Post("/pet", request.WithHeader("Content-Type", "text/plain")), "text/plain"},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			var got string
			h := ContentType()(func(_ context.Context, d *request.Descriptor) (*envelope.Response, error) {
				got = d.Header.Get("Content-Type")
				return nil, nil
			})
			_, _ = h(context.Background(), tt.d)
			if got != tt.want {
				t.Fatalf("Content-Type = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestCacheBust_StrictlyIncreasing(t *testing.T) {
	frozen := time.UnixMilli(1_750_000_000_000)
	var stamps []int64
	h := CacheBust(func() time.Time { return frozen })(func(_ context.Context, d *request.Descriptor) (*envelope.Response, error) {
		v, err := strconv.ParseInt(d.Query.Get(CacheBustParam), 10, 64)
		if err != nil {
			t.Fatalf("bad _t: %v", err)
		}
		stamps = append(stamps, v)
		return nil, nil
	})
	for i := 0; i < 5; i++ {
		_, _ = h(context.Background(), request.Get("/pet/findByStatus", request.WithQuery("status", "available")))
	}
	if stamps[0] != frozen.UnixMilli() {
		t.Fatalf("first stamp = %d", stamps[0])
	}
	for i := 1; i < len(stamps); i++ {
		if stamps[i] <= stamps[i-1] {
			t.Fatalf("stamps not increasing: %v", stamps)
		}
	}
}

func TestCacheBust_OnlyGET(t *testing.T) {
	h := CacheBust(nil)(func(_ context.Context, d *request.Descriptor) (*envelope.Response, error) {
		if d.Query.Has(CacheBustParam) {
			t.Fatalf("%s must not be cache-busted", d.Method)
		}
		return nil, nil
	})
	_, _ = h(context.Background(), request.Post("/pet"))
	_, _ = h(context.Background(), request.Delete("/pet/1"))
}

type indicator struct {
	mu    sync.Mutex
	shown int
	open  bool
	text  string
}

func (i *indicator) Show(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.shown++
	i.open = true
	i.text = text
}

func (i *indicator) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.open = false
}

func (i *indicator) state() (int, bool, string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.shown, i.open, i.text
}

func sleeper(d time.Duration, err error) Handler {
	return func(context.Context, *request.Descriptor) (*envelope.Response, error) {
		time.Sleep(d)
		if err != nil {
			return nil, err
		}
		return &envelope.Response{Status: http.StatusOK}, nil
	}
}

func TestLoading_FastRequestNeverShows(t *testing.T) {
	ind := &indicator{}
	h := Loading(LoadingConfig{Delay: 300 * time.Millisecond, Indicator: ind})(sleeper(100*time.Millisecond, nil))
	if _, err := h(context.Background(), request.Get("/pet/1")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if shown, open, _ := ind.state(); shown != 0 || open {
		t.Fatalf("indicator shown=%d open=%v; want never shown", shown, open)
	}
}

func TestLoading_SlowRequestShowsThenHides(t *testing.T) {
	ind := &indicator{}
	h := Loading(LoadingConfig{Delay: 20 * time.Millisecond, Indicator: ind})(sleeper(120*time.Millisecond, nil))
	_, _ = h(context.Background(), request.Get("/pet/1"))
	shown, open, text := ind.state()
	if shown != 1 || open || text != DefaultLoadingText {
		t.Fatalf("shown=%d open=%v text=%q", shown, open, text)
	}
}

func TestLoading_ImmediateAndHiddenOnError(t *testing.T) {
	ind := &indicator{}
	boom := errors.New("boom")
	h := Loading(LoadingConfig{Text: "Submitting...", Indicator: ind})(sleeper(0, boom))
	if _, err := h(context.Background(), request.Post("/store/order")); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	shown, open, text := ind.state()
	if shown != 1 || open || text != "Submitting..." {
		t.Fatalf("shown=%d open=%v text=%q", shown, open, text)
	}
}

func TestLoading_HiddenOnPanic(t *testing.T) {
	ind := &indicator{}
	h := Loading(LoadingConfig{Indicator: ind})(func(context.Context, *request.Descriptor) (*envelope.Response, error) {
		panic("handler bug")
	})
	func() {
		defer func() { _ = recover() }()
		_, _ = h(context.Background(), request.Get("/x"))
	}()
	if _, open, _ := ind.state(); open {
		t.Fatal("indicator must be closed after a panic")
	}
}

func TestDelayLoading(t *testing.T) {
	var flag LoadingFlag
	var during bool
	h := DelayLoading(10*time.Millisecond, &flag)(func(context.Context, *request.Descriptor) (*envelope.Response, error) {
		time.Sleep(80 * time.Millisecond)
		during = flag.Loading()
		return nil, nil
	})
	_, _ = h(context.Background(), request.Get("/x"))
	if !during {
		t.Fatal("flag must rise for a slow request")
	}
	if flag.Loading() {
		t.Fatal("flag must drop once the request settles")
	}

	fast := DelayLoading(DefaultLoadingDelay, &flag)(sleeper(5*time.Millisecond, nil))
	_, _ = fast(context.Background(), request.Get("/x"))
	time.Sleep(20 * time.Millisecond)
	if flag.Loading() {
		t.Fatal("fast request must never raise the flag")
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := Logging(logger)(ok)
	d := request.Get("/pet/7")
	_, _ = h(context.Background(), d)
	out := buf.String()
	for _, want := range []string{"request_id=" + d.ID, "method=GET", "path=/pet/7", "status=200"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}
}
