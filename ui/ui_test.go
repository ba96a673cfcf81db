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

package ui

import (
	"testing"
	"time"
)

func page(name string) Option { return WithPage(func() string { return name }) }

func TestToast_Variants(t *testing.T) {
	tests := []struct {
		name     string
		show     func(*Toast)
		icon     string
		duration time.Duration
	}{
		{"text", func(t *Toast) { t.Text("hi") }, "", DefaultToastDuration},
		{"success", func(t *Toast) { t.Success("hi") }, IconSuccess, SuccessToastDuration},
		{"error default", func(t *Toast) { t.Error("hi", 0) }, IconError, DefaultToastDuration},
		{"error short", func(t *Toast) { t.Error("hi", 500*time.Millisecond) }, IconError, 500 * time.Millisecond},
		{"info", func(t *Toast) { t.Info("hi") }, IconInfo, DefaultToastDuration},
		{"warning", func(t *Toast) { t.Warning("hi") }, IconWarning, DefaultToastDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toast := NewToast(page("pages/index"))
			tt.show(toast)
			st := toast.Get()
			o := st.Options
			if !o.Show || o.Msg != "hi" || o.IconName != tt.icon || o.Duration != tt.duration || o.Position != DefaultToastPosition {
				t.Fatalf("options = %+v", o)
			}
			if st.CurrentPage != "pages/index" {
				t.Fatalf("page = %q", st.CurrentPage)
			}
		})
	}
}

func TestToast_OverwriteAndClose(t *testing.T) {
	toast := NewToast()
	var seen []bool
	toast.Subscribe(func(s ToastState) { seen = append(seen, s.Options.Show) })

	toast.Text("one")
	toast.Warning("two")
	if got := toast.Get().Options.Msg; got != "two" {
		t.Fatalf("latest show must win, got %q", got)
	}
	toast.Close()
	if toast.Visible() || toast.Get().CurrentPage != "" {
		t.Fatalf("close must reset, got %+v", toast.Get())
	}
	if toast.Get().Options.Duration != DefaultToastDuration {
		t.Fatal("close must restore defaults")
	}
	if len(seen) != 3 || seen[2] {
		t.Fatalf("notifications = %v", seen)
	}
}

func TestToast_Notify(t *testing.T) {
	toast := NewToast()
	toast.Notify("Network error", 0)
	if o := toast.Get().Options; o.IconName != IconError || o.Msg != "Network error" {
		t.Fatalf("options = %+v", o)
	}
}

func TestLoading(t *testing.T) {
	l := NewLoading(page("pages/pet"))
	l.Show("Loading...")
	st := l.Get()
	if !st.Options.Show || !st.Options.Cover || st.Options.IconName != IconLoading || st.Options.Msg != "Loading..." {
		t.Fatalf("options = %+v", st.Options)
	}
	if st.CurrentPage != "pages/pet" {
		t.Fatalf("page = %q", st.CurrentPage)
	}
	l.Close()
	if l.Visible() {
		t.Fatal("must be hidden after Close")
	}
}

func TestMessage_ConfirmRespond(t *testing.T) {
	m := NewMessage()
	var got string
	m.Confirm(MessageOptions{
		Title:   "Protected",
		Success: func(MessageResult) { got = "ok" },
		Fail:    func(MessageResult) { got = "cancel" },
	})
	st := m.Get()
	if st.Options == nil || st.Options.Type != TypeConfirm || !st.Options.ShowCancelButton {
		t.Fatalf("state = %+v", st)
	}
	if err := m.Respond(MessageResult{Action: ActionCancel}); err != nil {
		t.Fatal(err)
	}
	if got != "cancel" || m.Open() {
		t.Fatalf("got=%q open=%v", got, m.Open())
	}
	if err := m.Respond(MessageResult{Action: ActionConfirm}); err != ErrNoDialog {
		t.Fatalf("err = %v", err)
	}
}

func TestMessage_Kinds(t *testing.T) {
	m := NewMessage()
	m.Alert(MessageOptions{Title: "a", ShowCancelButton: true})
	if o := m.Get().Options; o.Type != TypeAlert || o.ShowCancelButton {
		t.Fatalf("alert = %+v", o)
	}
	m.Prompt(MessageOptions{Title: "p"})
	if o := m.Get().Options; o.Type != TypePrompt || !o.ShowCancelButton {
		t.Fatalf("prompt = %+v", o)
	}
	m.Close()
	if m.Open() {
		t.Fatal("closed dialog must not be open")
	}
}

func TestMessage_SnapshotSkipsCallbacks(t *testing.T) {
	m := NewMessage()
	m.Confirm(MessageOptions{Title: "x", Success: func(MessageResult) {}})
	data, err := m.Snapshot()
	if err != nil {
		t.Fatalf("callbacks must not break snapshots: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty snapshot")
	}
}
