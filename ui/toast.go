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
	"time"

	"dirpx.dev/apiflow/internal/state"
)

// Toast defaults.
const (
	DefaultToastDuration   = 2000 * time.Millisecond
	SuccessToastDuration   = 1500 * time.Millisecond
	DefaultToastPosition   = "middle"
	toastDirectionVertical = "vertical"
)

// Toast icons.
const (
	IconSuccess = "success"
	IconError   = "error"
	IconInfo    = "info"
	IconWarning = "warning"
	IconLoading = "loading"
)

// ToastOptions is the visible toast record. Zero fields take defaults.
type ToastOptions struct {
	Msg       string        `json:"msg,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	IconName  string        `json:"iconName,omitempty"`
	Position  string        `json:"position,omitempty"`
	Direction string        `json:"direction,omitempty"`
	Show      bool          `json:"show"`
}

// ToastState is the toast record plus its owning page.
type ToastState struct {
	Options     ToastOptions `json:"toastOptions"`
	CurrentPage string       `json:"currentPage"`
}

// Toast is the single shared toast.
type Toast struct {
	*state.Box[ToastState]
	opts options
}

func defaultToast() ToastOptions {
	return ToastOptions{Duration: DefaultToastDuration}
}

// NewToast returns a hidden toast.
func NewToast(opts ...Option) *Toast {
	return &Toast{
		Box:  state.New(ToastID, ToastState{Options: defaultToast()}),
		opts: buildOptions(opts),
	}
}

// Show displays o over the defaults, replacing any visible toast.
func (t *Toast) Show(o ToastOptions) {
	o = fillToast(o, defaultToast())
	if o.Position == "" {
		o.Position = DefaultToastPosition
	}
	o.Show = true
	t.Set(ToastState{Options: o, CurrentPage: t.opts.page()})
}

// Text shows a plain message.
func (t *Toast) Text(msg string) { t.Show(ToastOptions{Msg: msg}) }

// Success shows msg with the success icon for 1.5s.
func (t *Toast) Success(msg string) {
	t.Show(ToastOptions{Msg: msg, IconName: IconSuccess, Duration: SuccessToastDuration})
}

// Error shows msg with the error icon. A zero d keeps the default.
func (t *Toast) Error(msg string, d time.Duration) {
	t.Show(ToastOptions{Msg: msg, IconName: IconError, Direction: toastDirectionVertical, Duration: d})
}

// Info shows msg with the info icon.
func (t *Toast) Info(msg string) { t.Show(ToastOptions{Msg: msg, IconName: IconInfo}) }

// Warning shows msg with the warning icon.
func (t *Toast) Warning(msg string) { t.Show(ToastOptions{Msg: msg, IconName: IconWarning}) }

// Notify shows an error toast; it lets a Toast serve as the classifier's
// notifier.
func (t *Toast) Notify(msg string, d time.Duration) { t.Error(msg, d) }

// Close hides the toast and clears its page.
func (t *Toast) Close() { t.Set(ToastState{Options: defaultToast()}) }

// Visible reports whether a toast is showing.
func (t *Toast) Visible() bool { return t.Get().Options.Show }

func fillToast(o, def ToastOptions) ToastOptions {
	if o.Duration == 0 {
		o.Duration = def.Duration
	}
	if o.IconName == "" {
		o.IconName = def.IconName
	}
	if o.Position == "" {
		o.Position = def.Position
	}
	if o.Direction == "" {
		o.Direction = def.Direction
	}
	return o
}
