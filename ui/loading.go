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

import "dirpx.dev/apiflow/internal/state"

// LoadingOptions is the loading overlay record.
type LoadingOptions struct {
	Msg      string `json:"msg,omitempty"`
	IconName string `json:"iconName,omitempty"`
	Cover    bool   `json:"cover,omitempty"`
	Position string `json:"position,omitempty"`
	Show     bool   `json:"show"`
}

// LoadingState is the overlay record plus its owning page.
type LoadingState struct {
	Options     LoadingOptions `json:"loadingOptions"`
	CurrentPage string         `json:"currentPage"`
}

// Loading is the single shared loading overlay. It satisfies the loading
// middleware's Indicator.
type Loading struct {
	*state.Box[LoadingState]
	opts options
}

// NewLoading returns a hidden overlay.
func NewLoading(opts ...Option) *Loading {
	return &Loading{
		Box:  state.New(LoadingID, LoadingState{}),
		opts: buildOptions(opts),
	}
}

// Open shows the overlay with o; unset fields get the loading defaults
// (loading icon, covering, centered).
func (l *Loading) Open(o LoadingOptions) {
	if o.IconName == "" {
		o.IconName = IconLoading
	}
	if o.Position == "" {
		o.Position = DefaultToastPosition
	}
	o.Cover = true
	o.Show = true
	l.Set(LoadingState{Options: o, CurrentPage: l.opts.page()})
}

// Show opens the overlay with a text.
func (l *Loading) Show(text string) { l.Open(LoadingOptions{Msg: text}) }

// Close hides the overlay.
func (l *Loading) Close() { l.Set(LoadingState{}) }

// Visible reports whether the overlay is showing.
func (l *Loading) Visible() bool { return l.Get().Options.Show }
