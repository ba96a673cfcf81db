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
	"errors"

	"dirpx.dev/apiflow/internal/state"
)

// Dialog types.
const (
	TypeAlert   = "alert"
	TypeConfirm = "confirm"
	TypePrompt  = "prompt"
)

// Dialog actions reported by Respond.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// ErrNoDialog is returned by Respond when no dialog is open.
var ErrNoDialog = errors.New("ui: no dialog open")

// MessageResult is what the user did with a dialog.
type MessageResult struct {
	Action string `json:"action"`
	Value  string `json:"value,omitempty"`
}

// MessageOptions describes a dialog. Success runs on confirm and Fail on
// cancel; neither is persisted.
type MessageOptions struct {
	Type              string `json:"type,omitempty"`
	Title             string `json:"title,omitempty"`
	Msg               string `json:"msg,omitempty"`
	ShowCancelButton  bool   `json:"showCancelButton,omitempty"`
	ConfirmButtonText string `json:"confirmButtonText,omitempty"`
	CancelButtonText  string `json:"cancelButtonText,omitempty"`
	RoundButtons      bool   `json:"roundButtons,omitempty"`

	Success func(MessageResult) `json:"-"`
	Fail    func(MessageResult) `json:"-"`
}

// MessageState is the open dialog, nil when closed.
type MessageState struct {
	Options     *MessageOptions `json:"messageOptions"`
	CurrentPage string          `json:"currentPage"`
}

// Message is the single shared dialog.
type Message struct {
	*state.Box[MessageState]
	opts options
}

// NewMessage returns a closed dialog.
func NewMessage(opts ...Option) *Message {
	return &Message{
		Box:  state.New(MessageID, MessageState{}),
		opts: buildOptions(opts),
	}
}

// Show opens o, replacing any open dialog. Buttons are never round.
func (m *Message) Show(o MessageOptions) {
	o.RoundButtons = false
	m.Set(MessageState{Options: &o, CurrentPage: m.opts.page()})
}

// Alert opens a dialog with a single confirm button.
func (m *Message) Alert(o MessageOptions) {
	o.Type = TypeAlert
	o.ShowCancelButton = false
	m.Show(o)
}

// Confirm opens a confirm/cancel dialog.
func (m *Message) Confirm(o MessageOptions) {
	o.Type = TypeConfirm
	o.ShowCancelButton = true
	m.Show(o)
}

// Prompt opens a dialog with an input.
func (m *Message) Prompt(o MessageOptions) {
	o.Type = TypePrompt
	o.ShowCancelButton = true
	m.Show(o)
}

// Respond closes the open dialog and runs its Success or Fail callback.
func (m *Message) Respond(res MessageResult) error {
	st := m.Get()
	if st.Options == nil {
		return ErrNoDialog
	}
	m.Close()
	cb := st.Options.Fail
	if res.Action == ActionConfirm {
		cb = st.Options.Success
	}
	if cb != nil {
		cb(res)
	}
	return nil
}

// Close dismisses the dialog without callbacks.
func (m *Message) Close() { m.Set(MessageState{}) }

// Open reports whether a dialog is showing.
func (m *Message) Open() bool { return m.Get().Options != nil }
