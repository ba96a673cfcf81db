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

// Package theme holds the light/dark mode and accent color, following the
// system setting until the user picks a mode.
package theme

import (
	"fmt"

	"dirpx.dev/apiflow/internal/state"
)

// ID is the persistence key.
const ID = "theme"

// Mode is light or dark.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Color is an accent color option.
type Color struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Primary string `json:"primary"`
}

// Colors are the selectable accents; the first is the default.
var Colors = []Color{
	{Name: "Default blue", Value: "blue", Primary: "#4D7FFF"},
	{Name: "Vivid orange", Value: "orange", Primary: "#FF7D00"},
	{Name: "Mint green", Value: "green", Primary: "#07C160"},
	{Name: "Sakura pink", Value: "pink", Primary: "#FF69B4"},
	{Name: "Violet", Value: "purple", Primary: "#8A2BE2"},
	{Name: "Cinnabar red", Value: "red", Primary: "#FF4757"},
}

// State is the persisted theme record.
type State struct {
	Mode         Mode  `json:"theme"`
	FollowSystem bool  `json:"followSystem"`
	HasUserSet   bool  `json:"hasUserSet"`
	Color        Color `json:"currentThemeColor"`
}

// BarColors are the navigation bar colors for a mode.
type BarColors struct {
	Front      string
	Background string
}

// SystemFunc reports the platform theme; errors fall back to light.
type SystemFunc func() (Mode, error)

// Store is the theme state container.
type Store struct {
	*state.Box[State]
	system SystemFunc
}

// New returns a store following the system theme. A nil system always
// reports light.
func New(system SystemFunc) *Store {
	if system == nil {
		system = func() (Mode, error) { return Light, nil }
	}
	return &Store{
		Box:    state.New(ID, State{Mode: Light, FollowSystem: true, Color: Colors[0]}),
		system: system,
	}
}

// IsDark reports dark mode.
func (s *Store) IsDark() bool { return s.Get().Mode == Dark }

// Toggle switches mode, or sets it when mode is given, and stops following
// the system.
func (s *Store) Toggle(mode ...Mode) State {
	return s.Update(func(st *State) {
		switch {
		case len(mode) > 0 && (mode[0] == Light || mode[0] == Dark):
			st.Mode = mode[0]
		case st.Mode == Light:
			st.Mode = Dark
		default:
			st.Mode = Light
		}
		st.HasUserSet = true
		st.FollowSystem = false
	})
}

// SetFollowSystem turns system following on or off. Turning it on forgets
// the user's choice and applies the system mode.
func (s *Store) SetFollowSystem(follow bool) State {
	if follow {
		mode := s.systemMode()
		return s.Update(func(st *State) {
			st.FollowSystem = true
			st.HasUserSet = false
			st.Mode = mode
		})
	}
	return s.Update(func(st *State) { st.FollowSystem = false })
}

// Init applies the system mode unless the user picked one and stopped
// following the system.
func (s *Store) Init() State {
	st := s.Get()
	if st.HasUserSet && !st.FollowSystem {
		return st
	}
	mode := s.systemMode()
	return s.Update(func(st *State) {
		st.Mode = mode
		if !st.HasUserSet {
			st.FollowSystem = true
		}
	})
}

// OnSystemChange is the hook for platform theme change events.
func (s *Store) OnSystemChange(mode Mode) State { return s.Toggle(mode) }

// SetColor selects an accent by value.
func (s *Store) SetColor(value string) (State, error) {
	for _, c := range Colors {
		if c.Value == value {
			return s.Update(func(st *State) { st.Color = c }), nil
		}
	}
	return s.Get(), fmt.Errorf("theme: unknown color %q", value)
}

// Bar returns the navigation bar colors for the current mode.
func (s *Store) Bar() BarColors {
	if s.IsDark() {
		return BarColors{Front: "#ffffff", Background: "#000000"}
	}
	return BarColors{Front: "#000000", Background: "#ffffff"}
}

func (s *Store) systemMode() Mode {
	m, err := s.system()
	if err != nil || (m != Light && m != Dark) {
		return Light
	}
	return m
}
