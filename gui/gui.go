// This file is part of UCHIP.
//
// UCHIP is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// UCHIP is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with UCHIP.  If not, see <https://www.gnu.org/licenses/>.

// Package gui defines the events that flow from a user interface to the
// emulation loop. The concrete GUI implementations (currently only the SDL
// play window) push events onto a channel supplied by the emulation; the
// emulation drains the channel between machine steps.
package gui

// EventID idenitifies the type of event being sent.
type EventID int

// List of valid EventID values.
const (
	// the window has been closed by the user
	EventWindowClose EventID = iota

	// a key has been pressed or released
	EventKeyboard
)

// Event represents a single event sent from the gui to the emulation. The
// Data field is an EventData* type appropriate for the ID.
type Event struct {
	ID   EventID
	Data interface{}
}

// EventDataKeyboard is the data for EventKeyboard. Key is the name of the
// key as reported by the windowing toolkit.
type EventDataKeyboard struct {
	Key  string
	Down bool
}
