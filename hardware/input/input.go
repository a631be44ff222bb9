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

// Package input implements the sixteen key hexadecimal keypad. The host is
// responsible for translating its own input events into Press() and
// Release() calls; the key-skip and key-wait instructions only ever read
// the snapshot held here.
//
// The keypad is not safe for concurrent use. If the host polls input on a
// different goroutine to the one stepping the machine it must provide its
// own synchronisation.
package input

// NumKeys is the number of keys on the keypad, one per hexadecimal digit.
const NumKeys = 16

// Keypad holds the current key-down state of the sixteen keys.
type Keypad struct {
	keys [NumKeys]bool
}

// NewKeypad is the preferred method of initialisation for the Keypad type.
func NewKeypad() *Keypad {
	return &Keypad{}
}

// Reset releases every key.
func (kp *Keypad) Reset() {
	kp.keys = [NumKeys]bool{}
}

// Press the specified key. Key values are masked to the range 0 to 15.
func (kp *Keypad) Press(key uint8) {
	kp.keys[key&0x0f] = true
}

// Release the specified key. Key values are masked to the range 0 to 15.
func (kp *Keypad) Release(key uint8) {
	kp.keys[key&0x0f] = false
}

// IsPressed returns the state of the specified key. Key values are masked
// to the range 0 to 15.
func (kp *Keypad) IsPressed(key uint8) bool {
	return kp.keys[key&0x0f]
}

// FirstPressed returns the lowest numbered key currently held down. The
// second return value is false if no key is down.
func (kp *Keypad) FirstPressed() (uint8, bool) {
	for k := uint8(0); k < NumKeys; k++ {
		if kp.keys[k] {
			return k, true
		}
	}
	return 0, false
}
