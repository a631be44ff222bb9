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

// Package hardware is the container package for the emulated machine. The
// Chip8 type aggregates the sub-packages (memory, video, input, cpu) into
// one owned instance; all mutation happens inside Step() on the goroutine
// that calls it.
//
// The host drives the machine by attaching a cartridge and then calling
// Step() repeatedly at whatever cadence it chooses. The machine makes no
// timing decisions of its own beyond decrementing the two timers once per
// step.
package hardware
