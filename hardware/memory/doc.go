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

// Package memory implements the 4096 bytes of addressable memory in the
// machine. The low 512 bytes are reserved for the interpreter; the only
// thing living there in this implementation is the built-in hexadecimal
// font. Cartridge data is loaded at the cartridge origin, 0x200.
//
// Addresses are masked to 12 bits on every access. A program that runs the
// index register or program counter out of range therefore aliases back
// into low memory rather than faulting. This mirrors how the original
// interpreters behaved and existing ROMs may rely on it.
package memory
