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

// Package cpu implements the processor at the heart of the machine: the
// sixteen V registers, the index register, the program counter, the call
// stack, both timers and the fetch-decode-execute cycle over the 35
// instruction opcode set.
//
// ExecuteInstruction() performs exactly one cycle and always returns; the
// wait-for-key instruction "blocks" purely by not advancing the program
// counter, so the caller must keep calling for progress to occur.
//
// The two interpreter dialects, COSMAC and SCHIP, disagree on the shift
// instructions and on whether the index register moves after a register
// store/load. The divergence is a branch at the top of the affected
// handlers, selected by the preferences passed at construction.
package cpu
