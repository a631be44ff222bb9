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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It looks like the
// Errorf() function in the fmt package, taking a formatting pattern and
// placeholder values, but the pattern doubles as the identity of the error.
// The Is() function tests that identity:
//
//	e := curated.Errorf("machine: illegal address: %#04x", addr)
//
//	if curated.Is(e, "machine: illegal address: %#04x") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether a pattern occurs anywhere
// in a chain of curated errors. Chains are built simply by using a curated
// error as a placeholder value for another call to Errorf().
//
// Packages that want their errors to be testable by callers should export the
// pattern as a const string.
//
// The Error() function of a curated error deduplicates adjacent identical
// message parts, meaning errors can be wrapped freely at package boundaries
// without the final message stuttering.
package curated
