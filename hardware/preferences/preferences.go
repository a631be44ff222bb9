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

// Package preferences defines the configuration surface of the emulated
// machine. Preferences are decided before the machine starts executing and
// held for the session. They change which branch is taken inside a handful
// of instruction handlers, never the shape of the machine itself.
package preferences

import (
	"strings"

	"github.com/billymyers/UCHIP/curated"
)

// Dialect selects between the two historical interpretations of the shift
// and register store/load instructions.
type Dialect int

// List of valid Dialect values.
//
// The original COSMAC VIP interpreter shifts VY into VX and moves the index
// register after FX55/FX65. The later SCHIP interpreter shifts VX in place
// and leaves the index register alone. Many 90s-era ROMs assume SCHIP
// behaviour so that is the default.
const (
	DialectSCHIP Dialect = iota
	DialectCOSMAC
)

func (dia Dialect) String() string {
	switch dia {
	case DialectSCHIP:
		return "schip"
	case DialectCOSMAC:
		return "cosmac"
	}
	return "unknown"
}

// UnknownDialect is the error pattern returned by ParseDialect.
const UnknownDialect = "preferences: unknown dialect (%s)"

// ParseDialect converts a dialect name, as might be given on the command
// line, into a Dialect value. Comparison is case insensitive.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "schip":
		return DialectSCHIP, nil
	case "cosmac":
		return DialectCOSMAC, nil
	}
	return DialectSCHIP, curated.Errorf(UnknownDialect, s)
}

// Preferences for a single machine instance. The zero value is usable and
// means: SCHIP dialect, sprites clipped at the screen edge.
type Preferences struct {
	Dialect Dialect

	// whether sprite pixels that fall beyond the screen edge wrap around to
	// the opposite edge. when false those pixels are simply not drawn and do
	// not contribute to collision. note that the sprite *origin* always
	// wraps, regardless of this setting
	SpriteWrap bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	return &Preferences{}
}
