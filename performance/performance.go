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

// Package performance measures the uncapped speed of the emulation. It can
// also generate CPU and memory profiles of the run for later study with the
// pprof tool.
package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/billymyers/UCHIP/cartridgeloader"
	"github.com/billymyers/UCHIP/curated"
	"github.com/billymyers/UCHIP/hardware"
	"github.com/billymyers/UCHIP/hardware/preferences"
)

// sentinal error returned by the Run() loop.
var timedOut = errors.New("performance timed out")

// Check the performance of the emulation using the supplied cartridge. The
// machine runs headless and uncapped for the specified duration and the
// number of instructions executed per second is written to output.
func Check(output io.Writer, profile Profile, cartload cartridgeloader.Loader, prefs *preferences.Preferences, duration string) error {
	var err error

	if !cartload.HasLoaded() {
		err = cartload.Load()
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	ch8 := hardware.NewChip8(prefs)

	err = ch8.AttachCartridge(cartload)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	steps := 0

	runner := func() error {
		timesUp := make(chan bool)

		time.AfterFunc(dur, func() {
			timesUp <- true
		})

		// only check the timer channel every PerformanceBrake instructions.
		// checking a channel on every instruction is expensive
		brake := 0

		return ch8.Run(func() (bool, error) {
			steps++

			brake++
			if brake >= hardware.PerformanceBrake {
				brake = 0
				select {
				case <-timesUp:
					return false, timedOut
				default:
				}
			}

			return true, nil
		})
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return curated.Errorf("performance: %v", err)
	}

	fmt.Fprintf(output, "%.2f instructions per second (%d instructions in %.2f seconds)\n",
		float64(steps)/dur.Seconds(), steps, dur.Seconds())

	return nil
}
