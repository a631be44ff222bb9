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

package performance

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/billymyers/UCHIP/curated"
)

// Profile is used to specify the type of profile to be generated by
// RunProfiler().
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = 0x00
	ProfileCPU  Profile = 0x01
	ProfileMem  Profile = 0x02
	ProfileAll  Profile = ProfileCPU | ProfileMem
)

// UnknownProfile is returned by ParseProfile() if the string cannot be
// interpreted.
const UnknownProfile = "performance: unknown profile type (%s)"

// ParseProfile converts a string to a Profile value. Valid strings are
// "NONE", "CPU", "MEM" and "ALL" (case insensitive).
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "NONE", "none":
		return ProfileNone, nil
	case "CPU", "cpu":
		return ProfileCPU, nil
	case "MEM", "mem":
		return ProfileMem, nil
	case "ALL", "all":
		return ProfileAll, nil
	}

	return ProfileNone, curated.Errorf(UnknownProfile, s)
}

// RunProfiler runs the supplied function, wrapping it in the profiles
// specified by the profile argument. Profile files are written to the
// current directory and named after the supplied tag.
func RunProfiler(profile Profile, tag string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", tag))
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			_ = f.Close()
			return curated.Errorf("performance: %v", err)
		}

		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			if err != nil && rerr == nil {
				rerr = curated.Errorf("performance: %v", err)
			}
		}()
	}

	err := run()
	if err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", tag))
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}

		runtime.GC()

		err = pprof.WriteHeapProfile(f)
		if err != nil {
			_ = f.Close()
			return curated.Errorf("performance: %v", err)
		}

		err = f.Close()
		if err != nil {
			return curated.Errorf("performance: %v", err)
		}
	}

	return nil
}
