// Package nucaps reads NUCAPS sounding swaths from NetCDF granules and
// prepares them for level selection and plotting.
package nucaps

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rtm0/nucaps/internal/levels"
)

// BestQuality is the Quality_Flag value marking an accepted retrieval.
const BestQuality = 0

// FillValue marks missing retrievals in NUCAPS granules.
const FillValue = -9999.99

// IsMissing reports whether v is a fill or otherwise unusable value. The
// NetCDF layer does not mask fill values, so consumers check before
// plotting or exporting.
func IsMissing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0) || v <= FillValue+1
}

// Swath is a set of geolocated vertical soundings sharing one pressure-level
// sequence. Per-profile slices are index-aligned: profile i has position
// FOR[i], location (Latitude[i], Longitude[i]), flag QualityFlag[i] and one
// row i in every entry of Vars.
type Swath struct {
	// Latitude and Longitude locate each profile's footprint center.
	Latitude  []float64
	Longitude []float64
	// FOR is the field-of-regard index of each profile, numbered
	// consecutively across concatenated granules in input order.
	FOR []int
	// Time is the per-profile observation time in the instrument's own
	// epoch and unit. It is carried through untouched; decode it
	// explicitly if you need wall-clock times.
	Time []float64
	// QualityFlag is the per-profile retrieval confidence flag.
	QualityFlag []int
	// Pressure holds the level sequence shared by all profiles, taken
	// from the file's first profile.
	Pressure []float64
	// Vars maps a variable name to its profile×level values.
	Vars map[string][][]float64
}

// Len returns the number of profiles in the swath.
func (s *Swath) Len() int {
	return len(s.Latitude)
}

// Summary returns summary information about the swath suitable for logging.
func (s *Swath) Summary() []any {
	names := make([]string, 0, len(s.Vars))
	for name := range s.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	best := 0
	for _, f := range s.QualityFlag {
		if f == BestQuality {
			best++
		}
	}
	return []any{
		"profiles", s.Len(),
		"levels", len(s.Pressure),
		"vars", names,
		"bestQuality", best,
	}
}

// Var returns the named profile×level variable.
func (s *Swath) Var(name string) ([][]float64, error) {
	v, ok := s.Vars[name]
	if !ok {
		return nil, fmt.Errorf("variable %q not in swath", name)
	}
	return v, nil
}

// LevelIndex builds the pressure-level index for this swath. Build it once
// and pass it along; the result does not change while the swath is in use.
func (s *Swath) LevelIndex() (levels.Index, error) {
	return levels.BuildIndex(s.Pressure)
}

// FilterQuality returns a new swath containing only the profiles whose
// quality flag equals keep. The tutorial convention keeps BestQuality and
// discards everything else. Pressure levels are shared with the receiver.
func (s *Swath) FilterQuality(keep int) *Swath {
	out := &Swath{
		Pressure: s.Pressure,
		Vars:     make(map[string][][]float64, len(s.Vars)),
	}
	for i, flag := range s.QualityFlag {
		if flag != keep {
			continue
		}
		out.Latitude = append(out.Latitude, s.Latitude[i])
		out.Longitude = append(out.Longitude, s.Longitude[i])
		out.FOR = append(out.FOR, s.FOR[i])
		out.Time = append(out.Time, s.Time[i])
		out.QualityFlag = append(out.QualityFlag, flag)
	}
	for name, rows := range s.Vars {
		kept := make([][]float64, 0, out.Len())
		for i, flag := range s.QualityFlag {
			if flag == keep {
				kept = append(kept, rows[i])
			}
		}
		out.Vars[name] = kept
	}
	return out
}

// Concat joins swaths into one, preserving input order. The first swath's
// pressure levels stand for the whole result; the remaining swaths must
// have the same level count. FOR indices are renumbered consecutively so a
// cross-section through the result has a monotone along-track coordinate.
func Concat(swaths ...*Swath) (*Swath, error) {
	if len(swaths) == 0 {
		return nil, errors.New("no swaths to concatenate")
	}
	out := &Swath{
		Pressure: swaths[0].Pressure,
		Vars:     make(map[string][][]float64, len(swaths[0].Vars)),
	}
	for name := range swaths[0].Vars {
		out.Vars[name] = nil
	}
	next := 0
	for i, s := range swaths {
		if len(s.Pressure) != len(out.Pressure) {
			return nil, fmt.Errorf("swath %d has %d pressure levels, want %d",
				i, len(s.Pressure), len(out.Pressure))
		}
		out.Latitude = append(out.Latitude, s.Latitude...)
		out.Longitude = append(out.Longitude, s.Longitude...)
		out.Time = append(out.Time, s.Time...)
		out.QualityFlag = append(out.QualityFlag, s.QualityFlag...)
		for j := 0; j < s.Len(); j++ {
			out.FOR = append(out.FOR, next)
			next++
		}
		for name, rows := range out.Vars {
			v, err := s.Var(name)
			if err != nil {
				return nil, fmt.Errorf("swath %d: %w", i, err)
			}
			out.Vars[name] = append(rows, v...)
		}
	}
	return out, nil
}
