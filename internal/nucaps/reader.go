package nucaps

import (
	"fmt"
	"path/filepath"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
)

// Standard NUCAPS EDR variable names.
const (
	VarLatitude    = "Latitude"
	VarLongitude   = "Longitude"
	VarTime        = "Time"
	VarQualityFlag = "Quality_Flag"
	VarPressure    = "Pressure"

	VarTemperature = "Temperature"
	VarMoisture    = "H2O_MR"
	VarOzone       = "O3_MR"
)

// Open reads one NUCAPS granule and returns it as a Swath carrying the
// requested profile×level variables. The pressure-level sequence is taken
// from the first profile; NUCAPS levels vary only below rounding precision
// within a granule, so one profile stands for all of them.
func Open(path string, vars ...string) (*Swath, error) {
	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer nc.Close()

	s := &Swath{Vars: make(map[string][][]float64, len(vars))}
	if s.Latitude, err = floats1(nc, VarLatitude); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Longitude, err = floats1(nc, VarLongitude); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Time, err = floats1(nc, VarTime); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.QualityFlag, err = ints1(nc, VarQualityFlag); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	pressure, err := floats2(nc, VarPressure)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(pressure) == 0 {
		return nil, fmt.Errorf("%s: %s has no profiles", path, VarPressure)
	}
	s.Pressure = pressure[0]

	for _, name := range vars {
		v, err := floats2(nc, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.Vars[name] = v
	}

	n := s.Len()
	s.FOR = make([]int, n)
	for i := range s.FOR {
		s.FOR[i] = i
	}
	if len(s.Longitude) != n || len(s.Time) != n || len(s.QualityFlag) != n || len(pressure) != n {
		return nil, fmt.Errorf("%s: coordinate lengths disagree", path)
	}
	for name, rows := range s.Vars {
		if len(rows) != n {
			return nil, fmt.Errorf("%s: %s has %d profiles, want %d", path, name, len(rows), n)
		}
		for _, row := range rows {
			if len(row) != len(s.Pressure) {
				return nil, fmt.Errorf("%s: %s has %d levels, want %d",
					path, name, len(row), len(s.Pressure))
			}
		}
	}
	return s, nil
}

// ReadGlob reads every granule matching pattern and concatenates them in
// glob order into a single swath.
func ReadGlob(pattern string, vars ...string) (*Swath, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match %q", pattern)
	}
	swaths := make([]*Swath, 0, len(paths))
	for _, p := range paths {
		s, err := Open(p, vars...)
		if err != nil {
			return nil, err
		}
		swaths = append(swaths, s)
	}
	return Concat(swaths...)
}

func floats1(nc api.Group, name string) ([]float64, error) {
	vr, err := nc.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	switch v := vr.Values.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("read %s: unexpected type %T", name, vr.Values)
}

func floats2(nc api.Group, name string) ([][]float64, error) {
	vr, err := nc.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	switch v := vr.Values.(type) {
	case [][]float64:
		return v, nil
	case [][]float32:
		out := make([][]float64, len(v))
		for i, row := range v {
			out[i] = make([]float64, len(row))
			for j, x := range row {
				out[i][j] = float64(x)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("read %s: unexpected type %T", name, vr.Values)
}

func ints1(nc api.Group, name string) ([]int, error) {
	vr, err := nc.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	switch v := vr.Values.(type) {
	case []int32:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []int16:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []int8:
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	case []float32:
		// Some granules store flags as floats.
		out := make([]int, len(v))
		for i, x := range v {
			out[i] = int(x)
		}
		return out, nil
	}
	return nil, fmt.Errorf("read %s: unexpected type %T", name, vr.Values)
}
