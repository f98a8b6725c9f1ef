package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rtm0/nucaps/internal/export"
	"github.com/rtm0/nucaps/internal/nucaps"
	"github.com/rtm0/nucaps/internal/render"
)

var (
	files    = flag.String("files", "", "glob pattern matching NUCAPS granules in NetCDF format")
	variable = flag.String("var", nucaps.VarMoisture, "name of the profile-by-level variable to plot")
	pressure = flag.Float64("pressure", 500, "pressure level to map, in mb")
	quality  = flag.Int("quality", nucaps.BestQuality, "keep only profiles with this quality flag")
	nearest  = flag.Bool("nearest", false, "resolve the pressure to the closest available level instead of requiring an exact rounded match")
	extent   = flag.String("extent", "", "map bounds as minLon,maxLon,minLat,maxLat (default: derived from the swath)")
	mapOut   = flag.String("mapOut", "map.png", "output path for the level map")
	xsecOut  = flag.String("xsecOut", "xsec.png", "output path for the cross-section plot")
	csvOut   = flag.String("csvOut", "", "optional output path for a cross-section CSV")
)

func main() {
	flag.Parse()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ext, err := parseExtent(*extent)
	if err != nil {
		logger.Error("Could not parse map extent", "err", err)
		os.Exit(1)
	}

	s, err := nucaps.ReadGlob(*files, *variable)
	if err != nil {
		logger.Error("Could not read NUCAPS granules", "err", err)
		os.Exit(1)
	}
	logger.Info("swath summary", s.Summary()...)

	kept := s.FilterQuality(*quality)
	logger.Info("quality filter", "flag", *quality, "kept", kept.Len(), "of", s.Len())
	if kept.Len() == 0 {
		logger.Error("No profiles left after quality filtering", "flag", *quality)
		os.Exit(1)
	}

	ix, err := kept.LevelIndex()
	if err != nil {
		logger.Error("Could not build the pressure level index", "err", err)
		os.Exit(1)
	}
	lookup := ix.Lookup
	if *nearest {
		lookup = ix.Nearest
	}
	level, err := lookup(*pressure)
	if err != nil {
		logger.Error("Could not resolve pressure level", "pressure", *pressure, "err", err)
		os.Exit(1)
	}
	logger.Info("selected level", "requested", *pressure, "index", level, "actual", ix.Pressure(level))

	if err := render.Map(kept, *variable, level, ext, *mapOut); err != nil {
		logger.Error("Could not render the level map", "err", err)
		os.Exit(1)
	}
	logger.Info("wrote level map", "path", *mapOut)

	if err := render.CrossSection(kept, *variable, *xsecOut); err != nil {
		logger.Error("Could not render the cross-section", "err", err)
		os.Exit(1)
	}
	logger.Info("wrote cross-section", "path", *xsecOut)

	if *csvOut != "" {
		if err := export.CrossSectionFile(*csvOut, kept, *variable); err != nil {
			logger.Error("Could not export the cross-section CSV", "err", err)
			os.Exit(1)
		}
		logger.Info("wrote cross-section CSV", "path", *csvOut)
	}
}

// parseExtent parses "minLon,maxLon,minLat,maxLat". An empty string means
// no clamp.
func parseExtent(s string) (*render.Extent, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("extent %q: want four comma-separated values", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("extent %q: %w", s, err)
		}
		vals[i] = v
	}
	return &render.Extent{
		MinLon: vals[0], MaxLon: vals[1],
		MinLat: vals[2], MaxLat: vals[3],
	}, nil
}
