// Package export writes swath cross-sections as CSV for downstream tools.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rtm0/nucaps/internal/levels"
	"github.com/rtm0/nucaps/internal/nucaps"
)

const csvHeader = "for,pressure_mb,value"

var csvFmt = "%d,%.2f,%g"

// cellToCSV converts one (field-of-regard, pressure, value) cell into a CSV
// record and appends it to the string builder.
func cellToCSV(sb *strings.Builder, forIdx int, pressure, value float64) {
	sb.WriteString(fmt.Sprintf(csvFmt, forIdx, pressure, value))
	sb.WriteString("\n")
}

// CrossSection writes the variable's profile×level cells to w, one CSV row
// per cell. The field-of-regard column comes from broadcasting the swath's
// along-track coordinate against the variable grid, so the rows carry the
// same axes a cross-section plot would. Missing cells are skipped.
func CrossSection(w io.Writer, s *nucaps.Swath, variable string) error {
	rows, err := s.Var(variable)
	if err != nil {
		return err
	}
	forGrid, err := levels.Broadcast(s.FOR, len(s.Pressure), s.Len())
	if err != nil {
		return fmt.Errorf("%s export: %w", variable, err)
	}

	var sb strings.Builder
	sb.WriteString(csvHeader)
	sb.WriteString("\n")
	for i, row := range rows {
		for j, v := range row {
			if nucaps.IsMissing(v) {
				continue
			}
			cellToCSV(&sb, forGrid[i][j], s.Pressure[j], v)
		}
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

// CrossSectionFile writes a cross-section CSV to path.
func CrossSectionFile(path string, s *nucaps.Swath, variable string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := CrossSection(f, s, variable); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
