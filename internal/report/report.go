// Package report renders comparison and sweep results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cxd309/laptime-engine/internal/engine"
)

// Comparison writes one table per line: lap time, gap to the fastest
// vehicle, average and minimum speed. Incomplete laps are marked.
func Comparison(w io.Writer, log engine.Log) error {
	var sb strings.Builder
	for i, line := range lineOrder(log) {
		if i > 0 {
			sb.WriteString("\n")
		}
		results := log.ForLine(line)
		best, _ := engine.Fastest(results)

		title := fmt.Sprintf("Line %s (%.0f m)", line, best.Lap.Distance)
		if dir := direction(best.Turning); dir != "" {
			title = fmt.Sprintf("Line %s (%.0f m, %s)", line, best.Lap.Distance, dir)
		}
		fmt.Fprintf(&sb, "%s\n", styleTitle.Render(title))
		sb.WriteString(styleHeader.Render(fmt.Sprintf("  %-28s %10s %9s %10s %10s", "vehicle", "lap", "gap", "avg km/h", "min km/h")))
		sb.WriteString("\n")

		for _, r := range results {
			row := fmt.Sprintf("  %-28s %9.2fs %+8.2fs %10.1f %10.1f",
				r.Vehicle,
				r.Lap.Seconds,
				r.Lap.Seconds-best.Lap.Seconds,
				r.Lap.AverageSpeed()*3.6,
				minSpeed(r.Profile.Speeds)*3.6,
			)
			switch {
			case r.Lap.Incomplete:
				row = styleWarn.Render(row + " " + iconIncomplete)
			case r.Vehicle == best.Vehicle:
				row = styleFastest.Render(row + " " + iconFastest)
			}
			sb.WriteString(row)
			sb.WriteString("\n")
		}

		for _, r := range results {
			if r.Lap.Incomplete {
				sb.WriteString(styleWarn.Render(fmt.Sprintf(
					"  %s %s: %d zero-speed segment(s) excluded, lap time may be inaccurate",
					iconIncomplete, r.Vehicle, len(r.Lap.Excluded))))
				sb.WriteString("\n")
			}
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Sweep writes the corner-radius sweep table.
func Sweep(w io.Writer, vehicle string, rows []engine.SweepRow) error {
	var sb strings.Builder
	sb.WriteString(styleTitle.Render("Corner sweep: " + vehicle))
	sb.WriteString("\n")
	sb.WriteString(styleHeader.Render(fmt.Sprintf("  %8s %10s %9s %9s %9s", "radius", "max m/s", "arc m", "naive s", "solved s")))
	sb.WriteString("\n")
	for _, r := range rows {
		row := fmt.Sprintf("  %7.1fm %10.2f %9.2f %9.2f %9.2f", r.Radius, r.GripSpeed, r.ArcLength, r.NaiveTime, r.SolvedTime)
		if r.Incomplete {
			row = styleWarn.Render(row + " " + iconIncomplete)
		}
		sb.WriteString(row)
		sb.WriteString("\n")
	}
	sb.WriteString(styleMuted.Render("  naive: constant grip-limited speed; solved: two-pass accel/brake profile"))
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func lineOrder(log engine.Log) []string {
	var order []string
	seen := make(map[string]bool)
	for _, r := range log.Results {
		if !seen[r.Line] {
			seen[r.Line] = true
			order = append(order, r.Line)
		}
	}
	return order
}

// direction names the lap direction once a line turns through at least half
// a revolution; shorter open lines get no label.
func direction(turning float64) string {
	switch {
	case turning >= math.Pi:
		return "anticlockwise"
	case turning <= -math.Pi:
		return "clockwise"
	}
	return ""
}

func minSpeed(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, s := range v[1:] {
		m = min(m, s)
	}
	return m
}
