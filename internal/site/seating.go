package site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Performance is one reservation file: three header lines describing the
// show, then one reserved seat ID per line. Lines starting with '#' are
// comments.
type Performance struct {
	Stem     string // file name without extension, used for the SVG name
	What     string
	Where    string
	When     string
	Reserved []string
}

// parseReservations reads a single reservation file.
func parseReservations(path string) (*Performance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("reservation file %s: expected 3 header lines (what/where/when)", filepath.Base(path))
	}

	perf := &Performance{
		Stem:  strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		What:  lines[0],
		Where: lines[1],
		When:  lines[2],
	}
	for _, line := range lines[3:] {
		line = strings.TrimSpace(line)
		if line != "" {
			perf.Reserved = append(perf.Reserved, line)
		}
	}
	return perf, nil
}

// loadPerformances parses every .txt reservation file in dir, sorted by name.
func loadPerformances(dir string) ([]*Performance, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	performances := make([]*Performance, 0, len(matches))
	for _, match := range matches {
		perf, err := parseReservations(match)
		if err != nil {
			return nil, err
		}
		performances = append(performances, perf)
	}
	return performances, nil
}
