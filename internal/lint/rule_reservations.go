package lint

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// seatIDPattern matches hall seat identifiers: a row letter (A through Q,
// skipping I) followed by a seat number between 1 and 24.
var seatIDPattern = regexp.MustCompile(`^[A-HJ-Q](?:[1-9]|1[0-9]|2[0-4])$`)

// ReservationRule validates reservation files: three header lines (show,
// venue, date) followed by one reserved seat identifier per line.
type ReservationRule struct{}

// Name returns the rule identifier.
func (r *ReservationRule) Name() string {
	return "reservation-format"
}

// AppliesTo returns true for reservation files inside page directories.
func (r *ReservationRule) AppliesTo(rel string) bool {
	return path.Ext(rel) == ".txt" && path.Dir(rel) != "."
}

// Check validates one reservation file.
func (r *ReservationRule) Check(root, rel string) ([]Issue, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}

	var issues []Issue
	headers := 0
	for i, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		if headers < 3 {
			headers++
			if strings.TrimSpace(line) == "" {
				issues = append(issues, Issue{
					FilePath:    rel,
					Severity:    SeverityWarning,
					Rule:        r.Name(),
					Message:     "Empty header line",
					Explanation: "The first three non-comment lines describe the show, the venue, and the date; an empty one renders as a blank table cell.",
					Line:        i + 1,
				})
			}
			continue
		}

		seat := strings.TrimSpace(line)
		if seat == "" {
			continue
		}
		if !seatIDPattern.MatchString(seat) {
			issues = append(issues, Issue{
				FilePath:    rel,
				Severity:    SeverityError,
				Rule:        r.Name(),
				Message:     "Invalid seat identifier: " + seat,
				Explanation: "Seats are a row letter (A to Q, no I) followed by a number from 1 to 24, e.g. A1 or Q12.",
				Fix:         "Correct or remove the seat line",
				Line:        i + 1,
			})
		}
	}

	if headers < 3 {
		issues = append(issues, Issue{
			FilePath:    rel,
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     "Missing header lines",
			Explanation: "Reservation files start with three lines: the show, the venue, and the date. Lines starting with '#' are comments.",
			Fix:         "Add the missing header lines",
		})
	}
	return issues, nil
}
