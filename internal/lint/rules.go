package lint

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// FilenameRule validates that source file names stay lowercase and free of
// spaces, so generated URLs are stable across platforms.
type FilenameRule struct{}

// Name returns the rule identifier.
func (r *FilenameRule) Name() string {
	return "filename-conventions"
}

// AppliesTo returns true for every source file.
func (r *FilenameRule) AppliesTo(string) bool {
	return true
}

// Check validates filename conventions.
func (r *FilenameRule) Check(_, rel string) ([]Issue, error) {
	filename := path.Base(rel)
	var issues []Issue

	if hasUppercase(filename) {
		suggested := strings.ToLower(filename)
		issues = append(issues, Issue{
			FilePath: rel,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "Filename contains uppercase letters",
			Explanation: `Uppercase letters in filenames cause URL inconsistency and
case-sensitivity issues across platforms.

Current:   ` + filename + `
Suggested: ` + suggested,
			Fix: "Rename to lowercase: " + suggested,
		})
	}

	if strings.Contains(filename, " ") {
		suggested := strings.ReplaceAll(strings.ToLower(filename), " ", "-")
		issues = append(issues, Issue{
			FilePath: rel,
			Severity: SeverityError,
			Rule:     r.Name(),
			Message:  "Filename contains spaces",
			Explanation: `Spaces in filenames create problematic URLs with %20 encoding.

Current:   ` + filename + `
Suggested: ` + suggested,
			Fix: "Rename using hyphens: " + suggested,
		})
	}

	return issues, nil
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// imageSrcPattern matches bare local src attributes in page sources. External
// URLs and already-rewritten static/ paths are excluded by the character class.
var imageSrcPattern = regexp.MustCompile(`src="([^"/:]+)"`)

// ImageRefRule validates that images referenced from a page source exist in
// the page's own directory, where the generator stages them from.
type ImageRefRule struct{}

// Name returns the rule identifier.
func (r *ImageRefRule) Name() string {
	return "image-references"
}

// AppliesTo returns true for page sources.
func (r *ImageRefRule) AppliesTo(rel string) bool {
	return path.Base(rel) == "page.md"
}

// Check scans src attributes for targets missing from the page directory.
func (r *ImageRefRule) Check(root, rel string) ([]Issue, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}

	pageDir := path.Dir(rel)
	var issues []Issue
	for _, match := range imageSrcPattern.FindAllStringSubmatch(string(data), -1) {
		target := match[1]
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(pageDir), target)); err != nil {
			issues = append(issues, Issue{
				FilePath:    rel,
				Severity:    SeverityError,
				Rule:        r.Name(),
				Message:     "Referenced image not found: " + target,
				Explanation: "Page images must live next to page.md so the generator can stage them into static/.",
				Fix:         "Add " + target + " to " + pageDir + "/ or fix the src attribute",
			})
		}
	}
	return issues, nil
}
