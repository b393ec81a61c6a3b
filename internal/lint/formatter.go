package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, sourceDir string) error
}

// NewFormatter returns the formatter for the configured output format.
func NewFormatter(format string) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, sourceDir string) error {
	if _, err := fmt.Fprintf(w, "Linting site source in: %s\n", sourceDir); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}

	// Stable ordering: group issues by file, files sorted.
	issuesByFile := make(map[string][]Issue)
	var files []string
	for _, issue := range result.Issues {
		if _, seen := issuesByFile[issue.FilePath]; !seen {
			files = append(files, issue.FilePath)
		}
		issuesByFile[issue.FilePath] = append(issuesByFile[issue.FilePath], issue)
	}
	sort.Strings(files)

	for _, file := range files {
		for _, issue := range issuesByFile[file] {
			if err := f.formatIssue(w, issue); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprintln(w, strings.Repeat("━", 60)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Results:\n  %d files scanned\n", result.FilesTotal); err != nil {
		return err
	}

	if n := result.ErrorCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d error%s (blocks build)\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if n := result.WarningCount(); n > 0 {
		if _, err := fmt.Fprintf(w, "  %d warning%s (should fix)\n", n, pluralize(n)); err != nil {
			return err
		}
	}
	if !result.HasErrors() && !result.HasWarnings() {
		if _, err := fmt.Fprintln(w, "  no issues found"); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	location := issue.FilePath
	if issue.Line > 0 {
		location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
	}
	if _, err := fmt.Fprintf(w, "\n[%s] %s  (%s)\n  %s\n", issue.Severity, location, issue.Rule, issue.Message); err != nil {
		return err
	}
	if issue.Fix != "" {
		if _, err := fmt.Fprintf(w, "  fix: %s\n", issue.Fix); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter emits the result as a single JSON document.
type JSONFormatter struct{}

// Format outputs results as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, result *Result, sourceDir string) error {
	doc := struct {
		SourceDir string  `json:"source_dir"`
		Files     int     `json:"files_scanned"`
		Errors    int     `json:"errors"`
		Warnings  int     `json:"warnings"`
		Issues    []Issue `json:"issues"`
	}{
		SourceDir: sourceDir,
		Files:     result.FilesTotal,
		Errors:    result.ErrorCount(),
		Warnings:  result.WarningCount(),
		Issues:    result.Issues,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
