package lint

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/atelier-theatral/sitectl/internal/config"
)

// Linter validates a site source tree before generation.
type Linter struct {
	cfg   *Config
	site  *config.Config
	rules []Rule
}

// NewLinter creates a linter for the given site configuration.
func NewLinter(cfg *Config, site *config.Config) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}

	return &Linter{
		cfg:  cfg,
		site: site,
		rules: []Rule{
			&FilenameRule{},
			&ImageRefRule{},
			&ReservationRule{},
		},
	}
}

// Run lints the source tree rooted at sourceDir: structural checks first
// (required pages and shared assets), then per-file rules over the whole tree.
func (l *Linter) Run(sourceDir string) (*Result, error) {
	result := &Result{Issues: []Issue{}}

	l.appendIssues(result, l.checkStructure(sourceDir))

	err := filepath.WalkDir(sourceDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories and files.
		if d.Name()[0] == '.' && d.Name() != "." {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		result.FilesTotal++
		return l.lintFile(sourceDir, rel, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lintFile applies all applicable rules to a single file.
func (l *Linter) lintFile(root, rel string, result *Result) error {
	for _, rule := range l.rules {
		if !rule.AppliesTo(rel) {
			continue
		}
		issues, err := rule.Check(root, rel)
		if err != nil {
			return err
		}
		l.appendIssues(result, issues)
	}
	return nil
}

// checkStructure validates that every configured page directory carries a
// page source and that the shared assets exist at the source root.
func (l *Linter) checkStructure(sourceDir string) []Issue {
	var issues []Issue

	if l.site != nil {
		for _, page := range l.site.Site.Pages {
			src := filepath.Join(sourceDir, page.Dir, "page.md")
			if _, err := os.Stat(src); err != nil {
				issues = append(issues, Issue{
					FilePath:    filepath.ToSlash(filepath.Join(page.Dir, "page.md")),
					Severity:    SeverityError,
					Rule:        "page-source",
					Message:     "Missing page source for page \"" + page.Name + "\"",
					Explanation: "Every configured page needs a page.md in its source directory; the generator fails without it.",
					Fix:         "Create " + filepath.ToSlash(filepath.Join(page.Dir, "page.md")),
				})
			}
		}
	}

	for _, name := range []string{"logo.png", "style.css"} {
		if _, err := os.Stat(filepath.Join(sourceDir, name)); err != nil {
			issues = append(issues, Issue{
				FilePath:    name,
				Severity:    SeverityError,
				Rule:        "shared-assets",
				Message:     "Missing shared asset " + name,
				Explanation: "The source root must carry the shared assets copied into static/ on every build.",
				Fix:         "Add " + name + " to the source root",
			})
		}
	}
	return issues
}

func (l *Linter) appendIssues(result *Result, issues []Issue) {
	for _, issue := range issues {
		if l.cfg.Quiet && issue.Severity != SeverityError {
			continue
		}
		result.Issues = append(result.Issues, issue)
	}
}
