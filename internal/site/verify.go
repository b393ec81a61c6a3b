package site

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// BrokenLink is a local reference in a generated page whose target does not
// exist in the output tree.
type BrokenLink struct {
	File   string // page path relative to the output root
	Target string // the unresolved href/src value
}

// VerifyLinks parses every generated HTML file under root and checks that
// all local href/src targets resolve to files in the tree. External URLs,
// fragments, and mailto links are ignored.
func VerifyLinks(root string) ([]BrokenLink, error) {
	var broken []BrokenLink

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}

		refs, err := extractLocalRefs(p)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			// Targets resolve relative to the page's own directory.
			target := filepath.Join(filepath.Dir(p), filepath.FromSlash(ref))
			if _, statErr := os.Stat(target); statErr != nil {
				broken = append(broken, BrokenLink{File: filepath.ToSlash(rel), Target: ref})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return broken, nil
}

// extractLocalRefs parses one HTML file and returns local link-like targets.
func extractLocalRefs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, err
	}

	var refs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key != "href" && attr.Key != "src" {
					continue
				}
				if ref, ok := localRef(attr.Val); ok {
					refs = append(refs, ref)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs, nil
}

// localRef strips fragments and reports whether the value points into the
// local output tree.
func localRef(val string) (string, bool) {
	if val == "" {
		return "", false
	}
	if strings.Contains(val, "://") || strings.HasPrefix(val, "//") ||
		strings.HasPrefix(val, "mailto:") || strings.HasPrefix(val, "tel:") ||
		strings.HasPrefix(val, "data:") || strings.HasPrefix(val, "#") {
		return "", false
	}
	if idx := strings.IndexAny(val, "#?"); idx >= 0 {
		val = val[:idx]
	}
	if val == "" {
		return "", false
	}
	return path.Clean(val), true
}
