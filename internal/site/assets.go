package site

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// imageExtensions are the page-level image types that get content-addressed
// into static/.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}

// imageUID derives the stable content-addressed name for a page image. The
// hash covers the slash-joined source-relative path (including the source
// root's base name), so the generated names are stable across machines and
// identical for unchanged trees.
func imageUID(sourceRoot, pageDir, fileName string) string {
	rel := path.Join(filepath.Base(sourceRoot), pageDir, fileName)
	sum := sha1.Sum([]byte(rel))
	return hex.EncodeToString(sum[:])
}

// stagePageImages copies every image in the page's source directory into the
// staging static/ dir under its content-addressed name and rewrites matching
// src attributes in the rendered body. It returns the rewritten body and the
// number of images staged.
func stagePageImages(body, sourceRoot, pageDir, stageDir string) (string, int, error) {
	srcDir := filepath.Join(sourceRoot, pageDir)
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return "", 0, fmt.Errorf("read page directory %s: %w", srcDir, err)
	}

	staged := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}

		uid := imageUID(sourceRoot, pageDir, entry.Name())
		dst := path.Join("static", uid+ext)
		body = strings.ReplaceAll(body,
			fmt.Sprintf(`src="%s"`, entry.Name()),
			fmt.Sprintf(`src="%s"`, dst))

		if err := copyFile(filepath.Join(srcDir, entry.Name()), filepath.Join(stageDir, filepath.FromSlash(dst))); err != nil {
			return "", staged, fmt.Errorf("stage image %s: %w", entry.Name(), err)
		}
		staged++
	}
	return body, staged, nil
}
