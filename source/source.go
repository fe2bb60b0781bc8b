// Package source enumerates the images of a batch and names their outputs.
//
// Indices come from the sorted directory listing and are fixed before any
// work is dispatched, so output names never depend on which worker
// finishes first.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

var DefaultExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "tif", "tiff", "webp"}

type Entry struct {
	Index int
	Name  string
	Path  string
	// Ext is the lowercased extension without the dot.
	Ext string
}

// List returns the regular files of dir whose extension is in exts, in
// file name order. Extensions are compared case-insensitively, with or
// without a leading dot.
func List(dir string, exts []string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read folder %q: %w", dir, err)
	}

	allowed := normalize(exts)
	var entries []Entry
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Name()), "."))
		if !slices.Contains(allowed, ext) {
			continue
		}

		entries = append(entries, Entry{
			Index: len(entries),
			Name:  file.Name(),
			Path:  filepath.Join(dir, file.Name()),
			Ext:   ext,
		})
	}

	return entries, nil
}

func normalize(exts []string) []string {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	res := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			res = append(res, e)
		}
	}
	return res
}
