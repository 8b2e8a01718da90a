package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Collect expands paths into the audio files to analyse. Directories contribute
// their direct children whose extension is in exts; explicit files are kept as
// given. The result is sorted and de-duplicated.
func Collect(paths []string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".wav"}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		for _, e := range entries {
			if e.IsDir() || !hasExt(e.Name(), exts) {
				continue
			}
			add(filepath.Join(p, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
