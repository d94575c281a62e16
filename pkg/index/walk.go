package index

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// skipDirs are pruned in every walk regardless of gitignore rules.
var skipDirs = map[string]struct{}{
	"node_modules": {},
	"__pycache__":  {},
	"venv":         {},
	"env":          {},
	"dist":         {},
	"build":        {},
	"target":       {},
	"vendor":       {},
}

type candidate struct {
	path     string
	language string
}

// collectFiles enumerates the files under root that match the requested
// languages. Hidden directories, the usual dependency/build directories
// and gitignored paths are pruned. An empty languages slice means every
// registered language.
func (ix *Indexer) collectFiles(root string, languages []string) ([]candidate, error) {
	if info, err := os.Stat(root); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, &fs.PathError{Op: "index", Path: root, Err: fs.ErrInvalid}
	}

	wanted := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		wanted[strings.ToLower(lang)] = struct{}{}
	}

	var matcher *ignore.GitIgnore
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher = gi
	}

	var files []candidate
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := skipDirs[name]; skip {
				return filepath.SkipDir
			}
			if matcher != nil {
				if rel, relErr := filepath.Rel(root, path); relErr == nil && matcher.MatchesPath(rel) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if strings.HasPrefix(name, ".") {
			return nil
		}
		lang, ok := ix.registry.DetectLanguage(path)
		if !ok {
			return nil
		}
		if len(wanted) > 0 {
			if _, ok := wanted[lang]; !ok {
				return nil
			}
		}
		if matcher != nil {
			if rel, relErr := filepath.Rel(root, path); relErr == nil && matcher.MatchesPath(rel) {
				return nil
			}
		}

		files = append(files, candidate{path: path, language: lang})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
