package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Walk traverses cfg.Root and invokes handle for each file that survives the
// directory deny-list, the binary extension filter, the include/exclude globs
// and the size limit. Files are visited in lexical order. Entries that cannot
// be read are skipped. It returns how many files the filters rejected.
//
// Paths passed to handle start with cfg.Root exactly as given. A root that is
// a symlink to a directory is followed.
func Walk(cfg Config, handle func(path string)) (int, error) {
	skipped := 0
	walkRoot := cfg.Root
	if !strings.HasSuffix(walkRoot, string(filepath.Separator)) {
		// a trailing separator makes the root Lstat resolve a symlink
		walkRoot += string(filepath.Separator)
	}
	err := filepath.WalkDir(walkRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if p == walkRoot {
			return nil
		}
		rel, err := filepath.Rel(walkRoot, p)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if isExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		size, ok := regularSize(p, d)
		if !ok {
			return nil
		}
		if !eligible(cfg, rel, size) {
			skipped++
			return nil
		}
		handle(underRoot(cfg.Root, rel))
		return nil
	})
	return skipped, err
}

// underRoot joins rel onto root without cleaning root, so "./repo/" yields
// "./repo/a.txt".
func underRoot(root, rel string) string {
	if strings.HasSuffix(root, string(filepath.Separator)) {
		return root + rel
	}
	return root + string(filepath.Separator) + rel
}

// regularSize resolves d to a regular file, following a symlink at the leaf,
// and returns its size. Directories behind symlinks are not descended.
func regularSize(p string, d fs.DirEntry) (int64, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			return 0, false
		}
		return info.Size(), true
	}
	if !d.Type().IsRegular() {
		return 0, false
	}
	info, err := d.Info()
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

// eligible applies the per-file filters in order of cost: extension, globs,
// then size.
func eligible(cfg Config, rel string, size int64) bool {
	if isBinaryPath(rel) {
		return false
	}
	if !allowedByGlobs(rel, cfg) {
		return false
	}
	if cfg.MaxBytes > 0 && size > cfg.MaxBytes {
		return false
	}
	return true
}

// CountTargets returns the number of files a scan of cfg would read. It
// applies the same selection logic as Scan without opening any file.
func CountTargets(cfg Config) (int, error) {
	info, err := os.Stat(cfg.Root)
	if err != nil {
		if isNotExist(err) {
			return 0, nil
		}
		return 0, &ScanError{Path: cfg.Root, Err: err}
	}
	if info.Mode().IsRegular() {
		if isBinaryPath(cfg.Root) || (cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes) {
			return 0, nil
		}
		return 1, nil
	}
	if !info.IsDir() {
		return 0, nil
	}
	n := 0
	_, err = Walk(cfg, func(string) { n++ })
	return n, err
}
