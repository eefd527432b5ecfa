package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// Directories pruned during traversal, matched by exact basename.
var defaultExcludeDirs = map[string]bool{
	// version control
	".git": true,
	".svn": true,
	".hg":  true,
	// CI metadata
	".github": true,
	// dependencies
	"node_modules":  true,
	"vendor":        true,
	"site-packages": true,
	".cargo":        true,
	// virtual environments
	".venv":       true,
	"venv":        true,
	"__pycache__": true,
	// build output
	"target": true,
	"dist":   true,
	"build":  true,
	".next":  true,
	".nuxt":  true,
	// editors
	".idea":   true,
	".vscode": true,
}

// Extensions of binary, media and archive formats that are never read.
var binaryExtensions = map[string]bool{
	// images
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true, "svg": true, "ico": true, "webp": true,
	// archives
	"zip": true, "tar": true, "gz": true, "rar": true, "7z": true,
	// executables and objects
	"exe": true, "dll": true, "so": true, "dylib": true, "bin": true, "o": true, "a": true, "lib": true,
	// documents
	"pdf": true, "doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true,
	// audio and video
	"mp3": true, "mp4": true, "mov": true, "avi": true, "mkv": true, "flv": true, "wmv": true,
	"wav": true, "flac": true, "aac": true, "ogg": true,
}

func isExcludedDir(name string) bool {
	return defaultExcludeDirs[name]
}

// isBinaryPath reports whether the file extension marks p as binary. Files
// without an extension are treated as text.
func isBinaryPath(p string) bool {
	ext := filepath.Ext(p)
	if ext == "" {
		return false
	}
	return binaryExtensions[strings.ToLower(ext[1:])]
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last. Matching uses doublestar
// semantics on forward-slash paths and on the basename.
func allowedByGlobs(relPath string, cfg Config) bool {
	if cfg.IncludeGlobs == "" && cfg.ExcludeGlobs == "" {
		return true
	}
	rp := filepath.ToSlash(relPath)
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			if t := trimGlobPrefix(p); t != p {
				out = append(out, t)
			}
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	base := pathToMatch
	if i := strings.LastIndexByte(pathToMatch, '/'); i >= 0 {
		base = pathToMatch[i+1:]
	}
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
