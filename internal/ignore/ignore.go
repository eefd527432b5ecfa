package ignore

import (
	"bufio"
	"os"
	"sort"
	"strings"
)

// FileName is the per-root file listing rule names to skip.
const FileName = ".fastsecretignore"

// Set holds rule names excluded from evaluation. Matching is exact and
// case-sensitive.
type Set map[string]struct{}

// Parse builds a Set from a comma-separated list, trimming whitespace and
// dropping empty items.
func Parse(list string) Set {
	s := Set{}
	for _, name := range strings.Split(list, ",") {
		s.Add(name)
	}
	return s
}

// Of builds a Set from individual names.
func Of(names ...string) Set {
	s := Set{}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Load reads rule names from a file, one per line. Blank lines and lines
// starting with # are skipped. A missing file yields an empty set and the
// underlying error.
func Load(path string) (Set, error) {
	s := Set{}
	f, err := os.Open(path)
	if err != nil {
		return s, err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.Add(line)
	}
	return s, sc.Err()
}

func (s Set) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether name is ignored. A nil Set ignores nothing.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Merge returns a new Set holding the names of s and other.
func (s Set) Merge(other Set) Set {
	out := make(Set, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Names returns the ignored names in sorted order.
func (s Set) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
