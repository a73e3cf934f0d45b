// Package selection models the set of files a context menu was opened for.
//
// A Selection keeps two renditions of every path: the path as the host handed
// it over, which is what an action is later invoked with, and the
// symlink-resolved path, which is what the daemon is queried with.
package selection

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/example/syncmenu/internal/logging"
	"github.com/example/syncmenu/internal/protocol"
)

// Entry is a single selected file.
type Entry struct {
	Path     string
	Resolved string
}

// Selection is an ordered list of selected files. Duplicates are kept.
type Selection []Entry

// FromPaths builds a Selection from absolute filesystem paths. Entries that
// cannot be carried as a protocol path argument (empty, not valid UTF-8, or
// holding a tab or line break) are skipped individually.
func FromPaths(paths []string) Selection {
	out := make(Selection, 0, len(paths))
	for _, p := range paths {
		if !protocol.ValidPath(p) {
			logging.Debugf("selection: skipping unusable path %q", p)
			continue
		}
		out = append(out, Entry{Path: p, Resolved: resolve(p)})
	}
	return out
}

// FromLocations builds a Selection from host file locations, which may be
// file:// URIs or plain paths. Locations with other schemes are skipped.
func FromLocations(locations []string) Selection {
	paths := make([]string, 0, len(locations))
	for _, loc := range locations {
		if p, ok := locationPath(loc); ok {
			paths = append(paths, p)
			continue
		}
		logging.Debugf("selection: skipping non-local location %q", loc)
	}
	return FromPaths(paths)
}

// Len reports the number of entries.
func (s Selection) Len() int {
	return len(s)
}

// Paths returns a copy of the host-supplied paths in order.
func (s Selection) Paths() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Path
	}
	return out
}

// ResolvedPaths returns a copy of the resolved paths in order.
func (s Selection) ResolvedPaths() []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Resolved
	}
	return out
}

func resolve(p string) string {
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil || !protocol.ValidPath(resolved) {
		return p
	}
	if !filepath.IsAbs(resolved) {
		if abs, err := filepath.Abs(resolved); err == nil {
			resolved = abs
		}
	}
	return resolved
}

func locationPath(loc string) (string, bool) {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return "", false
	}
	if !strings.Contains(loc, "://") {
		return loc, true
	}

	u, err := url.Parse(loc)
	if err != nil || !strings.EqualFold(u.Scheme, "file") {
		return "", false
	}
	if u.Host != "" && u.Host != "localhost" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
