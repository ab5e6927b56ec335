// Package project locates the root directory of the project opsops runs in.
package project

import (
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// DefaultMarkers are the entries whose presence marks a project root when the
// directory is not inside a git worktree.
var DefaultMarkers = []string{".git", "src", "flake.nix", "package.json", "Cargo.toml", "go.mod"}

// Locator finds the project root for Dir.
type Locator struct {
	// Dir is where the search starts, usually the working directory.
	Dir string
	// Markers overrides DefaultMarkers when non-nil.
	Markers []string
	// Ceiling, when set, is the last directory the search may return.
	Ceiling string
}

// NewLocator returns a Locator starting at dir with the default markers.
func NewLocator(dir string) *Locator {
	return &Locator{Dir: dir}
}

// Locate returns the project root. It prefers the worktree of an enclosing
// git repository and falls back to walking up until a marker entry exists.
func (l *Locator) Locate() (string, bool) {
	start, err := filepath.Abs(l.Dir)
	if err != nil {
		return "", false
	}

	if root, ok := l.gitRoot(start); ok {
		return root, true
	}
	return l.markerRoot(start)
}

func (l *Locator) gitRoot(start string) (string, bool) {
	repo, err := git.PlainOpenWithOptions(start, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", false
	}
	worktree, err := repo.Worktree()
	if err != nil {
		// bare repository
		return "", false
	}
	root := filepath.Clean(worktree.Filesystem.Root())
	if !l.withinCeiling(root) {
		return "", false
	}
	return root, true
}

func (l *Locator) markerRoot(start string) (string, bool) {
	markers := l.Markers
	if markers == nil {
		markers = DefaultMarkers
	}

	dir := start
	for {
		if !l.withinCeiling(dir) {
			return "", false
		}
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (l *Locator) withinCeiling(dir string) bool {
	if l.Ceiling == "" {
		return true
	}
	ceiling, err := filepath.Abs(l.Ceiling)
	if err != nil {
		return true
	}
	rel, err := filepath.Rel(ceiling, dir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
