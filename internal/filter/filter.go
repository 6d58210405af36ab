// Package filter implements glob/name matching of packages against
// user-supplied selectors on the repose command line.
package filter

import (
	"path/filepath"

	"github.com/pkgrepose/repose/internal/pkgmeta"
)

// Filter wraps a user-supplied selector string, which MatchPackage also
// uses directly as a glob pattern. No third-party glob library appears anywhere in the example pack; the
// selectors repose accepts (plain names, "*"/"?"/"[...]" patterns) are
// exactly what path/filepath.Match already supports, so the stdlib
// matcher is used directly rather than reaching outside it.
type Filter struct {
	s string
}

// New builds a Filter from a selector string. It never fails: an invalid
// glob pattern simply never matches as a glob, leaving only the
// name/filename equality checks.
func New(s string) Filter {
	return Filter{s: s}
}

// String returns the original selector text.
func (f Filter) String() string { return f.s }

// MatchPackage reports whether pkg satisfies this selector: exact name
// match, exact filename match, or glob match against the filename.
func (f Filter) MatchPackage(pkg *pkgmeta.Package) bool {
	if pkg.Name == f.s {
		return true
	}

	path, ok := pkg.Filename()
	if !ok {
		return false
	}
	if path == f.s {
		return true
	}

	matched, err := filepath.Match(f.s, path)
	return err == nil && matched
}

// MatchTargets reports whether pkg satisfies any of filters. An empty or
// nil filters means "no filter": callers should check len(filters) == 0
// themselves before calling, since that case means "match everything" and
// is not the same as "match nothing" that an empty OR would imply.
func MatchTargets(pkg *pkgmeta.Package, filters []Filter) bool {
	for _, f := range filters {
		if f.MatchPackage(pkg) {
			return true
		}
	}
	return false
}
