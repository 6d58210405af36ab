// Package repo implements the in-memory package-name -> Package mapping at
// the center of a repose invocation: load an existing index archive,
// merge in a pool scan, and save the result back out as new index
// archives.
package repo

import (
	"archive/tar"
	"io"
	"strings"

	"github.com/pkgrepose/repose/internal/desc"
	"github.com/pkgrepose/repose/internal/pkgmeta"
	"github.com/pkgrepose/repose/internal/reposeerr"
)

// Repo is a mapping of package name to its current Package record. No
// ordering is persisted; lifecycle is create empty, Load and/or FromIter,
// consult, Save, discard.
type Repo struct {
	cache map[string]*pkgmeta.Package
}

// New returns an empty Repo.
func New() *Repo {
	return &Repo{cache: make(map[string]*pkgmeta.Package)}
}

// Load reads a previously emitted index archive (desc/depends/files tar
// stream) and merges its packages into the repo. Load may be called more
// than once: later calls merge into existing entries rather than
// replacing them, since the .db archive (desc and depends members) and the
// .files archive are loaded one after another against the same Repo.
// Leading slashes on member names are ignored. Directory names that fail
// to parse as "<name>-<version>" are skipped.
func (r *Repo) Load(src io.Reader) error {
	tr := tar.NewReader(src)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return reposeerr.New(reposeerr.ArchiveError, err)
		}

		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		dir, _ := splitMember(strings.TrimLeft(hdr.Name, "/"))
		name, version, ok := pkgmeta.ParseDirName(dir)
		if !ok {
			continue
		}

		pkg, ok := r.cache[name]
		if !ok {
			pkg = pkgmeta.New(name, version, pkgmeta.Arch{})
			r.cache[name] = pkg
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return reposeerr.New(reposeerr.ArchiveError, err)
		}

		parsed, err := desc.Parse(data)
		if err != nil {
			return err
		}
		for entry, m := range parsed {
			pkg.Metadata[entry] = m
			switch entry {
			case pkgmeta.Arch:
				pkg.Arch = pkgmeta.NewArch(m.AsText())
			}
		}
	}
	return nil
}

func splitMember(path string) (dir, file string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[:i], path[i+1:]
		}
	}
	return "", path
}

// FromIter builds a Repo from a pool scan: on a name collision, the
// strictly greater version (by vercmp) is retained, the first seen kept
// on ties.
func FromIter(pkgs []*pkgmeta.Package) *Repo {
	r := New()
	for _, pkg := range pkgs {
		existing, ok := r.cache[pkg.Name]
		if !ok || existing.Version.Less(pkg.Version) {
			r.cache[pkg.Name] = pkg
		}
	}
	return r
}

// Get returns the Package registered under name, if any.
func (r *Repo) Get(name string) (*pkgmeta.Package, bool) {
	pkg, ok := r.cache[name]
	return pkg, ok
}

// Upsert inserts pkg if no package of that name exists yet, or replaces
// the existing one if pkg's version strictly exceeds it. Returns a
// one-word verb describing what happened, for the caller to log:
// "adding", "updating" or "" (no change).
func (r *Repo) Upsert(pkg *pkgmeta.Package) (verb string, previous *pkgmeta.Package) {
	existing, ok := r.cache[pkg.Name]
	if !ok {
		r.cache[pkg.Name] = pkg
		return "adding", nil
	}
	if existing.Version.Less(pkg.Version) {
		r.cache[pkg.Name] = pkg
		return "updating", existing
	}
	return "", nil
}

// Delete removes name from the repo.
func (r *Repo) Delete(name string) {
	delete(r.cache, name)
}

// Pkgs returns every Package currently registered, in unspecified order.
func (r *Repo) Pkgs() []*pkgmeta.Package {
	pkgs := make([]*pkgmeta.Package, 0, len(r.cache))
	for _, pkg := range r.cache {
		pkgs = append(pkgs, pkg)
	}
	return pkgs
}
