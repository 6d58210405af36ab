// Package reconcile implements the driver that orchestrates one repose
// invocation: load the existing database, drop packages whose pool file
// has vanished, scan the pool for new or updated packages, and emit the
// refreshed database.
package reconcile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/pkgrepose/repose/internal/filter"
	"github.com/pkgrepose/repose/internal/pkgmeta"
	"github.com/pkgrepose/repose/internal/repo"
	"github.com/pkgrepose/repose/internal/reposeerr"
	"github.com/pkgrepose/repose/internal/storage"
)

// Options configures a single reconciliation run.
type Options struct {
	Name    string
	Filters []filter.Filter
	Arch    pkgmeta.Arch
	Rebuild bool
}

// Run performs steps 1-4 of the reconciliation driver against store and
// returns the resulting Repo, ready for Save. It does not write the
// output archives itself; callers needing "list" mode stop after Run and
// never call Save.
func Run(store *storage.Storage, opts Options) (*repo.Repo, error) {
	r := repo.New()

	if !opts.Rebuild {
		if err := load(r, store, opts.Name); err != nil {
			return nil, err
		}
		dropVanished(r, store)
	}

	pkgs, err := store.IterPkgs()
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		if len(opts.Filters) > 0 && !filter.MatchTargets(pkg, opts.Filters) {
			continue
		}
		if !pkg.Arch.Matches(opts.Arch) {
			continue
		}

		switch verb, previous := r.Upsert(pkg); verb {
		case "adding":
			logrus.Infof("adding %s", pkg)
		case "updating":
			logrus.Infof("updating %s -> %s", previous, pkg.Version)
		}
	}

	return r, nil
}

// load reads {name}.db then {name}.files into r, tolerating either file's
// absence.
func load(r *repo.Repo, store *storage.Storage, name string) error {
	for _, suffix := range []string{".db", ".files"} {
		f, err := store.Open(name + suffix)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		src, err := autoDecompress(f)
		if err != nil {
			f.Close()
			return reposeerr.New(reposeerr.ArchiveError, err)
		}
		err = r.Load(src)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// dropVanished removes any loaded package whose recorded Filename no
// longer exists in the pool. A loaded package with no Filename at all is
// logged as a warning and dropped as well.
func dropVanished(r *repo.Repo, store *storage.Storage) {
	for _, pkg := range r.Pkgs() {
		filename, ok := pkg.Filename()
		if !ok {
			logrus.WithField("package", pkg.Name).Warn("loaded package has no filename metadata, dropping")
			r.Delete(pkg.Name)
			continue
		}
		if !store.Access(filename) {
			logrus.Infof("dropping %s", pkg)
			r.Delete(pkg.Name)
		}
	}
}

// Compressor wraps an output file in a compression filter before the tar
// stream is written to it, implementing the -j/-J/-z/-Z archive filter
// options. Its Close must flush the compressor without closing the
// underlying file.
type Compressor func(io.Writer) (io.WriteCloser, error)

// identity performs no compression: the default when none of -j/-J/-z/-Z
// is given.
func identity(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Save writes {name}.db (Desc, Depends sections) and {name}.files (Files
// section) under store, each passed through compress (or uncompressed, if
// compress is nil).
func Save(r *repo.Repo, store *storage.Storage, name string, compress Compressor) error {
	if compress == nil {
		compress = identity
	}
	open := func(path string) (io.ReadCloser, error) { return store.Open(path) }

	if err := saveOne(r, store, open, name+".db", compress, []repo.RepoEntry{repo.Desc, repo.Depends}); err != nil {
		return err
	}
	if err := saveOne(r, store, open, name+".files", compress, []repo.RepoEntry{repo.Files}); err != nil {
		return err
	}
	return nil
}

// saveOne writes name's contents to a "name.tmp" sibling and renames it
// into place only once the write has fully succeeded, so a failure or
// interruption partway through never leaves a truncated database at name.
func saveOne(r *repo.Repo, store *storage.Storage, open func(string) (io.ReadCloser, error), name string, compress Compressor, entries []repo.RepoEntry) error {
	logrus.Infof("writing %s...", name)

	tmp := name + ".tmp"
	f, err := store.Create(tmp)
	if err != nil {
		return err
	}

	cw, err := compress(f)
	if err != nil {
		f.Close()
		return reposeerr.New(reposeerr.ArchiveError, err)
	}

	if err := r.Save(cw, open, entries); err != nil {
		cw.Close()
		f.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		f.Close()
		return reposeerr.New(reposeerr.ArchiveError, err)
	}
	if err := f.Close(); err != nil {
		return reposeerr.New(reposeerr.IoError, err)
	}
	return store.Rename(tmp, name)
}

// List prints every package's display string, sorted by name.
func List(r *repo.Repo, w io.Writer) {
	pkgs := r.Pkgs()
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Name < pkgs[j].Name })
	for _, pkg := range pkgs {
		fmt.Fprintln(w, pkg)
	}
}
