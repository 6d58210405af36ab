package repo

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pkgrepose/repose/internal/desc"
	"github.com/pkgrepose/repose/internal/pkgfile"
	"github.com/pkgrepose/repose/internal/pkgmeta"
)

// RepoEntry is the closed set of per-package members a repose invocation
// can write: a database member, a dependency member or a file-list
// member. A closed variant with a switch on render is clearer here than a
// trait-object-style registry, and there are only ever three cases.
type RepoEntry int

const (
	Desc RepoEntry = iota
	Depends
	Files
)

// Filename is the archive member name this RepoEntry writes.
func (e RepoEntry) Filename() string {
	switch e {
	case Desc:
		return "desc"
	case Depends:
		return "depends"
	case Files:
		return "files"
	default:
		return ""
	}
}

// opener opens a pool-relative path for reading, satisfied by
// *storage.Storage. Kept as a function type rather than an imported
// interface so repo does not need to depend on the storage package.
type opener func(path string) (io.ReadCloser, error)

// render produces the member's full text, computing SHA256Sum or Files
// lazily (via open) when pkg's metadata lacks them.
func (e RepoEntry) render(pkg *pkgmeta.Package, open opener) (string, error) {
	switch e {
	case Desc:
		if err := ensureSHA256(pkg, open); err != nil {
			return "", err
		}
		return desc.Render(desc.DescOrder, pkg.Metadata), nil
	case Depends:
		return desc.Render(desc.DependsOrder, pkg.Metadata), nil
	case Files:
		if err := ensureFiles(pkg, open); err != nil {
			return "", err
		}
		return desc.Render(desc.FilesOrder, pkg.Metadata), nil
	default:
		return "", nil
	}
}

func ensureSHA256(pkg *pkgmeta.Package, open opener) error {
	if _, ok := pkg.Metadata[pkgmeta.SHA256Sum]; ok {
		return nil
	}
	filename, ok := pkg.Filename()
	if !ok {
		return nil
	}

	logrus.WithField("package", pkg.Name).Info("computing sha256sum")
	f, err := open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	sum, err := pkgfile.DigestReader(f, filename)
	if err != nil {
		return err
	}
	pkg.Metadata[pkgmeta.SHA256Sum] = pkgmeta.Text(sum)
	return nil
}

func ensureFiles(pkg *pkgmeta.Package, open opener) error {
	if _, ok := pkg.Metadata[pkgmeta.Files]; ok {
		return nil
	}
	filename, ok := pkg.Filename()
	if !ok {
		return nil
	}

	logrus.WithField("package", pkg.Name).Info("computing file list")
	f, err := open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	files, err := pkgfile.FileListReader(f, filename)
	if err != nil {
		return err
	}
	pkg.Metadata[pkgmeta.Files] = pkgmeta.List(files)
	return nil
}
