// Package pkgfile implements the package archive reader: extracting
// .PKGINFO from a compressed tar, assembling a typed Package record, and
// lazily computing derived fields (SHA-256 digest, file listing) on
// demand.
package pkgfile

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/pkgrepose/repose/internal/reposeerr"
)

// openTar wraps r in the decompressor its filename suffix implies, then
// hands back a *tar.Reader over the decompressed stream. Format detection
// is by extension alone, matching how pacman's own tooling names package
// archives.
func openTar(r io.Reader, name string) (*tar.Reader, func() error, error) {
	closer := func() error { return nil }

	switch {
	case strings.HasSuffix(name, ".pkg.tar.zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, reposeerr.Wrap(reposeerr.ArchiveError, name, err)
		}
		closer = func() error { zr.Close(); return nil }
		return tar.NewReader(zr), closer, nil

	case strings.HasSuffix(name, ".pkg.tar.xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, reposeerr.Wrap(reposeerr.ArchiveError, name, err)
		}
		return tar.NewReader(xr), closer, nil

	case strings.HasSuffix(name, ".pkg.tar.gz"):
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, reposeerr.Wrap(reposeerr.ArchiveError, name, err)
		}
		closer = func() error { return gr.Close() }
		return tar.NewReader(gr), closer, nil

	case strings.HasSuffix(name, ".pkg.tar.bz2"):
		return tar.NewReader(bzip2.NewReader(r)), closer, nil

	case strings.HasSuffix(name, ".pkg.tar"):
		return tar.NewReader(r), closer, nil

	default:
		// A pool can contain arbitrary non-package files (stray index
		// archives, lockfiles, editor droppings). Since repose has no way
		// to recognize them as packages at all, treat them the same as
		// MissingPKGINFO rather than aborting the whole scan.
		return nil, nil, reposeerr.Wrap(reposeerr.MissingPKGINFO, name, nil)
	}
}

// findEntry scans tr for the named member and returns its full contents.
// Returns reposeerr MissingPKGINFO if the archive is exhausted first.
func findEntry(tr *tar.Reader, name, member string) ([]byte, error) {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, reposeerr.Wrap(reposeerr.MissingPKGINFO, name, nil)
		}
		if err != nil {
			return nil, reposeerr.Wrap(reposeerr.ArchiveError, name, err)
		}
		if hdr.Name == member {
			data, err := io.ReadAll(tr)
			if err != nil {
				return nil, reposeerr.Wrap(reposeerr.ArchiveError, name, err)
			}
			return data, nil
		}
	}
}
