package repo

import (
	"archive/tar"
	"io"
	"time"

	"github.com/pkgrepose/repose/internal/reposeerr"
)

// Save writes a tar stream (PAX format, no compression filter — the
// caller supplies the compressed sink if desired) containing one
// directory per package, and one regular file per requested RepoEntry
// whose rendering is non-empty. open resolves a package's pool-relative
// Filename to a readable stream, used only for lazy SHA256Sum/Files
// derivation.
func (r *Repo) Save(w io.Writer, open opener, entries []RepoEntry) error {
	tw := tar.NewWriter(w)

	now := time.Now()
	if err := tw.WriteHeader(dirHeader("/", now)); err != nil {
		return reposeerr.New(reposeerr.ArchiveError, err)
	}

	for _, pkg := range r.Pkgs() {
		dir := "/" + pkg.String() + "/"
		if err := tw.WriteHeader(dirHeader(dir, now)); err != nil {
			return reposeerr.New(reposeerr.ArchiveError, err)
		}

		for _, entry := range entries {
			page, err := entry.render(pkg, open)
			if err != nil {
				return err
			}
			if page == "" {
				continue
			}

			hdr := fileHeader(dir+entry.Filename(), len(page), now)
			if err := tw.WriteHeader(hdr); err != nil {
				return reposeerr.New(reposeerr.ArchiveError, err)
			}
			if _, err := tw.Write([]byte(page)); err != nil {
				return reposeerr.New(reposeerr.ArchiveError, err)
			}
		}
	}

	if err := tw.Close(); err != nil {
		return reposeerr.New(reposeerr.ArchiveError, err)
	}
	return nil
}

func dirHeader(name string, now time.Time) *tar.Header {
	return &tar.Header{
		Format:     tar.FormatPAX,
		Typeflag:   tar.TypeDir,
		Name:       name,
		Mode:       0700,
		Uname:      "repose",
		Gname:      "repose",
		ModTime:    now,
		AccessTime: now,
		ChangeTime: now,
	}
}

func fileHeader(name string, size int, now time.Time) *tar.Header {
	return &tar.Header{
		Format:     tar.FormatPAX,
		Typeflag:   tar.TypeReg,
		Name:       name,
		Mode:       0600,
		Size:       int64(size),
		Uname:      "repose",
		Gname:      "repose",
		ModTime:    now,
		AccessTime: now,
		ChangeTime: now,
	}
}
