package pkgfile

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/pkgrepose/repose/internal/pkgmeta"
	"github.com/pkgrepose/repose/internal/reposeerr"
)

// Load opens a compressed package archive, extracts its .PKGINFO member,
// and returns the assembled Package. name is the archive's basename,
// recorded as Filename; f's size (via Fstat) is recorded as PackageSize.
// f is read but not closed.
func Load(f *os.File, name string) (*pkgmeta.Package, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, reposeerr.Wrap(reposeerr.IoError, name, err)
	}

	tr, closeDecoder, err := openTar(f, name)
	if err != nil {
		return nil, err
	}
	defer closeDecoder()

	data, err := findEntry(tr, name, ".PKGINFO")
	if err != nil {
		return nil, err
	}

	pkg, err := parsePKGINFO(data)
	if err != nil {
		if re, ok := err.(*reposeerr.Error); ok {
			re.Package = name
		}
		return nil, err
	}

	pkg.Metadata[pkgmeta.PackageSize] = pkgmeta.Size(uint64(info.Size()))
	pkg.Metadata[pkgmeta.Filename] = pkgmeta.Path(name)

	return pkg, nil
}

// Digest streams path's entire contents through SHA-256 in fixed-size
// blocks and returns the hex digest. Computed lazily by the emitter when a
// package's metadata carries no SHA256Sum.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", reposeerr.Wrap(reposeerr.IoError, path, err)
	}
	defer f.Close()
	return DigestReader(f, path)
}

// DigestReader streams r (a pool file already opened by the caller)
// through SHA-256 in fixed-size blocks and returns the hex digest.
func DigestReader(r io.Reader, name string) (string, error) {
	h := sha256.New()
	buf := make([]byte, 8192)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", reposeerr.Wrap(reposeerr.IoError, name, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileList reopens path and lists every tar member whose name does not
// begin with ".", preserving iteration order. Filters out .PKGINFO,
// .MTREE, .INSTALL and any other package-metadata member.
func FileList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, reposeerr.Wrap(reposeerr.IoError, path, err)
	}
	defer f.Close()
	return FileListReader(f, basename(path))
}

// FileListReader lists every tar member in r (a pool file already opened
// by the caller, named name for format detection and errors) whose name
// does not begin with ".", preserving iteration order.
func FileListReader(r io.Reader, name string) ([]string, error) {
	tr, closeDecoder, err := openTar(r, name)
	if err != nil {
		return nil, err
	}
	defer closeDecoder()

	var files []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, reposeerr.Wrap(reposeerr.ArchiveError, name, err)
		}
		if strings.HasPrefix(hdr.Name, ".") {
			continue
		}
		files = append(files, hdr.Name)
	}
	return files, nil
}

func basename(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
