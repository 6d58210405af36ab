// Package storage implements directory-descriptor-pinned I/O: every file
// operation resolves relative to a directory descriptor opened once at
// construction, so that the process's current working directory never
// affects behavior and a rename of an intermediate path component cannot
// redirect a read or write underway.
package storage

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/sys/unix"

	"github.com/pkgrepose/repose/internal/pkgfile"
	"github.com/pkgrepose/repose/internal/pkgmeta"
	"github.com/pkgrepose/repose/internal/reposeerr"
)

// Storage pins a root directory by descriptor. Acquire with New; release
// with Close (or defer it) when the invocation is done.
type Storage struct {
	root string
	fd   int
}

// New opens root read-only as a directory descriptor.
func New(root string) (*Storage, error) {
	fd, err := unix.Open(root, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, reposeerr.New(reposeerr.IoError, fmt.Errorf("open %s: %w", root, err))
	}
	return &Storage{root: root, fd: fd}, nil
}

// Close releases the pinned directory descriptor.
func (s *Storage) Close() error {
	return unix.Close(s.fd)
}

// Open opens path relative to the pinned root, read-only.
func (s *Storage) Open(path string) (*os.File, error) {
	fd, err := unix.Openat(s.fd, path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, reposeerr.New(reposeerr.IoError, fmt.Errorf("open %s: %w", path, err))
	}
	return os.NewFile(uintptr(fd), path), nil
}

// Create opens path relative to the pinned root for writing, creating or
// truncating it with mode 0644.
func (s *Storage) Create(path string) (*os.File, error) {
	fd, err := unix.Openat(s.fd, path, unix.O_CREAT|unix.O_WRONLY|unix.O_TRUNC, 0644)
	if err != nil {
		return nil, reposeerr.New(reposeerr.IoError, fmt.Errorf("create %s: %w", path, err))
	}
	return os.NewFile(uintptr(fd), path), nil
}

// Rename moves oldpath to newpath, both relative to the pinned root.
func (s *Storage) Rename(oldpath, newpath string) error {
	if err := unix.Renameat(s.fd, oldpath, s.fd, newpath); err != nil {
		return reposeerr.New(reposeerr.IoError, fmt.Errorf("rename %s -> %s: %w", oldpath, newpath, err))
	}
	return nil
}

// Access reports whether path exists relative to the pinned root.
func (s *Storage) Access(path string) bool {
	return unix.Faccessat(s.fd, path, unix.F_OK, 0) == nil
}

// ReadDir lists the entries of the pinned root, sorted by name. The listing
// reads a fresh descriptor opened relative to the pinned one.
func (s *Storage) ReadDir() ([]os.DirEntry, error) {
	fd, err := unix.Openat(s.fd, ".", unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return nil, reposeerr.New(reposeerr.IoError, fmt.Errorf("open %s: %w", s.root, err))
	}
	dir := os.NewFile(uintptr(fd), s.root)
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, reposeerr.New(reposeerr.IoError, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// IterPkgs reads every entry of the pinned root and attempts to load it as
// a package archive, skipping entries that fail with MissingPKGINFO (they
// are simply not packages). Any other load failure aborts with the
// underlying error.
func (s *Storage) IterPkgs() ([]*pkgmeta.Package, error) {
	entries, err := s.ReadDir()
	if err != nil {
		return nil, err
	}

	var pkgs []*pkgmeta.Package
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		f, err := s.Open(entry.Name())
		if err != nil {
			return nil, err
		}

		pkg, err := pkgfile.Load(f, entry.Name())
		closeErr := f.Close()
		if err != nil {
			if reposeerr.Is(err, reposeerr.MissingPKGINFO) {
				continue
			}
			return nil, err
		}
		if closeErr != nil {
			return nil, reposeerr.New(reposeerr.IoError, closeErr)
		}

		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}
