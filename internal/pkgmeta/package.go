package pkgmeta

import (
	"fmt"
	"strings"
)

// Package is a single package record: its identity (name, version, arch)
// plus the full metadata map parsed or assembled for it.
type Package struct {
	Name     string
	Version  Version
	Arch     Arch
	Metadata map[Entry]Metadata
}

// New builds a Package with an initialized, empty metadata map.
func New(name string, version Version, arch Arch) *Package {
	return &Package{
		Name:     name,
		Version:  version,
		Arch:     arch,
		Metadata: make(map[Entry]Metadata),
	}
}

// String renders the package's display form, "<name>-<version>", matching
// the directory name it occupies inside an index archive.
func (p *Package) String() string {
	return fmt.Sprintf("%s-%s", p.Name, p.Version)
}

// Filename returns the pool-relative path recorded for this package, and
// whether one is present at all.
func (p *Package) Filename() (string, bool) {
	m, ok := p.Metadata[Filename]
	if !ok {
		return "", false
	}
	return m.AsPath(), true
}

// Set stores a metadata value, keeping Name/Version/Arch in sync when the
// corresponding entry is assigned directly.
func (p *Package) Set(entry Entry, value Metadata) {
	p.Metadata[entry] = value
	if value.Kind != ShapeText {
		return
	}
	switch entry {
	case Name:
		p.Name = value.text
	case Version:
		p.Version = Version(value.text)
	case Arch:
		p.Arch = NewArch(value.text)
	}
}

// ParseDirName splits an index-archive directory name of the form
// "<name>-<version>" into its name and version parts, following pacman's
// own convention: version is "pkgver-pkgrel", so the split falls on the
// last two hyphens (name may itself contain hyphens; version never
// contains more than one).
//
// "foo-bar-1.2-3" splits as name="foo-bar", version="1.2-3".
func ParseDirName(dir string) (name string, version Version, ok bool) {
	last := strings.LastIndexByte(dir, '-')
	if last <= 0 || last == len(dir)-1 {
		return "", "", false
	}
	secondLast := strings.LastIndexByte(dir[:last], '-')
	if secondLast <= 0 {
		return "", "", false
	}
	return dir[:secondLast], Version(dir[secondLast+1:]), true
}
