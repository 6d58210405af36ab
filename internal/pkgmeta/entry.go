// Package pkgmeta holds the typed metadata model shared by the desc codec,
// the package reader, and the repo store: Entry, Metadata, Version, Arch
// and Package.
package pkgmeta

// Entry is a recognized metadata key. The zero value is not a valid Entry;
// use the named constants below.
type Entry string

// The closed set of recognized entry kinds. Their %HEADER% spelling in the
// desc-format text files is given by the headers table below.
const (
	Filename         Entry = "Filename"
	Name             Entry = "Name"
	Base             Entry = "Base"
	Version          Entry = "Version"
	Description      Entry = "Description"
	Groups           Entry = "Groups"
	PackageSize      Entry = "PackageSize"
	InstallSize      Entry = "InstallSize"
	SHA256Sum        Entry = "SHA256Sum"
	PGPSig           Entry = "PGPSig"
	Url              Entry = "Url"
	License          Entry = "License"
	Arch             Entry = "Arch"
	BuildDate        Entry = "BuildDate"
	Packager         Entry = "Packager"
	Replaces         Entry = "Replaces"
	Depends          Entry = "Depends"
	Conflicts        Entry = "Conflicts"
	Provides         Entry = "Provides"
	OptDepends       Entry = "OptDepends"
	MakeDepends      Entry = "MakeDepends"
	CheckDepends     Entry = "CheckDepends"
	Files            Entry = "Files"
	Deltas           Entry = "Deltas"
	Backups          Entry = "Backups"
	BuildOptions     Entry = "BuildOptions"
	BuildDirectory   Entry = "BuildDirectory"
	BuildEnvironment Entry = "BuildEnvironment"
	BuildInstalled   Entry = "BuildInstalled"
)

// Shape describes the value kind an Entry is expected to carry.
type Shape int

const (
	ShapeText Shape = iota
	ShapeSize
	ShapeTimestamp
	ShapeList
	ShapePath
)

// shapes is the single table mapping every Entry to its canonical Metadata
// shape, consulted both by the .PKGINFO parser and the desc parser/emitter
// (see Design Notes: a single coercion table instead of ad hoc conversions).
var shapes = map[Entry]Shape{
	Filename:         ShapePath,
	Name:             ShapeText,
	Base:             ShapeText,
	Version:          ShapeText,
	Description:      ShapeText,
	Groups:           ShapeList,
	PackageSize:      ShapeSize,
	InstallSize:      ShapeSize,
	SHA256Sum:        ShapeText,
	PGPSig:           ShapeText,
	Url:              ShapeText,
	License:          ShapeList,
	Arch:             ShapeText,
	BuildDate:        ShapeTimestamp,
	Packager:         ShapeText,
	Replaces:         ShapeList,
	Depends:          ShapeList,
	Conflicts:        ShapeList,
	Provides:         ShapeList,
	OptDepends:       ShapeList,
	MakeDepends:      ShapeList,
	CheckDepends:     ShapeList,
	Files:            ShapeList,
	Deltas:           ShapeList,
	Backups:          ShapeList,
	BuildOptions:     ShapeList,
	BuildDirectory:   ShapeText,
	BuildEnvironment: ShapeList,
	BuildInstalled:   ShapeList,
}

// ShapeOf returns the canonical Metadata shape for entry, and whether entry
// is recognized at all. Unknown entries are ignored on read, per spec.
func ShapeOf(entry Entry) (Shape, bool) {
	s, ok := shapes[entry]
	return s, ok
}

// headers is the %HEADER% spelling used in the on-disk desc format for
// entries that actually appear there (a strict subset: repose never reads
// or writes Backups/BuildOptions/BuildDirectory/BuildEnvironment/
// BuildInstalled, which are holo-build/makepkg-local bookkeeping).
var headers = map[Entry]string{
	Filename:     "FILENAME",
	Name:         "NAME",
	Base:         "BASE",
	Version:      "VERSION",
	Description:  "DESC",
	Groups:       "GROUP",
	PackageSize:  "CSIZE",
	InstallSize:  "ISIZE",
	PGPSig:       "PGPSIG",
	SHA256Sum:    "SHA256SUM",
	Url:          "URL",
	License:      "LICENSE",
	Arch:         "ARCH",
	BuildDate:    "BUILDDATE",
	Packager:     "PACKAGER",
	Replaces:     "REPLACES",
	Depends:      "DEPENDS",
	Conflicts:    "CONFLICTS",
	Provides:     "PROVIDES",
	OptDepends:   "OPTDEPENDS",
	MakeDepends:  "MAKEDEPENDS",
	CheckDepends: "CHECKDEPENDS",
	Files:        "FILES",
	Deltas:       "DELTAS",
}

var headerToEntry = func() map[string]Entry {
	m := make(map[string]Entry, len(headers))
	for e, h := range headers {
		m[h] = e
	}
	return m
}()

// HeaderFor returns the bare header name (without %...%) for entry, if it
// has one.
func HeaderFor(entry Entry) (string, bool) {
	h, ok := headers[entry]
	return h, ok
}

// EntryForHeader looks up the Entry for a bare header name. ok is false
// for unknown headers, which the desc parser skips without erroring.
func EntryForHeader(header string) (Entry, bool) {
	e, ok := headerToEntry[header]
	return e, ok
}
