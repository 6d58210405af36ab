package desc

import (
	"strings"

	"github.com/pkgrepose/repose/internal/pkgmeta"
)

// DescOrder is the section order emitted into a package's "desc" member.
var DescOrder = []pkgmeta.Entry{
	pkgmeta.Filename,
	pkgmeta.Name,
	pkgmeta.Base,
	pkgmeta.Version,
	pkgmeta.Description,
	pkgmeta.Groups,
	pkgmeta.PackageSize,
	pkgmeta.InstallSize,
	pkgmeta.PGPSig,
	pkgmeta.SHA256Sum,
	pkgmeta.Url,
	pkgmeta.License,
	pkgmeta.Arch,
	pkgmeta.BuildDate,
	pkgmeta.Packager,
	pkgmeta.Replaces,
}

// DependsOrder is the section order emitted into a package's "depends"
// member.
var DependsOrder = []pkgmeta.Entry{
	pkgmeta.Depends,
	pkgmeta.Conflicts,
	pkgmeta.Provides,
	pkgmeta.OptDepends,
	pkgmeta.MakeDepends,
	pkgmeta.CheckDepends,
}

// FilesOrder is the section order emitted into a package's "files" member.
var FilesOrder = []pkgmeta.Entry{
	pkgmeta.Files,
}

// WriteMeta renders a single section: header line, one value line per
// datum, then a blank line.
func WriteMeta(entry pkgmeta.Entry, m pkgmeta.Metadata) string {
	header, ok := pkgmeta.HeaderFor(entry)
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteByte('%')
	b.WriteString(header)
	b.WriteString("%\n")
	for _, line := range m.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// Render concatenates the sections named by order that are present in
// metadata, in order, each via WriteMeta. Absent entries are skipped
// silently.
func Render(order []pkgmeta.Entry, metadata map[pkgmeta.Entry]pkgmeta.Metadata) string {
	var b strings.Builder
	for _, entry := range order {
		if m, ok := metadata[entry]; ok {
			b.WriteString(WriteMeta(entry, m))
		}
	}
	return b.String()
}
