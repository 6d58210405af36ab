package pkgfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/pkgrepose/repose/internal/pkgmeta"
	"github.com/pkgrepose/repose/internal/reposeerr"
)

// pkginfoKeys maps a .PKGINFO key to the Entry it populates, and whether
// that key accumulates (appears possibly many times, in order) rather
// than being scalar.
var pkginfoKeys = map[string]struct {
	entry pkgmeta.Entry
	list  bool
}{
	"pkgname":     {pkgmeta.Name, false},
	"pkgbase":     {pkgmeta.Base, false},
	"pkgver":      {pkgmeta.Version, false},
	"pkgdesc":     {pkgmeta.Description, false},
	"url":         {pkgmeta.Url, false},
	"builddate":   {pkgmeta.BuildDate, false},
	"packager":    {pkgmeta.Packager, false},
	"size":        {pkgmeta.InstallSize, false},
	"arch":        {pkgmeta.Arch, false},
	"license":     {pkgmeta.License, true},
	"group":       {pkgmeta.Groups, true},
	"depend":      {pkgmeta.Depends, true},
	"conflict":    {pkgmeta.Conflicts, true},
	"provides":    {pkgmeta.Provides, true},
	"optdepend":   {pkgmeta.OptDepends, true},
	"makedepend":  {pkgmeta.MakeDepends, true},
	"checkdepend": {pkgmeta.CheckDepends, true},
	"replaces":    {pkgmeta.Replaces, true},
	"backup":      {pkgmeta.Backups, true},
}

// parsePKGINFO parses a .PKGINFO blob's "key = value" lines into a fresh
// Package. pkgname, pkgver and arch are mandatory and set the Package's
// top-level fields as well as their Metadata entries; unrecognized keys
// are ignored.
func parsePKGINFO(data []byte) (*pkgmeta.Package, error) {
	values := make(map[pkgmeta.Entry][]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, reposeerr.New(reposeerr.MalformedPKGINFO,
				fmt.Errorf("not a key = value line: %q", line))
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])

		spec, ok := pkginfoKeys[key]
		if !ok {
			continue
		}
		values[spec.entry] = append(values[spec.entry], value)
	}
	if err := scanner.Err(); err != nil {
		return nil, reposeerr.New(reposeerr.MalformedPKGINFO, err)
	}

	name, ok := firstValue(values, pkgmeta.Name)
	if !ok {
		return nil, reposeerr.New(reposeerr.MalformedPKGINFO, fmt.Errorf("missing pkgname"))
	}
	version, ok := firstValue(values, pkgmeta.Version)
	if !ok {
		return nil, reposeerr.New(reposeerr.MalformedPKGINFO, fmt.Errorf("missing pkgver"))
	}
	archStr, ok := firstValue(values, pkgmeta.Arch)
	if !ok {
		return nil, reposeerr.New(reposeerr.MalformedPKGINFO, fmt.Errorf("missing arch"))
	}

	pkg := pkgmeta.New(name, pkgmeta.Version(version), pkgmeta.NewArch(archStr))

	for entry, raw := range values {
		m, err := pkgmeta.FromValues(entry, raw)
		if err != nil {
			return nil, reposeerr.New(reposeerr.MalformedPKGINFO, err)
		}
		pkg.Metadata[entry] = m
	}

	return pkg, nil
}

func firstValue(values map[pkgmeta.Entry][]string, entry pkgmeta.Entry) (string, bool) {
	v, ok := values[entry]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}
