package pkgmeta

import "strings"

// Version is an opaque version string, ordered by vercmp rather than by
// lexicographic comparison.
type Version string

// String returns the version's printed form.
func (v Version) String() string { return string(v) }

// Compare implements the alpm/pacman version-compare algorithm: split each
// side into pkgrel on the last hyphen and epoch on a leading "digits:"
// prefix (epoch "0" when absent), then compare
// epoch-then-pkgver-then-pkgrel as dot-separated runs of alpha/numeric
// segments. Missing pkgrel compares equal to any present pkgrel, so
// "1.5-1" == "1.5" (spec.md scenario S1).
func (a Version) Compare(b Version) int {
	as, ar, aHasRel := splitRelease(string(a))
	bs, br, bHasRel := splitRelease(string(b))
	ae, as := splitEpoch(as)
	be, bs := splitEpoch(bs)

	if c := compareSegmented(ae, be); c != 0 {
		return c
	}
	if c := compareSegmented(as, bs); c != 0 {
		return c
	}
	if !aHasRel || !bHasRel {
		return 0
	}
	return compareSegmented(ar, br)
}

// Less reports whether a sorts strictly before b under vercmp.
func (a Version) Less(b Version) bool { return a.Compare(b) < 0 }

// Equal reports whether a and b compare Equal under vercmp (not
// necessarily string-equal).
func (a Version) Equal(b Version) bool { return a.Compare(b) == 0 }

// splitRelease divides "epoch:pkgver-pkgrel" into the vercmp-relevant
// "epoch:pkgver" and "pkgrel" parts, split on the last hyphen.
func splitRelease(s string) (ver, rel string, hasRel bool) {
	if i := strings.LastIndexByte(s, '-'); i >= 0 {
		return s[:i], s[i+1:], true
	}
	return s, "", false
}

// splitEpoch divides "epoch:pkgver" into its epoch and pkgver; a version
// with no leading "digits:" prefix has epoch "0".
func splitEpoch(s string) (epoch, ver string) {
	digits, rest := takeWhile(s, isDigit)
	if !strings.HasPrefix(rest, ":") {
		return "0", s
	}
	if digits == "" {
		digits = "0"
	}
	return digits, rest[1:]
}

// compareSegmented compares two version strings by walking matched runs of
// alphabetic and numeric characters, the way rpm/alpm's vercmp does:
// numeric runs compare numerically (after stripping leading zeros),
// alphabetic runs compare byte-lexicographically, a numeric run always
// outranks an alphabetic one, and a bare "~" sorts before everything
// (including the empty string), making pre-releases sort lowest.
func compareSegmented(a, b string) int {
	for {
		// Drop any leading non-alphanumeric, non-tilde separators (dots,
		// colons, underscores, ...) on both sides in lockstep.
		a = trimSeparators(a)
		b = trimSeparators(b)

		if strings.HasPrefix(a, "~") || strings.HasPrefix(b, "~") {
			switch {
			case strings.HasPrefix(a, "~") && strings.HasPrefix(b, "~"):
				a, b = a[1:], b[1:]
				continue
			case strings.HasPrefix(a, "~"):
				return -1
			default:
				return 1
			}
		}

		if a == "" && b == "" {
			return 0
		}
		// One side is exhausted and the other continues. Only a
		// continuing numeric run outranks exhaustion; a continuing
		// alpha run is a pre-release suffix and sorts lower, the way
		// rpmvercmp's str1==one/str2==two checks treat it.
		if a == "" {
			if isAlpha(b[0]) {
				return 1
			}
			return -1
		}
		if b == "" {
			if isAlpha(a[0]) {
				return -1
			}
			return 1
		}

		aNum := isDigit(a[0])
		bNum := isDigit(b[0])

		if aNum != bNum {
			if aNum {
				return 1
			}
			return -1
		}

		var aSeg, bSeg string
		if aNum {
			aSeg, a = takeWhile(a, isDigit)
			bSeg, b = takeWhile(b, isDigit)
			aSeg = strings.TrimLeft(aSeg, "0")
			bSeg = strings.TrimLeft(bSeg, "0")
			if c := compareNumericStrings(aSeg, bSeg); c != 0 {
				return c
			}
		} else {
			aSeg, a = takeWhile(a, isAlpha)
			bSeg, b = takeWhile(b, isAlpha)
			if c := strings.Compare(aSeg, bSeg); c != 0 {
				if c < 0 {
					return -1
				}
				return 1
			}
		}
	}
}

func trimSeparators(s string) string {
	i := 0
	for i < len(s) && !isAlpha(s[i]) && !isDigit(s[i]) && s[i] != '~' {
		i++
	}
	return s[i:]
}

func takeWhile(s string, pred func(byte) bool) (taken, rest string) {
	i := 0
	for i < len(s) && pred(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// compareNumericStrings compares two digit runs (already stripped of
// leading zeros) by length first, then lexicographically.
func compareNumericStrings(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
