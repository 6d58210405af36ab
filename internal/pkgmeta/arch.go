package pkgmeta

// Arch identifies the CPU architecture a package targets, or the special
// "any" architecture shared by all targets.
type Arch struct {
	name string
	any  bool
}

// AnyArch is the architecture-independent marker ("any" in a .PKGINFO).
var AnyArch = Arch{any: true}

// NewArch builds an Arch from its .PKGINFO string form.
func NewArch(name string) Arch {
	if name == "any" {
		return AnyArch
	}
	return Arch{name: name}
}

// IsAny reports whether the architecture is the "any" marker.
func (a Arch) IsAny() bool { return a.any }

// String renders the architecture the way it appears in a .PKGINFO.
func (a Arch) String() string {
	if a.any {
		return "any"
	}
	return a.name
}

// Matches reports whether a package built for a satisfies a repository
// database scoped to target. "any" packages satisfy every target
// architecture.
func (a Arch) Matches(target Arch) bool {
	if a.any || target.any {
		return true
	}
	return a.name == target.name
}
