package cli

import (
	"runtime"

	"github.com/pkgrepose/repose/internal/pkgmeta"
)

// goArchToPacman maps Go's GOARCH values to the machine names pacman
// databases use, standing in for the original's uname(2) call (Go has no
// portable equivalent; GOARCH is the closest build-time analogue).
var goArchToPacman = map[string]string{
	"amd64": "x86_64",
	"386":   "i686",
	"arm64": "aarch64",
	"arm":   "armv7h",
}

// systemArch returns the target architecture implied by the running
// binary, used when -m/--arch is not given.
func systemArch() pkgmeta.Arch {
	if name, ok := goArchToPacman[runtime.GOARCH]; ok {
		return pkgmeta.NewArch(name)
	}
	return pkgmeta.NewArch(runtime.GOARCH)
}
