package cli

import (
	"encoding/base64"
	"math/rand"
)

// mascots holds the --elephant easter egg art, base64-encoded the way the
// original embedded them (two variants, chosen at random).
var mascots = []string{
	"ICAgIF8gX18KIC8gXF8vIFwKfCAgby4ubyB8CiBcXyA+IF8vCiAvICAgICBcCnwgIHx8ICB8Cg==",
	"ICAgX19fCiAgLyAgIFwKIHwgby4ubyB8Ci8gXD4gPC8gXAo=",
}

// Elephant returns a random ASCII elephant, the way `repose --elephant`
// has always printed one instead of doing anything useful.
func Elephant() string {
	choice := mascots[rand.Intn(len(mascots))]
	raw, err := base64.StdEncoding.DecodeString(choice)
	if err != nil {
		return ""
	}
	return string(raw)
}
