package pkgmeta

import (
	"sort"
	"testing"
)

func TestVersionCompareEquivalence(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.5-1", "1.5", 0},
		{"1.4.1", "1.4-1", 1},
		{"1.0", "1.0", 0},
		{"1.0", "1.1", -1},
		{"1.1", "1.0", 1},
		{"1.0a", "1.0", -1},
		{"1.0~beta1", "1.0", -1},
	}

	for _, c := range cases {
		got := Version(c.a).Compare(Version(c.b))
		got = sign(got)
		if got != c.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestVersionSort(t *testing.T) {
	in := []string{"1.4", "1.4.1", "1.4-1", "1.5-1", "1.5", "1.3-1", "1.3.1-1"}
	want := []string{"1.3-1", "1.3.1-1", "1.4", "1.4-1", "1.4.1", "1.5-1", "1.5"}

	sort.SliceStable(in, func(i, j int) bool {
		return Version(in[i]).Less(Version(in[j]))
	})

	for i := range want {
		if in[i] != want[i] {
			t.Fatalf("sort mismatch at %d: got %v, want %v", i, in, want)
		}
	}
}

func TestVersionCompareAntisymmetric(t *testing.T) {
	a, b := Version("1.2-3"), Version("1.2-4")
	if sign(a.Compare(b)) != -sign(b.Compare(a)) {
		t.Fatalf("Compare not antisymmetric: %d vs %d", a.Compare(b), b.Compare(a))
	}
	if !a.Equal(a) {
		t.Fatalf("version not equal to itself")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
