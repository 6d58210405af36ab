package pkgmeta

import "testing"

func TestParseDirName(t *testing.T) {
	cases := []struct {
		dir       string
		name, ver string
		ok        bool
	}{
		{"foo-bar-1.2-3", "foo-bar", "1.2-3", true},
		{"test-1.0.0-1", "test", "1.0.0-1", true},
		{"noversion", "", "", false},
		{"only-one", "", "", false},
	}

	for _, c := range cases {
		name, ver, ok := ParseDirName(c.dir)
		if ok != c.ok {
			t.Fatalf("ParseDirName(%q) ok = %v, want %v", c.dir, ok, c.ok)
		}
		if !ok {
			continue
		}
		if name != c.name || string(ver) != c.ver {
			t.Errorf("ParseDirName(%q) = (%q, %q), want (%q, %q)", c.dir, name, ver, c.name, c.ver)
		}
	}
}

func TestPackageString(t *testing.T) {
	p := New("test", Version("1.0.0-1"), NewArch("x86_64"))
	if got, want := p.String(), "test-1.0.0-1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestArchMatches(t *testing.T) {
	x86 := NewArch("x86_64")
	if !AnyArch.Matches(x86) {
		t.Errorf("any package should match any target")
	}
	if !NewArch("i686").Matches(AnyArch) {
		t.Errorf("any target should accept any package arch")
	}
	if NewArch("i686").Matches(x86) {
		t.Errorf("mismatched concrete arches should not match")
	}
}
