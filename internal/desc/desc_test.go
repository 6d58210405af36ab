package desc

import (
	"testing"

	"github.com/pkgrepose/repose/internal/pkgmeta"
)

func TestRenderParseRoundTrip(t *testing.T) {
	metadata := map[pkgmeta.Entry]pkgmeta.Metadata{
		pkgmeta.Filename:    pkgmeta.Path("test-1.0.0-1-x86_64.pkg.tar.zst"),
		pkgmeta.Name:        pkgmeta.Text("test"),
		pkgmeta.Version:     pkgmeta.Text("1.0.0-1"),
		pkgmeta.Description: pkgmeta.Text("A test package"),
		pkgmeta.PackageSize: pkgmeta.Size(12345),
		pkgmeta.InstallSize: pkgmeta.Size(54321),
		pkgmeta.Arch:        pkgmeta.Text("x86_64"),
		pkgmeta.BuildDate:   pkgmeta.Timestamp(1700000000),
		pkgmeta.License:     pkgmeta.List([]string{"MIT"}),
		pkgmeta.Depends:     pkgmeta.List([]string{"glibc", "gcc-libs>=12"}),
	}

	rendered := Render(DescOrder, metadata) + Render(DependsOrder, metadata)

	parsed, err := Parse([]byte(rendered))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	for entry, want := range metadata {
		got, ok := parsed[entry]
		if !ok {
			t.Fatalf("entry %s missing after round trip", entry)
		}
		if got.Kind != want.Kind {
			t.Fatalf("entry %s kind mismatch: got %v want %v", entry, got.Kind, want.Kind)
		}
	}

	reRendered := Render(DescOrder, parsed) + Render(DependsOrder, parsed)
	if reRendered != rendered {
		t.Fatalf("emit->parse->emit not identical:\n--- first ---\n%s\n--- second ---\n%s", rendered, reRendered)
	}
}

func TestSectionOrder(t *testing.T) {
	metadata := map[pkgmeta.Entry]pkgmeta.Metadata{
		pkgmeta.Version:  pkgmeta.Text("1.0"),
		pkgmeta.Name:     pkgmeta.Text("test"),
		pkgmeta.Filename: pkgmeta.Path("test.pkg.tar.zst"),
	}

	rendered := Render(DescOrder, metadata)
	wantOrder := []string{"%FILENAME%", "%NAME%", "%VERSION%"}

	pos := 0
	for _, header := range wantOrder {
		idx := indexFrom(rendered, header, pos)
		if idx < pos {
			t.Fatalf("header %s out of order in:\n%s", header, rendered)
		}
		pos = idx + len(header)
	}
}

func TestParseSkipsUnknownHeader(t *testing.T) {
	input := "%BOGUS%\nsomevalue\n\n%NAME%\ntest\n\n"
	parsed, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := parsed[pkgmeta.Name].AsText(); got != "test" {
		t.Fatalf("Name = %q, want test", got)
	}
}

func TestParseValueBeforeHeaderIsError(t *testing.T) {
	_, err := Parse([]byte("orphan-value\n"))
	if err == nil {
		t.Fatalf("expected error for value line before any header")
	}
}

func indexFrom(s, substr string, from int) int {
	for i := from; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
