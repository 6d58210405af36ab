package repo

import (
	"bytes"
	"io"
	"testing"

	"github.com/pkgrepose/repose/internal/pkgmeta"
)

func noopOpen(path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func samplePackage(name, version string) *pkgmeta.Package {
	pkg := pkgmeta.New(name, pkgmeta.Version(version), pkgmeta.NewArch("x86_64"))
	pkg.Set(pkgmeta.Filename, pkgmeta.Path(name+"-"+version+"-x86_64.pkg.tar.zst"))
	pkg.Set(pkgmeta.Name, pkgmeta.Text(name))
	pkg.Set(pkgmeta.Version, pkgmeta.Text(version))
	pkg.Set(pkgmeta.SHA256Sum, pkgmeta.Text("deadbeef"))
	pkg.Set(pkgmeta.Files, pkgmeta.List([]string{"usr/bin/" + name}))
	pkg.Set(pkgmeta.Depends, pkgmeta.List([]string{"glibc"}))
	return pkg
}

func TestFromIterKeepsGreaterVersion(t *testing.T) {
	pkgs := []*pkgmeta.Package{
		samplePackage("test", "1.0-1"),
		samplePackage("test", "2.0-1"),
		samplePackage("test", "1.5-1"),
	}

	r := FromIter(pkgs)
	got, ok := r.Get("test")
	if !ok {
		t.Fatalf("expected test to be present")
	}
	if string(got.Version) != "2.0-1" {
		t.Errorf("Version = %s, want 2.0-1", got.Version)
	}
}

func TestUpsertAddsAndUpdates(t *testing.T) {
	r := New()

	verb, prev := r.Upsert(samplePackage("test", "1.0-1"))
	if verb != "adding" || prev != nil {
		t.Fatalf("expected adding/nil, got %s/%v", verb, prev)
	}

	verb, prev = r.Upsert(samplePackage("test", "2.0-1"))
	if verb != "updating" || prev == nil || string(prev.Version) != "1.0-1" {
		t.Fatalf("expected updating/1.0-1, got %s/%v", verb, prev)
	}

	verb, _ = r.Upsert(samplePackage("test", "1.5-1"))
	if verb != "" {
		t.Fatalf("expected no-op for lesser version, got %q", verb)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	r := FromIter([]*pkgmeta.Package{samplePackage("test", "1.0.0-1")})

	var buf bytes.Buffer
	if err := r.Save(&buf, noopOpen, []RepoEntry{Desc, Depends}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if err := loaded.Load(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}

	pkg, ok := loaded.Get("test")
	if !ok {
		t.Fatalf("expected test to be present after load")
	}
	if string(pkg.Version) != "1.0.0-1" {
		t.Errorf("Version = %s, want 1.0.0-1", pkg.Version)
	}
	if deps := pkg.Metadata[pkgmeta.Depends].AsList(); len(deps) != 1 || deps[0] != "glibc" {
		t.Errorf("Depends = %v, want [glibc]", deps)
	}
}

func TestRepoEntryFilenames(t *testing.T) {
	cases := map[RepoEntry]string{Desc: "desc", Depends: "depends", Files: "files"}
	for entry, want := range cases {
		if got := entry.Filename(); got != want {
			t.Errorf("Filename() = %q, want %q", got, want)
		}
	}
}
