package reconcile

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/pkgrepose/repose/internal/filter"
	"github.com/pkgrepose/repose/internal/pkgmeta"
	"github.com/pkgrepose/repose/internal/storage"
)

func writePoolPackage(t *testing.T, dir, filename, pkginfo string) {
	t.Helper()

	f, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	tw := tar.NewWriter(f)
	if err := tw.WriteHeader(&tar.Header{Name: ".PKGINFO", Mode: 0644, Size: int64(len(pkginfo))}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if _, err := tw.Write([]byte(pkginfo)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("tar Close: %v", err)
	}
}

func pkginfoFor(name, version, arch string) string {
	return "pkgname = " + name + "\npkgver = " + version + "\narch = " + arch + "\n"
}

func TestRunScansPoolAndFiltersArch(t *testing.T) {
	dir := t.TempDir()
	writePoolPackage(t, dir, "keep-1.0-1-x86_64.pkg.tar", pkginfoFor("keep", "1.0-1", "x86_64"))
	writePoolPackage(t, dir, "any-1.0-1-any.pkg.tar", pkginfoFor("any", "1.0-1", "any"))
	writePoolPackage(t, dir, "drop-1.0-1-i686.pkg.tar", pkginfoFor("drop", "1.0-1", "i686"))

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	defer store.Close()

	r, err := Run(store, Options{
		Name:    "testrepo",
		Arch:    pkgmeta.NewArch("x86_64"),
		Rebuild: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok := r.Get("keep"); !ok {
		t.Errorf("expected x86_64 package to be kept")
	}
	if _, ok := r.Get("any"); !ok {
		t.Errorf("expected any-arch package to be kept")
	}
	if _, ok := r.Get("drop"); ok {
		t.Errorf("expected i686 package to be dropped under x86_64 target")
	}
}

func TestRunAppliesFilters(t *testing.T) {
	dir := t.TempDir()
	writePoolPackage(t, dir, "wanted-1.0-1-x86_64.pkg.tar", pkginfoFor("wanted", "1.0-1", "x86_64"))
	writePoolPackage(t, dir, "unwanted-1.0-1-x86_64.pkg.tar", pkginfoFor("unwanted", "1.0-1", "x86_64"))

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	defer store.Close()

	r, err := Run(store, Options{
		Name:    "testrepo",
		Filters: []filter.Filter{filter.New("wanted")},
		Arch:    pkgmeta.NewArch("x86_64"),
		Rebuild: true,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, ok := r.Get("wanted"); !ok {
		t.Errorf("expected filtered-in package to be present")
	}
	if _, ok := r.Get("unwanted"); ok {
		t.Errorf("expected filtered-out package to be absent")
	}
}

func TestSaveAndSubsequentRunDropsVanished(t *testing.T) {
	dir := t.TempDir()
	writePoolPackage(t, dir, "test-1.0-1-x86_64.pkg.tar", pkginfoFor("test", "1.0-1", "x86_64"))

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	defer store.Close()

	r, err := Run(store, Options{Name: "testrepo", Arch: pkgmeta.NewArch("x86_64"), Rebuild: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := Save(r, store, "testrepo", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "test-1.0-1-x86_64.pkg.tar")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	store2, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	defer store2.Close()

	r2, err := Run(store2, Options{Name: "testrepo", Arch: pkgmeta.NewArch("x86_64")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := r2.Get("test"); ok {
		t.Errorf("expected package with vanished pool file to be dropped")
	}
}

func TestSaveWithCompressionRoundTrips(t *testing.T) {
	dir := t.TempDir()
	writePoolPackage(t, dir, "test-1.0-1-x86_64.pkg.tar", pkginfoFor("test", "1.0-1", "x86_64"))

	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	defer store.Close()

	r, err := Run(store, Options{Name: "testrepo", Arch: pkgmeta.NewArch("x86_64"), Rebuild: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	gzipCompressor := func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil }
	if err := Save(r, store, "testrepo", gzipCompressor); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store2, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	defer store2.Close()

	r2, err := Run(store2, Options{Name: "testrepo", Arch: pkgmeta.NewArch("x86_64")})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := r2.Get("test"); !ok {
		t.Errorf("expected gzip-compressed database to load back successfully")
	}
}
