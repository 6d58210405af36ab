package cli

import (
	"strings"
	"testing"
)

func TestElephantDecodesToArt(t *testing.T) {
	got := Elephant()
	if got == "" {
		t.Fatalf("expected non-empty elephant art")
	}
}

func TestCompressorForRejectsBzip2(t *testing.T) {
	_, err := compressorFor(false, false, false, true)
	if err == nil {
		t.Fatalf("expected bzip2 compression to be rejected")
	}
	if !strings.Contains(err.Error(), "bzip2") {
		t.Errorf("error = %v, want it to mention bzip2", err)
	}
}

func TestCompressorForDefaultIsNil(t *testing.T) {
	compress, err := compressorFor(false, false, false, false)
	if err != nil {
		t.Fatalf("compressorFor: %v", err)
	}
	if compress != nil {
		t.Errorf("expected nil compressor when no flag is set")
	}
}

func TestCompressorForGzipBuildsWriter(t *testing.T) {
	compress, err := compressorFor(true, false, false, false)
	if err != nil {
		t.Fatalf("compressorFor: %v", err)
	}
	if compress == nil {
		t.Fatalf("expected a gzip compressor")
	}
}

func TestSystemArchIsNonEmpty(t *testing.T) {
	if systemArch().String() == "" {
		t.Errorf("expected a non-empty system arch")
	}
}
