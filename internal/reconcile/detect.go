package reconcile

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	zstdMagic  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	bzip2Magic = []byte("BZh")
)

// autoDecompress sniffs r's leading bytes for a known compression magic
// and wraps it in the matching decompressor, the way the source's
// underlying archive reader auto-detects filters on load regardless of
// which one -j/-J/-z/-Z applied on save. Unrecognized content passes
// through unwrapped, i.e. as a plain PAX tar stream.
func autoDecompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		return gzip.NewReader(br)
	case bytes.HasPrefix(magic, xzMagic):
		return xz.NewReader(br)
	case bytes.HasPrefix(magic, zstdMagic):
		return zstd.NewReader(br)
	case bytes.HasPrefix(magic, bzip2Magic):
		return bzip2.NewReader(br), nil
	default:
		return br, nil
	}
}
