package cli

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/pkgrepose/repose/internal/reconcile"
)

// compressorFor builds the Compressor for the archive filter flag the
// user asked for. When more than one flag is set, the first match in the
// order bzip2, gzip, xz, zstd decides; the others are ignored.
//
// bzip2 has no write-side implementation anywhere in the library
// ecosystem this build draws from (compress/bzip2 is decode-only, and no
// other example pulls in a bzip2 encoder) so -j/--bzip2 is accepted on
// the command line but rejected here rather than silently ignored.
func compressorFor(gzipFlag, xzFlag, zstdFlag, bzip2Flag bool) (reconcile.Compressor, error) {
	switch {
	case bzip2Flag:
		return nil, fmt.Errorf("bzip2 database compression is not supported")
	case gzipFlag:
		return func(w io.Writer) (io.WriteCloser, error) {
			return gzip.NewWriter(w), nil
		}, nil
	case xzFlag:
		return func(w io.Writer) (io.WriteCloser, error) {
			xw, err := xz.NewWriter(w)
			if err != nil {
				return nil, err
			}
			return xw, nil
		}, nil
	case zstdFlag:
		return func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		}, nil
	default:
		return nil, nil
	}
}
