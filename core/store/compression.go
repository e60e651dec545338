package store

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	"github.com/ulikunitz/xz"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
)

// Compression names the codec applied to stored payloads.
type Compression string

// Compression constants.
const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

// Injectable for tests.
var (
	xzNewWriter   = xz.NewWriter
	xzNewReader   = xz.NewReader
	gzipNewReader = gzip.NewReader
)

// ParseCompression parses a compression name, case-insensitively.
// The empty string selects xz.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CompressionXZ, nil
	case CompressionNone, CompressionGzip, CompressionXZ:
		return c, nil
	default:
		return "", drafterrors.NewUnsupported("compression", s)
	}
}

func compress(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		w = gzip.NewWriter(&buf)
	case CompressionXZ:
		xw, err := xzNewWriter(&buf)
		if err != nil {
			return nil, drafterrors.Wrap(err, "failed to create xz writer")
		}
		w = xw
	default:
		return nil, drafterrors.NewUnsupported("compression", string(c))
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, drafterrors.Wrapf(err, "compress %s", c)
	}
	if err := w.Close(); err != nil {
		return nil, drafterrors.Wrapf(err, "compress %s", c)
	}
	return buf.Bytes(), nil
}

func decompress(c Compression, data []byte) ([]byte, error) {
	var r io.Reader
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		gr, err := gzipNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, drafterrors.Wrap(err, "failed to create gzip reader")
		}
		defer gr.Close()
		r = gr
	case CompressionXZ:
		xr, err := xzNewReader(bytes.NewReader(data))
		if err != nil {
			return nil, drafterrors.Wrap(err, "failed to create xz reader")
		}
		r = xr
	default:
		return nil, drafterrors.NewUnsupported("compression", string(c))
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, drafterrors.Wrapf(err, "decompress %s", c)
	}
	return out, nil
}
