package store

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ulikunitz/xz"

	drafterrors "github.com/TheWidlarzGroup/draft-js/core/errors"
)

func TestParseCompression(t *testing.T) {
	tests := []struct {
		input   string
		want    Compression
		wantErr bool
	}{
		{"", CompressionXZ, false},
		{"xz", CompressionXZ, false},
		{"GZIP", CompressionGzip, false},
		{" none ", CompressionNone, false},
		{"zstd", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompression(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCompression(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCompression(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, drafterrors.ErrUnsupported) {
				t.Errorf("error %v should be unsupported", err)
			}
		})
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte(`{"blocks":[{"key":"a","text":"hello"}]}`), 20)
	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionXZ} {
		t.Run(string(c), func(t *testing.T) {
			packed, err := compress(c, data)
			if err != nil {
				t.Fatalf("compress() failed: %v", err)
			}
			if c != CompressionNone && len(packed) >= len(data) {
				t.Errorf("compressed %d bytes into %d", len(data), len(packed))
			}
			unpacked, err := decompress(c, packed)
			if err != nil {
				t.Fatalf("decompress() failed: %v", err)
			}
			if !bytes.Equal(unpacked, data) {
				t.Error("round trip changed the data")
			}
		})
	}
}

func TestCompressionErrors(t *testing.T) {
	if _, err := compress("lz4", nil); !errors.Is(err, drafterrors.ErrUnsupported) {
		t.Errorf("compress(lz4) error = %v", err)
	}
	if _, err := decompress("lz4", nil); !errors.Is(err, drafterrors.ErrUnsupported) {
		t.Errorf("decompress(lz4) error = %v", err)
	}
	if _, err := decompress(CompressionXZ, []byte("not xz")); err == nil {
		t.Error("decompress() of garbage xz should fail")
	}
	if _, err := decompress(CompressionGzip, []byte("not gzip")); err == nil {
		t.Error("decompress() of garbage gzip should fail")
	}

	orig := xzNewWriter
	defer func() { xzNewWriter = orig }()
	xzNewWriter = func(io.Writer) (*xz.Writer, error) { return nil, errors.New("boom") }
	if _, err := compress(CompressionXZ, []byte("x")); err == nil {
		t.Error("compress() should report xz writer errors")
	}
}
