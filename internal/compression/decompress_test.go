package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDetectCodec(t *testing.T) {
	tests := map[string]Codec{
		"frame.nv21":     CodecNone,
		"frame.nv21.gz":  CodecGzip,
		"frame.nv21.XZ":  CodecXz,
		"frame.i420.bz2": CodecBzip2,
		"frame":          CodecNone,
	}
	for path, want := range tests {
		if got := DetectCodec(path); got != want {
			t.Errorf("DetectCodec(%q) = %s, want %s", path, got, want)
		}
	}

	if got := StripCodecExtension("a/frame.nv21.xz"); got != "a/frame.nv21" {
		t.Errorf("StripCodecExtension() = %s", got)
	}
	if got := StripCodecExtension("frame.nv21"); got != "frame.nv21" {
		t.Errorf("StripCodecExtension() = %s", got)
	}
}

func TestReadPrefix(t *testing.T) {
	dir := t.TempDir()
	payload := bytes.Repeat([]byte("colorwaver frame "), 200)

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{name: "none", file: "frame.rgba", data: payload},
		{name: "gzip", file: "frame.rgba.gz", data: gzipBytes(t, payload)},
		{name: "xz", file: "frame.rgba.xz", data: xzBytes(t, payload)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, tt.data, 0o600); err != nil {
				t.Fatal(err)
			}

			got, err := ReadPrefix(path, int64(len(payload)))
			if err != nil {
				t.Fatalf("ReadPrefix() error: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("ReadPrefix() returned %d bytes, want %d", len(got), len(payload))
			}

			head, err := ReadPrefix(path, 10)
			if err != nil || !bytes.Equal(head, payload[:10]) {
				t.Errorf("ReadPrefix(10) = %q, %v; want %q", head, err, payload[:10])
			}

			short, err := ReadPrefix(path, int64(len(payload)+1))
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Errorf("ReadPrefix() past the end error = %v, want io.ErrUnexpectedEOF", err)
			}
			if len(short) != len(payload) {
				t.Errorf("ReadPrefix() past the end returned %d bytes, want %d", len(short), len(payload))
			}
		})
	}
}

func TestReadPrefixErrors(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"bad.gz", "bad.xz"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("plain text, not compressed"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadPrefix(path, 4); err == nil {
			t.Errorf("ReadPrefix(%s) should reject invalid data", name)
		}
	}

	if _, err := ReadPrefix(filepath.Join(dir, "missing.gz"), 6); err == nil {
		t.Error("ReadPrefix() should fail for a missing file")
	}
	if _, err := NewReader(bytes.NewReader(nil), Codec("zstd")); err == nil {
		t.Error("NewReader() should reject unknown codecs")
	}
}
