package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	opio "github.com/ethereum-optimism/optimism/op-service/ioutil"
	"github.com/klauspost/compress/zstd"
)

type zstdFile struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z *zstdFile) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdFile) Close() error {
	z.dec.Close()
	return z.file.Close()
}

// OpenInput opens a puzzle input. ".zst" files are zstd-decoded, ".gz" files gunzipped.
func OpenInput(path string) (io.ReadCloser, error) {
	if !strings.HasSuffix(path, ".zst") {
		return opio.OpenDecompressed(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decompress %q: %w", path, err)
	}
	return &zstdFile{dec: dec, file: f}, nil
}

func ReadInput(path string) (string, error) {
	r, err := OpenInput(path)
	if err != nil {
		return "", fmt.Errorf("failed to open input %q: %w", path, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input %q: %w", path, err)
	}
	return string(data), nil
}
