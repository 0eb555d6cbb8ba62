package patchdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks a zstd-compressed artifact.
const CompressedExt = ".zst"

// WriteOptions controls artifact emission.
type WriteOptions struct {
	PrettyPath string // Optional indented copy for human inspection
}

// Write serializes the dataset to path. A path ending in CompressedExt is
// written zstd-compressed.
func Write(path string, ds *Dataset, opts WriteOptions) error {
	data, err := json.Marshal(ds)
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := writeFile(path, data); err != nil {
		return err
	}

	if opts.PrettyPath != "" {
		pretty, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding pretty dataset: %w", err)
		}
		if err := writeFile(opts.PrettyPath, pretty); err != nil {
			return err
		}
	}
	return nil
}

// Read loads and validates a dataset from path.
func Read(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	if isCompressed(path) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()

		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
	}

	return Decode(data)
}

// Decode parses and validates a dataset document.
func Decode(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if isCompressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return err
		}
		data = enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return err
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func isCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), CompressedExt)
}
