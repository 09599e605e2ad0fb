package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/primego/internal/resource"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the compression applied to an export.
type Compression uint8

const (
	// CompressionNone writes plain JSON.
	CompressionNone Compression = iota
	// CompressionZSTD writes a zstd stream (better ratio).
	CompressionZSTD
	// CompressionLZ4 writes an lz4 frame (faster).
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZSTD:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "zstd" or "lz4".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZSTD, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// Document is the exported result of a benchmark session.
type Document struct {
	N       uint64              `json:"n"`
	Workers int                 `json:"workers"`
	Primes  int                 `json:"primes"`
	Sieve   []Row               `json:"sieve"`
	Factor  []Row               `json:"factorization"`
	Factors map[string][]uint64 `json:"factors,omitempty"`
}

// Export writes doc as JSON to w, compressed as requested. Writes go
// through rc's IO limiter; rc may be nil.
func Export(ctx context.Context, w io.Writer, doc *Document, c Compression, rc *resource.Controller) error {
	limited := resource.NewRateLimitedWriter(ctx, w, rc)

	var (
		sink   io.Writer = limited
		closer io.Closer
	)

	switch c {
	case CompressionNone:
	case CompressionZSTD:
		enc, err := zstd.NewWriter(limited, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		sink, closer = enc, enc
	case CompressionLZ4:
		zw := lz4.NewWriter(limited)
		sink, closer = zw, zw
	default:
		return fmt.Errorf("unknown compression %s", c)
	}

	encErr := json.NewEncoder(sink).Encode(doc)
	if closer != nil {
		if err := closer.Close(); err != nil && encErr == nil {
			encErr = err
		}
	}
	return encErr
}

// Import reads a document written by Export.
func Import(r io.Reader, c Compression) (*Document, error) {
	var src io.Reader

	switch c {
	case CompressionNone:
		src = r
	case CompressionZSTD:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		src = dec
	case CompressionLZ4:
		src = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("unknown compression %s", c)
	}

	var doc Document
	if err := json.NewDecoder(src).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
