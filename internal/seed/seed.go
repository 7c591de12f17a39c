// Package seed fills an empty catalog from a gzipped JSON-lines file kept
// in S3 or on the local file system.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"catalog-api/internal/model"
)

// Loader reads catalog seed records.
type Loader interface {
	// Load reads a gzipped file with one product JSON object per line.
	Load(ctx context.Context, path string) ([]model.CreateProductRequest, error)
}

// decode reads gzipped JSON lines from r. Blank lines are skipped.
func decode(ctx context.Context, r io.Reader) ([]model.CreateProductRequest, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var records []model.CreateProductRequest
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec model.CreateProductRequest
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("invalid product on line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	return records, nil
}
