// Package csvfile reads input URL lists and appends pipeline results to CSV
// files, using the existing output rows to resume interrupted runs.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Reader yields one column of a CSV file with a header row.
type Reader struct {
	path   string
	column string
}

func NewReader(path, column string) *Reader {
	return &Reader{path: path, column: column}
}

func (r *Reader) ReadURLs(ctx context.Context) ([]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return readColumn(ctx, f, r.column)
}

// readColumn returns the values of column in file order. Blank values are
// dropped.
func readColumn(ctx context.Context, src io.Reader, column string) ([]string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found in header", column)
	}

	var values []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if idx >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[idx]); v != "" {
			values = append(values, v)
		}
	}

	return values, nil
}

// processedURLs collects the url column of an output file. A missing or empty
// file has processed nothing.
func processedURLs(ctx context.Context, path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	urls, err := readColumn(ctx, f, "url")
	if err != nil {
		return nil, err
	}

	processed := make(map[string]bool, len(urls))
	for _, u := range urls {
		processed[u] = true
	}
	return processed, nil
}
