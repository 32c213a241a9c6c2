package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"wine-backend/internal/storage"
)

var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrInvalidDataset  = errors.New("invalid dataset")
)

// Dataset is the training table in canonical feature order. It is never
// modified once loaded.
type Dataset struct {
	Features [][]float64
	Quality  []float64
}

func (d *Dataset) Len() int {
	return len(d.Quality)
}

// Subset returns the rows at the given indices. Rows are shared, not copied.
func (d *Dataset) Subset(indices []int) *Dataset {
	sub := &Dataset{
		Features: make([][]float64, len(indices)),
		Quality:  make([]float64, len(indices)),
	}
	for i, idx := range indices {
		sub.Features[i] = d.Features[idx]
		sub.Quality[i] = d.Quality[idx]
	}
	return sub
}

// LoadDataset parses a semicolon separated CSV with a header row. Columns are
// located by name so their order in the file does not matter.
func LoadDataset(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrInvalidDataset)
		}
		return nil, fmt.Errorf("%w: error reading header: %v", ErrInvalidDataset, err)
	}

	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.TrimSpace(strings.Trim(h, `"`))] = i
	}

	featureIdx := make([]int, len(DatasetColumns))
	for i, col := range DatasetColumns {
		pos, ok := positions[col]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidDataset, col)
		}
		featureIdx[i] = pos
	}
	qualityIdx, ok := positions[QualityColumn]
	if !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrInvalidDataset, QualityColumn)
	}

	ds := &Dataset{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidDataset, line, err)
		}

		row := make([]float64, len(featureIdx))
		for i, pos := range featureIdx {
			v, err := parseCell(record, pos)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %q: %v", ErrInvalidDataset, line, DatasetColumns[i], err)
			}
			row[i] = v
		}
		quality, err := parseCell(record, qualityIdx)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d column %q: %v", ErrInvalidDataset, line, QualityColumn, err)
		}

		ds.Features = append(ds.Features, row)
		ds.Quality = append(ds.Quality, quality)
	}

	if ds.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDataset)
	}
	return ds, nil
}

func parseCell(record []string, pos int) (float64, error) {
	if pos >= len(record) {
		return 0, errors.New("missing cell")
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[pos]), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", record[pos])
	}
	return v, nil
}

// ReadDataset fetches and parses the dataset object from a storage provider.
func ReadDataset(ctx context.Context, provider storage.Provider, bucket, key string) (*Dataset, error) {
	data, err := provider.GetObject(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, storage.Location(bucket, key))
		}
		return nil, fmt.Errorf("error reading dataset %s: %w", storage.Location(bucket, key), err)
	}

	ds, err := LoadDataset(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	slog.Info("loaded dataset", "location", storage.Location(bucket, key), "rows", ds.Len())
	return ds, nil
}
