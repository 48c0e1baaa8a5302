package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/icefront-lab/calvingpairs/internal/pairing"
	"github.com/parquet-go/parquet-go"
)

// Supported pair file formats, named by extension
const (
	FormatParquet = "parquet"
	FormatJSONL   = "jsonl"
	FormatCSV     = "csv"
)

// PairRow is the on-disk form of a pairing.Pair
type PairRow struct {
	Before string   `json:"before" parquet:"before"`
	After  string   `json:"after" parquet:"after"`
	Label  string   `json:"label" parquet:"label"`
	Area   *float64 `json:"area,omitempty" parquet:"area,optional"`
}

var csvHeader = []string{"before", "after", "label", "area"}

func toRow(p pairing.Pair) PairRow {
	return PairRow{Before: p.Before, After: p.After, Label: string(p.Label), Area: p.Area}
}

func (r PairRow) pair() pairing.Pair {
	return pairing.Pair{Before: r.Before, After: r.After, Label: pairing.Label(r.Label), Area: r.Area}
}

// FormatOf returns the pair file format for path's extension
func FormatOf(path string) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case FormatParquet, FormatJSONL, FormatCSV:
		return ext, nil
	case "json":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("unsupported file format: %q (supported: .parquet, .jsonl, .csv)", ext)
	}
}

// WritePairs writes pairs to path in the format given by its extension
func WritePairs(path string, pairs []pairing.Pair) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create pairs file: %w", err)
	}

	switch format {
	case FormatParquet:
		err = writeParquet(file, pairs)
	case FormatJSONL:
		err = writeJSONL(file, pairs)
	case FormatCSV:
		err = writeCSV(file, pairs)
	}
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close pairs file: %w", cerr)
	}
	if err != nil {
		return err
	}

	slog.Debug("Wrote pairs file", "path", path, "format", format, "pairs", len(pairs))
	return nil
}

func writeParquet(w io.Writer, pairs []pairing.Pair) error {
	rows := make([]PairRow, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, toRow(p))
	}

	writer := parquet.NewGenericWriter[PairRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

func writeJSONL(w io.Writer, pairs []pairing.Pair) error {
	bw := bufio.NewWriter(w)
	encoder := json.NewEncoder(bw)
	for _, p := range pairs {
		if err := encoder.Encode(toRow(p)); err != nil {
			return fmt.Errorf("failed to encode pair: %w", err)
		}
	}
	return bw.Flush()
}

func writeCSV(w io.Writer, pairs []pairing.Pair) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range pairs {
		area := ""
		if p.Area != nil {
			area = strconv.FormatFloat(*p.Area, 'f', -1, 64)
		}
		if err := writer.Write([]string{p.Before, p.After, string(p.Label), area}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadPairs loads pairs previously written by WritePairs
func ReadPairs(path string) ([]pairing.Pair, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	slog.Debug("Opening pairs file", "path", path, "format", format)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pairs file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatParquet:
		return readParquet(file)
	case FormatCSV:
		return readCSV(file)
	default:
		return readJSONL(file)
	}
}

func readParquet(file *os.File) ([]pairing.Pair, error) {
	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[PairRow](pf)
	defer reader.Close()

	var pairs []pairing.Pair
	rows := make([]PairRow, 128)
	for {
		n, err := reader.Read(rows)
		for _, row := range rows[:n] {
			pairs = append(pairs, row.pair())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return pairs, nil
}

func readJSONL(r io.Reader) ([]pairing.Pair, error) {
	var pairs []pairing.Pair
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var row PairRow
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		pairs = append(pairs, row.pair())
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading pairs: %w", err)
	}
	return pairs, nil
}

func readCSV(r io.Reader) ([]pairing.Pair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(csvHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var pairs []pairing.Pair
	for i, rec := range records[1:] {
		row := PairRow{Before: rec[0], After: rec[1], Label: rec[2]}
		if rec[3] != "" {
			v, err := strconv.ParseFloat(rec[3], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid area at row %d: %w", i+2, err)
			}
			row.Area = &v
		}
		pairs = append(pairs, row.pair())
	}
	return pairs, nil
}
