package pairscmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/icefront-lab/calvingpairs/internal/export"
	"github.com/icefront-lab/calvingpairs/internal/pairing"
)

func executeReport(w io.Writer, pairsPath, format string) error {
	pairs, err := export.ReadPairs(pairsPath)
	if err != nil {
		return fmt.Errorf("failed to load pairs: %w", err)
	}

	summary := pairing.Summarize(pairs)

	switch format {
	case "text":
		return printTextReport(w, pairsPath, summary)
	case "json":
		return printJSONReport(w, summary)
	case "csv":
		return printCSVReport(w, summary)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(w io.Writer, pairsPath string, summary pairing.Summary) error {
	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "Calving Pair Report")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "File:        %s\n", pairsPath)
	fmt.Fprintf(w, "Total Pairs: %d\n", summary.Total)
	fmt.Fprintf(w, "Calving:     %d\n", summary.Calving)
	fmt.Fprintf(w, "No Calving:  %d\n", summary.NoCalving)
	fmt.Fprintf(w, "Unlabeled:   %d\n", summary.Unlabeled)
	if summary.Total > 0 {
		fmt.Fprintf(w, "Positive:    %.2f%%\n", float64(summary.Calving)/float64(summary.Total)*100)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Pairs With Area: %d\n", summary.Area.Count)
	if summary.Area.Count > 0 {
		fmt.Fprintf(w, "Mean Area:       %.1f\n", summary.Area.Mean)
		fmt.Fprintf(w, "Median Area:     %.1f\n", summary.Area.Median)
		fmt.Fprintf(w, "Min Area:        %.1f\n", summary.Area.Min)
		fmt.Fprintf(w, "Max Area:        %.1f\n", summary.Area.Max)
	}
	fmt.Fprintln(w, "========================================")
	return nil
}

func printJSONReport(w io.Writer, summary pairing.Summary) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func printCSVReport(w io.Writer, summary pairing.Summary) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Total", "Calving", "No Calving", "Unlabeled", "Area Count", "Area Mean", "Area Median", "Area Min", "Area Max"}
	if err := writer.Write(header); err != nil {
		return err
	}

	row := []string{
		strconv.Itoa(summary.Total),
		strconv.Itoa(summary.Calving),
		strconv.Itoa(summary.NoCalving),
		strconv.Itoa(summary.Unlabeled),
		strconv.Itoa(summary.Area.Count),
		fmt.Sprintf("%.4f", summary.Area.Mean),
		fmt.Sprintf("%.4f", summary.Area.Median),
		fmt.Sprintf("%.4f", summary.Area.Min),
		fmt.Sprintf("%.4f", summary.Area.Max),
	}
	return writer.Write(row)
}
