package dataio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/inference-sim/topk-chui/mining"
)

// statsColumns is the header of the experiment results CSV.
var statsColumns = []string{
	"Algorithm", "Dataset", "K", "Runtime(ms)", "Memory(MB)", "PatternCount", "MinUtilThreshold",
}

// itemsetColumns is the header of an itemset export.
var itemsetColumns = []string{"items", "utility", "expected_support"}

// StatsRow renders one experiment results row. dataset is reduced to its
// base file name.
func StatsRow(algorithm, dataset string, k int, stats mining.Stats) []string {
	return []string{
		algorithm,
		filepath.Base(dataset),
		strconv.Itoa(k),
		strconv.FormatInt(stats.RuntimeMillis, 10),
		fmt.Sprintf("%.2f", stats.PeakMemoryMB),
		strconv.Itoa(stats.PatternCount),
		fmt.Sprintf("%.5f", stats.MinUtilThreshold),
	}
}

// AppendStats appends one row to the results CSV at path, writing the header
// first when the file is new and creating missing parent directories.
func AppendStats(path, algorithm, dataset string, k int, stats mining.Stats) error {
	return AppendStatsRows(path, [][]string{StatsRow(algorithm, dataset, k, stats)})
}

// AppendStatsRows appends pre-rendered rows (see StatsRow) in one write.
func AppendStatsRows(path string, rows [][]string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating results directory: %w", err)
		}
	}
	_, err := os.Stat(path)
	isNew := errors.Is(err, fs.ErrNotExist)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening results file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if isNew {
		if err := writer.Write(statsColumns); err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}
	}
	for i, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing results: %w", err)
	}
	return nil
}

// WriteItemsets writes sets as CSV with items space-separated.
func WriteItemsets(w io.Writer, sets []*mining.Itemset) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(itemsetColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, s := range sets {
		row := []string{
			s.Key(),
			strconv.FormatFloat(s.Utility, 'f', -1, 64),
			strconv.FormatFloat(s.ExpectedSupport, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing itemset %s: %w", s.Key(), err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportItemsets writes sets to a new file at path.
func ExportItemsets(path string, sets []*mining.Itemset) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating itemset file: %w", err)
	}
	defer func() { _ = file.Close() }()
	if err := WriteItemsets(file, sets); err != nil {
		return fmt.Errorf("exporting itemsets: %w", err)
	}
	return nil
}
