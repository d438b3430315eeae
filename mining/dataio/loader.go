// Package dataio reads uncertain transaction databases and writes mining
// results.
//
// Input format, one transaction per line:
//
//	items:transactionUtility:utilities:probabilities
//	1 2 5:18:4 6 8:0.9 0.5 1
//
// The three lists are space-separated and of equal length. Blank lines and
// lines starting with '%' or '#' are comments.
package dataio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/topk-chui/mining"
)

// maxLineBytes bounds a single transaction line.
const maxLineBytes = 16 * 1024 * 1024

// Load reads the database at path. Malformed lines are skipped with a
// warning; only I/O failures are errors.
func Load(path string) (*mining.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	db, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	return db, nil
}

// Parse reads a database from r.
func Parse(r io.Reader) (*mining.Dataset, error) {
	db := mining.NewDataset()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo, skipped := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := parseLine(line)
		if err != nil {
			logrus.Warnf("dataset line %d skipped: %v", lineNo, err)
			skipped++
			continue
		}
		db.Add(t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	if skipped > 0 {
		logrus.Warnf("%d malformed dataset lines skipped", skipped)
	}
	return db, nil
}

func parseLine(line string) (*mining.Transaction, error) {
	parts := strings.Split(line, ":")
	if len(parts) < 4 {
		return nil, fmt.Errorf("expected 4 ':'-separated fields, got %d", len(parts))
	}
	ids := strings.Fields(parts[0])
	utils := strings.Fields(parts[2])
	probs := strings.Fields(parts[3])
	if len(ids) != len(utils) || len(ids) != len(probs) {
		return nil, fmt.Errorf("list lengths differ: %d items, %d utilities, %d probabilities", len(ids), len(utils), len(probs))
	}

	tu, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, fmt.Errorf("transaction utility: %w", err)
	}

	items := make([]mining.Item, len(ids))
	seen := make(map[int]bool, len(ids))
	for i := range ids {
		id, err := strconv.Atoi(ids[i])
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if id < 0 {
			return nil, fmt.Errorf("item %d: negative id %d", i, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("item %d: duplicate id %d", i, id)
		}
		seen[id] = true

		u, err := strconv.ParseFloat(utils[i], 64)
		if err != nil {
			return nil, fmt.Errorf("utility of item %d: %w", id, err)
		}
		if u < 0 {
			return nil, fmt.Errorf("utility of item %d: negative value %v", id, u)
		}
		p, err := strconv.ParseFloat(probs[i], 64)
		if err != nil {
			return nil, fmt.Errorf("probability of item %d: %w", id, err)
		}
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("probability of item %d: %v outside [0, 1]", id, p)
		}
		items[i] = mining.Item{ID: id, Utility: u, Probability: p}
	}
	return mining.NewTransaction(items, tu), nil
}
