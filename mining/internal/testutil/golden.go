// Package testutil provides shared test infrastructure for the mining
// engines: the golden itemset dataset, fixture builders and assertion
// helpers used across the mining/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/inference-sim/topk-chui/mining"
)

// GoldenDataset represents the structure of testdata/golden_itemsets.json.
type GoldenDataset struct {
	Datasets []GoldenTransactions `json:"datasets"`
	Cases    []GoldenCase         `json:"cases"`
}

// GoldenTransactions is a named fixture database.
type GoldenTransactions struct {
	Name         string `json:"name"`
	Transactions []Row  `json:"transactions"`
}

// Row is one transaction as three parallel lists.
type Row struct {
	Items         []int     `json:"items"`
	Utilities     []float64 `json:"utilities"`
	Probabilities []float64 `json:"probabilities"`
}

// GoldenCase is the expected top-K closed result of one dataset for one K.
type GoldenCase struct {
	Dataset  string          `json:"dataset"`
	K        int             `json:"k"`
	Itemsets []GoldenItemset `json:"itemsets"`
}

// GoldenItemset is one expected itemset.
type GoldenItemset struct {
	Items           []int   `json:"items"`
	Utility         float64 `json:"utility"`
	ExpectedSupport float64 `json:"expected_support"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: mining/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_itemsets.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var golden GoldenDataset
	if err := json.Unmarshal(data, &golden); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &golden
}

// Dataset builds the named fixture database. Fails the test if it is absent.
func (g *GoldenDataset) Dataset(t *testing.T, name string) *mining.Dataset {
	t.Helper()
	for _, d := range g.Datasets {
		if d.Name == name {
			return BuildDataset(d.Transactions...)
		}
	}
	t.Fatalf("golden dataset %q not found", name)
	return nil
}

// Expected returns the case's itemsets as mining values.
func (c GoldenCase) Expected() []*mining.Itemset {
	out := make([]*mining.Itemset, len(c.Itemsets))
	for i, s := range c.Itemsets {
		out[i] = mining.NewItemset(s.Items, s.Utility, s.ExpectedSupport)
	}
	return out
}

// BuildDataset turns rows into a Dataset. The transaction utility column is
// the sum of the row's utilities.
func BuildDataset(rows ...Row) *mining.Dataset {
	db := mining.NewDataset()
	for _, r := range rows {
		items := make([]mining.Item, len(r.Items))
		tu := 0.0
		for i, id := range r.Items {
			items[i] = mining.Item{ID: id, Utility: r.Utilities[i], Probability: r.Probabilities[i]}
			tu += r.Utilities[i]
		}
		db.Add(mining.NewTransaction(items, tu))
	}
	return db
}

// WorkedExample is the two-transaction database used throughout the docs:
// T1 = {1:5, 2:5} certain, T2 = {2:3 @0.5, 3:5}.
func WorkedExample() *mining.Dataset {
	return BuildDataset(
		Row{Items: []int{1, 2}, Utilities: []float64{5, 5}, Probabilities: []float64{1, 1}},
		Row{Items: []int{2, 3}, Utilities: []float64{3, 5}, Probabilities: []float64{0.5, 1}},
	)
}
