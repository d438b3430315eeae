package dataio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/topk-chui/mining"
)

func TestAppendStats_HeaderOnceAndRowsAppended(t *testing.T) {
	// GIVEN a results path inside a directory that does not exist yet
	path := filepath.Join(t.TempDir(), "output", "experiments_result.csv")

	// WHEN two rows are appended, one of them a timeout sentinel
	require.NoError(t, AppendStats(path, "U-TKU", "data/liquor.txt", 10, mining.Stats{
		RuntimeMillis: 1234, PeakMemoryMB: 12.346, PatternCount: 10, MinUtilThreshold: 1.5,
	}))
	require.NoError(t, AppendStats(path, "U-TKO", "data/liquor.txt", 10, mining.Stats{
		RuntimeMillis: mining.RuntimeTimeout,
	}))

	// THEN the header appears once and the formats match
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"Algorithm,Dataset,K,Runtime(ms),Memory(MB),PatternCount,MinUtilThreshold",
		"U-TKU,liquor.txt,10,1234,12.35,10,1.50000",
		"U-TKO,liquor.txt,10,-1,0.00,0,0.00000",
	}, lines)
}

func TestAppendStatsRows_OutOfMemorySentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.csv")
	rows := [][]string{StatsRow("U-EFIM", "x.txt", 0, mining.Stats{RuntimeMillis: mining.RuntimeOutOfMemory})}

	require.NoError(t, AppendStatsRows(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "U-EFIM,x.txt,0,-2,0.00,0,0.00000\n")
}

func TestWriteItemsets(t *testing.T) {
	var buf bytes.Buffer
	sets := []*mining.Itemset{
		mining.NewItemset([]int{1, 2}, 10, 1),
		mining.NewItemset([]int{2}, 6.5, 1.5),
	}

	require.NoError(t, WriteItemsets(&buf, sets))

	assert.Equal(t, "items,utility,expected_support\n1 2,10,1\n2,6.5,1.5\n", buf.String())
}

func TestExportItemsets_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, ExportItemsets(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "items,utility,expected_support\n", string(data))
}
