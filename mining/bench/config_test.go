package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	// GIVEN a config naming datasets, ks and a timeout only
	path := writeConfig(t, `
datasets: [data/a.txt, data/b.txt]
ks: [5, 10]
timeout: 30s
`)

	// WHEN loaded
	cfg, err := LoadConfig(path)

	// THEN named fields are taken from the file and the rest keep defaults
	require.NoError(t, err)
	assert.Equal(t, []string{"data/a.txt", "data/b.txt"}, cfg.Datasets)
	assert.Equal(t, []int{5, 10}, cfg.Ks)
	assert.Equal(t, []string{"U-TKU", "U-TKO", "U-EFIM"}, cfg.Algorithms)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, 1, cfg.Parallelism)
	require.NoError(t, cfg.Validate())
	d, err := cfg.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoadConfig_UnknownField_Rejected(t *testing.T) {
	path := writeConfig(t, "datasets: [a.txt]\nk_values: [1]\n")

	_, err := LoadConfig(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing bench config")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Datasets = []string{"a.txt"}
		return cfg
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with a dataset", func(*Config) {}, ""},
		{"k zero allowed", func(c *Config) { c.Ks = []int{0} }, ""},
		{"no timeout", func(c *Config) { c.Timeout = "" }, ""},
		{"no datasets", func(c *Config) { c.Datasets = nil }, "dataset"},
		{"no ks", func(c *Config) { c.Ks = nil }, "k value"},
		{"negative k", func(c *Config) { c.Ks = []int{10, -1} }, "non-negative, got -1"},
		{"no algorithms", func(c *Config) { c.Algorithms = nil }, "algorithm required"},
		{"unknown algorithm", func(c *Config) { c.Algorithms = []string{"apriori"} }, `unknown algorithm "apriori"`},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, "invalid timeout"},
		{"negative timeout", func(c *Config) { c.Timeout = "-1s" }, "timeout must be non-negative"},
		{"negative memory", func(c *Config) { c.MemoryLimitMB = -1 }, "memory_limit_mb"},
		{"negative parallelism", func(c *Config) { c.Parallelism = -2 }, "parallelism"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_RemovesDuplicates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Datasets = []string{"a.txt", "b.txt", "a.txt"}
	cfg.Ks = []int{10, 10, 5}
	cfg.Algorithms = []string{"U-TKO", "U-TKU", "U-TKO"}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Datasets)
	assert.Equal(t, []int{10, 5}, cfg.Ks)
	assert.Equal(t, []string{"U-TKO", "U-TKU"}, cfg.Algorithms)
}
