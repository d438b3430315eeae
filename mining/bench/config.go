// Package bench drives benchmark campaigns: every engine over every dataset
// and K, each run under a wall-clock and memory budget, with one results
// row per run.
package bench

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/topk-chui/mining"
)

// DefaultOutput is the results file used when the config names none.
const DefaultOutput = "output/experiments_result.csv"

// Config describes a benchmark campaign.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Datasets      []string `yaml:"datasets"`
	Ks            []int    `yaml:"ks"`
	Algorithms    []string `yaml:"algorithms"`
	Timeout       string   `yaml:"timeout"`         // Go duration; "" or "0" disables
	MemoryLimitMB float64  `yaml:"memory_limit_mb"` // 0 disables
	Output        string   `yaml:"output"`
	Parallelism   int      `yaml:"parallelism"` // concurrent runs; 0 means 1
}

// DefaultConfig returns the campaign run when no config file is given,
// except for Datasets, which the caller must supply.
func DefaultConfig() *Config {
	return &Config{
		Ks:          []int{10, 50, 100, 500},
		Algorithms:  []string{"U-TKU", "U-TKO", "U-EFIM"},
		Timeout:     "5m",
		Output:      DefaultOutput,
		Parallelism: 1,
	}
}

// LoadConfig reads a YAML campaign over DefaultConfig. Unknown keys are
// errors.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bench config: %w", err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing bench config: %w", err)
	}
	return cfg, nil
}

// Validate checks the campaign and removes duplicate datasets, K values and
// algorithms, keeping first occurrences.
func (c *Config) Validate() error {
	c.Datasets = lo.Uniq(c.Datasets)
	c.Ks = lo.Uniq(c.Ks)
	c.Algorithms = lo.Uniq(c.Algorithms)

	if len(c.Datasets) == 0 {
		return fmt.Errorf("at least one dataset required")
	}
	if len(c.Ks) == 0 {
		return fmt.Errorf("at least one k value required")
	}
	if bad, found := lo.Find(c.Ks, func(k int) bool { return k < 0 }); found {
		return fmt.Errorf("k must be non-negative, got %d", bad)
	}
	if len(c.Algorithms) == 0 {
		return fmt.Errorf("at least one algorithm required")
	}
	for _, name := range c.Algorithms {
		if !mining.IsValidMiner(name) {
			return fmt.Errorf("unknown algorithm %q; valid: %v", name, mining.MinerNames())
		}
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.MemoryLimitMB < 0 {
		return fmt.Errorf("memory_limit_mb must be non-negative, got %f", c.MemoryLimitMB)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be non-negative, got %d", c.Parallelism)
	}
	return nil
}

// TimeoutDuration parses Timeout. Zero means no deadline.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must be non-negative, got %s", d)
	}
	return d, nil
}
