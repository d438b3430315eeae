package bench

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/topk-chui/mining"
	"github.com/inference-sim/topk-chui/mining/dataio"
)

// Row is the outcome of one (dataset, K, algorithm) run.
type Row struct {
	Dataset   string
	K         int
	Algorithm string
	Stats     mining.Stats
}

// Runner executes a validated campaign.
type Runner struct {
	cfg       *Config
	budget    Budget
	log       *logrus.Entry
	newMemory func() *mining.MemoryTracker
}

// NewRunner creates a runner for cfg, which must have passed Validate.
// Log lines carry a fresh session ID.
func NewRunner(cfg *Config) *Runner {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		panic(fmt.Sprintf("NewRunner: config not validated: %v", err))
	}
	return &Runner{
		cfg:       cfg,
		budget:    Budget{Timeout: timeout, MemoryLimitMB: cfg.MemoryLimitMB},
		log:       logrus.WithField("session", uuid.NewString()),
		newMemory: mining.NewMemoryTracker,
	}
}

// Run executes every (dataset, K, algorithm) combination in that order.
// Missing, unreadable and empty datasets are skipped with a warning. Rows of
// each dataset are appended to the output file (when set) once all its runs
// finish, in campaign order regardless of parallelism.
func (r *Runner) Run(ctx context.Context) ([]Row, error) {
	r.log.Infof("Starting benchmarks: %d datasets, ks=%v, algorithms=%v", len(r.cfg.Datasets), r.cfg.Ks, r.cfg.Algorithms)
	var all []Row
	for _, path := range r.cfg.Datasets {
		db, err := dataio.Load(path)
		if err != nil {
			r.log.Warnf("Skipping dataset: %v", err)
			continue
		}
		if db.Len() == 0 {
			r.log.Warnf("Dataset %s is empty. Skipping...", path)
			continue
		}
		r.log.Infof("Loaded %s. Trans: %d, Max ItemID: %d", filepath.Base(path), db.Len(), db.MaxItemID)

		rows, err := r.runDataset(ctx, path, db)
		if err != nil {
			return all, err
		}
		if r.cfg.Output != "" {
			if err := dataio.AppendStatsRows(r.cfg.Output, renderRows(rows)); err != nil {
				return all, err
			}
		}
		all = append(all, rows...)
	}
	r.log.Infof("All experiments finished: %d runs", len(all))
	return all, nil
}

func (r *Runner) runDataset(ctx context.Context, path string, db *mining.Dataset) ([]Row, error) {
	rows := make([]Row, 0, len(r.cfg.Ks)*len(r.cfg.Algorithms))
	for _, k := range r.cfg.Ks {
		for _, name := range r.cfg.Algorithms {
			rows = append(rows, Row{Dataset: path, K: k, Algorithm: mining.NewMiner(name).Name()})
		}
	}

	limit := r.cfg.Parallelism
	if limit <= 0 {
		limit = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range rows {
		row := &rows[i]
		g.Go(func() error {
			budget := r.budget
			budget.Memory = r.newMemory()
			stats, _, err := RunOne(gctx, mining.NewMiner(row.Algorithm), db, row.K, budget)
			if err != nil {
				return fmt.Errorf("%s k=%d %s: %w", filepath.Base(path), row.K, row.Algorithm, err)
			}
			row.Stats = stats
			entry := r.log.WithFields(logrus.Fields{"dataset": filepath.Base(path), "k": row.K})
			switch {
			case stats.TimedOut():
				entry.Warnf("%s TIME OUT (> %s)", row.Algorithm, r.budget.Timeout)
			case stats.OutOfMemory():
				entry.Warnf("%s OUT OF MEMORY (> %.0fMB)", row.Algorithm, r.budget.MemoryLimitMB)
			default:
				entry.Infof("Done. %s", stats)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func renderRows(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = dataio.StatsRow(row.Algorithm, row.Dataset, row.K, row.Stats)
	}
	return out
}
