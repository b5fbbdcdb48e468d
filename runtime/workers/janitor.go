package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gcDiscardRatio = 0.5

// JanitorWorker reclaims badger value-log space on a ticker. Badger never
// runs value-log GC on its own, so without this the log files only grow.
type JanitorWorker struct {
	log      *slog.Logger
	db       *badger.DB
	interval time.Duration
}

func NewJanitorWorker(log *slog.Logger, db *badger.DB, interval time.Duration) *JanitorWorker {
	return &JanitorWorker{log: log, db: db, interval: interval}
}

func (w *JanitorWorker) Run(ctx context.Context) error {
	w.log.Info("Starting janitor worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Each call rewrites at most one value-log file; loop until
			// badger reports nothing left to collect.
			reclaimed := 0
			for {
				err := w.db.RunValueLogGC(gcDiscardRatio)
				if err == badger.ErrNoRewrite {
					break
				}
				if err != nil {
					w.log.Warn("Value log GC failed", "err", err)
					break
				}
				reclaimed++
			}
			if reclaimed > 0 {
				w.log.Info("Value log GC done", "files_rewritten", reclaimed)
			}
		}
	}
}
