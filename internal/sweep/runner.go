package sweep

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/FiyinfoluwaDav/Datathon-2025/internal/storage"
	"github.com/rs/zerolog/log"
)

// Runner drives commit-mode sweeps on a fixed interval and optionally
// archives each report to object storage.
type Runner struct {
	sweep    *Sweep
	interval time.Duration
	archive  storage.ObjectStorage
	prefix   string
}

// NewRunner builds a runner. archive may be nil to skip report archival.
func NewRunner(s *Sweep, interval time.Duration, archive storage.ObjectStorage, prefix string) *Runner {
	if prefix == "" {
		prefix = "sweeps"
	}
	return &Runner{sweep: s, interval: interval, archive: archive, prefix: prefix}
}

// Start blocks until ctx is done, running one sweep per tick. Callers run it
// in a goroutine. A failed sweep is logged and retried on the next tick.
func (r *Runner) Start(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	log.Info().Dur("interval", r.interval).Msg("sweep: background runner started")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sweep: background runner stopped")
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	started := time.Now()
	result, err := r.sweep.Run(ctx, true)
	if err != nil {
		log.Error().Err(err).Msg("sweep: run failed")
		return
	}

	log.Info().
		Int("created", len(result.Created)).
		Int("skipped", len(result.Skipped)).
		Dur("took", time.Since(started)).
		Msg("sweep: run finished")

	if r.archive == nil || len(result.Created) == 0 {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("sweep: failed to encode report")
		return
	}

	key := fmt.Sprintf("%s/%s.json", r.prefix, started.UTC().Format("20060102T150405Z"))
	if err := r.archive.UploadObject(ctx, key, payload); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("sweep: report archive failed")
		return
	}
	log.Debug().Str("key", key).Msg("sweep: report archived")
}
