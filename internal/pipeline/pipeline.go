// Package pipeline is the generic per-row scrape-and-write loop: read input
// keys from the source, drive one browser session per row (or one shared
// session re-navigated per row), extract the site adapter's fields, and
// write them back to deterministic cells. Row failures are isolated; only a
// source failure aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/justinlbrj23/onyotpisot/internal/sheets"
)

// Summary counts the batch outcome.
type Summary struct {
	Done    int
	Failed  int
	Skipped int
}

// Runner wires one site adapter to a source, a sink, and a session factory.
type Runner struct {
	Site    Site
	Source  sheets.Source
	Sink    sheets.Sink
	Factory SessionFactory

	KeyRange   string
	CheckRange string

	// SnapshotDir, when set, receives a markdown dump of the page for
	// every failed row.
	SnapshotDir string

	Log *slog.Logger
}

// Run executes the whole batch. It returns an error only when no rows can
// be processed at all (source failure, or a shared session that cannot be
// acquired); per-row failures are logged and counted.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	log = log.With("site", r.Site.Name)

	rows, err := r.Source.Read(ctx, r.KeyRange, r.CheckRange)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read source: %w", err)
	}
	log.Info("source read", "rows", len(rows), "range", r.KeyRange)

	var summary Summary

	// Shared-session mode keeps one browser for the whole batch; the row
	// processor re-navigates to the search root per row so no page state
	// bleeds between searches.
	var shared Session
	if r.Site.SharedSession {
		shared, err = r.Factory()
		if err != nil {
			return summary, fmt.Errorf("%w: %v", ErrSessionAcquire, err)
		}
		defer shared.Close()
	}

	for _, row := range rows {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if row.Key == "" {
			// The source already drops blank keys; guard anyway so a
			// blank row can never reach the processor.
			summary.Skipped++
			continue
		}
		if row.Check != "" {
			log.Info("row skipped", "row", row.Index, "reason", "check column filled")
			summary.Skipped++
			continue
		}

		outcome := r.processOne(ctx, log, shared, row)
		switch outcome {
		case rowDone:
			summary.Done++
		case rowFailed:
			summary.Failed++
		case rowSkipped:
			summary.Skipped++
		}
	}

	log.Info("batch finished", "done", summary.Done, "failed", summary.Failed, "skipped", summary.Skipped)
	return summary, nil
}

type rowOutcome int

const (
	rowDone rowOutcome = iota
	rowFailed
	rowSkipped
)

// processOne isolates a single row: session acquisition, processing, and
// the sink write, with the session released on every exit path.
func (r *Runner) processOne(ctx context.Context, log *slog.Logger, shared Session, row sheets.InputRow) rowOutcome {
	session := shared
	if session == nil {
		var err error
		session, err = r.Factory()
		if err != nil {
			log.Error("row skipped", "row", row.Index, "key", row.Key,
				"error", fmt.Errorf("%w: %v", ErrSessionAcquire, err))
			return rowSkipped
		}
		defer session.Close()
	}

	cells, err := ProcessRow(ctx, session, r.Site, row)
	if err != nil {
		log.Error("row failed", "row", row.Index, "key", row.Key, "error", err)
		r.snapshot(log, session, row)
		return rowFailed
	}

	if err := r.Sink.Write(ctx, cells); err != nil {
		// The extraction stands; only this row's write is lost.
		log.Error("sink write failed", "row", row.Index, "error", err)
		return rowFailed
	}

	log.Info("row done", "row", row.Index, "key", row.Key, "cells", len(cells))
	return rowDone
}

func (r *Runner) snapshot(log *slog.Logger, session Session, row sheets.InputRow) {
	if r.SnapshotDir == "" {
		return
	}
	html, err := session.PageHTML()
	if err != nil || html == "" {
		return
	}
	path, err := SaveSnapshot(r.SnapshotDir, r.Site.Name, row.Index, html)
	if err != nil {
		log.Warn("snapshot failed", "row", row.Index, "error", err)
		return
	}
	log.Info("snapshot saved", "row", row.Index, "path", path)
}
