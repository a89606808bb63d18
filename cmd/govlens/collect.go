package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abelbrown/govlens/internal/signal"
)

func runCollect() {
	fs := flag.NewFlagSet("collect", flag.ExitOnError)
	timeout := fs.Duration("timeout", 2*time.Minute, "Overall collection timeout")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	st := openDB(cfg)
	defer st.Close()

	manager, err := buildManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sigs := manager.CollectAll(ctx)
	applyCommentDeltas(st, sigs)

	now := time.Now().UTC()
	newCount, err := st.SaveSignals(sigs, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to save signals: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Collected %d signals (%d new)\n", len(sigs), newCount)
}

// applyCommentDeltas compares fresh docket comment counts against the
// stored ones and records the 24h surge metrics. Must run before the
// batch is saved, or the baseline is gone.
func applyCommentDeltas(st commentCounter, sigs []signal.Signal) {
	for i := range sigs {
		sig := &sigs[i]
		if sig.Source != signal.SourceRegulationsGov || sig.CommentCount <= 0 {
			continue
		}

		prev, ok, err := st.CommentCount(sig.StableID())
		if err != nil || !ok || prev <= 0 || sig.CommentCount <= prev {
			continue
		}

		delta := sig.CommentCount - prev
		deltaPct := float64(delta) / float64(prev) * 100
		sig.SetMetric(signal.MetricCommentDelta, deltaPct)
		sig.SetMetric("comments_24h_delta", float64(delta))
	}
}

// commentCounter is the slice of the store the delta pass needs.
type commentCounter interface {
	CommentCount(stableID string) (int, bool, error)
}
