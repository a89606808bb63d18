package main

import (
	"flag"
	"fmt"
	"os"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	runs := fs.Int("runs", 5, "Number of recent digest runs to show")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	st := openDB(cfg)
	defer st.Close()

	stats, err := st.GetStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Signals in DB:      %d\n", stats.TotalSignals)
	for src, n := range stats.BySource {
		fmt.Printf("  %-18s %d\n", string(src)+":", n)
	}
	fmt.Printf("Watchlist hits:     %d\n", stats.WatchlistHits)
	fmt.Printf("Digest runs:        %d\n", stats.DigestRunsTotal)

	if *runs <= 0 {
		return
	}
	recent, err := st.ListRuns(*runs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if len(recent) == 0 {
		return
	}

	fmt.Printf("\nRecent runs:\n")
	for _, r := range recent {
		fmt.Printf("  %s  %s  %dh window, %d signals, %d emitted, %d overflow\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.ID[:8], r.HoursBack,
			r.SignalCount, r.EmittedCount, r.OverflowCount)
	}
}
