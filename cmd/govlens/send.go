package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/abelbrown/govlens/internal/notify"
	"github.com/abelbrown/govlens/internal/store"
)

func runSend() {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	hours := fs.Int("hours", 0, "Collection window in hours (default: config hours_back)")
	dryRun := fs.Bool("dry-run", false, "Compose and record the run without posting")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	if *hours <= 0 {
		*hours = cfg.HoursBack
	}

	st := openDB(cfg)
	defer st.Close()

	res, err := composeFromStore(cfg, st, *hours)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		slack := notify.NewSlack(cfg.Slack.WebhookURL)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := slack.Send(ctx, res.Text); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	runID, err := st.SaveRun(store.DigestRun{
		HoursBack:     *hours,
		SignalCount:   res.SignalCount,
		EmittedCount:  res.EmittedCount,
		OverflowCount: res.OverflowCount,
		Body:          res.Text,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to record run: %v\n", err)
		os.Exit(1)
	}

	verb := "Sent"
	if *dryRun {
		verb = "Composed"
	}
	fmt.Printf("%s digest (run %s): %d emitted, %d overflow\n",
		verb, runID, res.EmittedCount, res.OverflowCount)
}
