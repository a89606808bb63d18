package main

import (
	"flag"
	"fmt"
	"os"
)

func runDigest() {
	fs := flag.NewFlagSet("digest", flag.ExitOnError)
	hours := fs.Int("hours", 0, "Collection window in hours (default: config hours_back)")
	mini := fs.Bool("mini", false, "Compose the compact mini alert instead of the full digest")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	if *hours <= 0 {
		*hours = cfg.HoursBack
	}

	st := openDB(cfg)
	defer st.Close()

	if *mini {
		text, ok := composeMiniFromStore(cfg, st, *hours)
		if !ok {
			fmt.Println("Nothing crosses the mini alert bar.")
			return
		}
		fmt.Println(text)
		return
	}

	res, err := composeFromStore(cfg, st, *hours)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(res.Text)
	fmt.Fprintf(os.Stderr, "\n%d signals, %d emitted, %d overflow\n",
		res.SignalCount, res.EmittedCount, res.OverflowCount)
}
