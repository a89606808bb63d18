package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/govlens/internal/preview"
)

func runPreview() {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	hours := fs.Int("hours", 0, "Collection window in hours (default: config hours_back)")
	fs.Parse(os.Args[1:])

	cfg := loadConfig()
	if *hours <= 0 {
		*hours = cfg.HoursBack
	}

	st := openDB(cfg)
	defer st.Close()

	model := preview.New(func() (string, error) {
		res, err := composeFromStore(cfg, st, *hours)
		if err != nil {
			return "", err
		}
		return res.Text, nil
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
