// Command govlens is the CLI for the government-activity signal digest.
//
// Usage:
//
//	govlens                 Show help
//	govlens collect         Fetch signals from upstream sources into the DB
//	govlens digest          Compose a digest from stored signals and print it
//	govlens preview         Interactive terminal preview of the digest
//	govlens send            Compose a digest and post it to Slack
//	govlens stats           Database and run statistics
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/govlens/internal/logging"
)

const usage = `govlens — government activity signal digest

Usage:
  govlens <command> [flags]

Commands:
  collect     Fetch signals from Congress, the Federal Register, and
              regulations.gov into the local database
  digest      Compose a digest from stored signals and print it
  preview     Interactive terminal preview (r refresh, q quit)
  send        Compose a digest and post it to the Slack webhook
  stats       Database and digest run statistics

Environment:
  REGULATIONS_GOV_API_KEY  api.data.gov key for the regulations.gov collector
  GOVLENS_SLACK_WEBHOOK    Slack incoming webhook URL (overrides config)
  GOVLENS_DB               Database path (overrides config)

Run 'govlens <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	if err := logging.Init(log.InfoLevel); err != nil {
		fmt.Fprintf(os.Stderr, "govlens: logging init failed: %v\n", err)
	}
	defer logging.Close()

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "collect":
		runCollect()
	case "digest":
		runDigest()
	case "preview":
		runPreview()
	case "send":
		runSend()
	case "stats":
		runStats()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "govlens: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
