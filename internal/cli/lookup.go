// internal/cli/lookup.go
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kbo-tools/kbolookup/internal/input"
	"github.com/kbo-tools/kbolookup/internal/kbo"
	"github.com/kbo-tools/kbolookup/internal/navigator"
	"github.com/kbo-tools/kbolookup/internal/output"
	"github.com/kbo-tools/kbolookup/internal/ratelimit"
	"github.com/kbo-tools/kbolookup/internal/runner"
	"github.com/kbo-tools/kbolookup/internal/ui"
)

var (
	inputPath   string
	outputPath  string
	headless    bool
	slowMo      time.Duration
	paceDelay   time.Duration
	snapshotDir string
	preferE164  bool
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Scrape contact details for a list of enterprise numbers",
	Long: `Reads enterprise numbers from a CSV or text file, normalizes them, submits
each one through the registry's search form in a single reused browser
session, and writes one output row per number.

The run halts before any scraping if an input number cannot be normalized.
A scrape failure for one number is recorded in that row's error column and
the batch continues. Output is written once, after all numbers are processed.

When the registry interposes a human check, the batch pauses until you solve
it in the browser window and press ENTER.`,
	Example: `  # Scrape numbers from a CSV (column "enterprise_number" or first column)
  kbolookup lookup --input companies.csv

  # Text input, one number per line, "#" comments allowed
  kbolookup lookup --input companies.txt --output contacts.csv

  # Excel output, E.164 phone column, page snapshots for auditing
  kbolookup lookup -i companies.csv -o contacts.xlsx --e164 --snapshots ./pages

  # Headless run with slower pacing (headless is more likely to trip anti-bot checks)
  kbolookup lookup -i companies.csv --headless --delay 2s`,
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file: companies.csv or companies.txt (required)")
	lookupCmd.Flags().StringVarP(&outputPath, "output", "o", "kbo_contacts.csv", "Output file (.csv, .xlsx or .json)")
	lookupCmd.Flags().BoolVar(&headless, "headless", false, "Run the browser headless (NOT recommended; more likely to trigger anti-bot)")
	lookupCmd.Flags().DurationVar(&slowMo, "slowmo", 80*time.Millisecond, "Delay between browser actions; helps reduce bot triggers")
	lookupCmd.Flags().DurationVar(&paceDelay, "delay", 600*time.Millisecond, "Polite pause between records")
	lookupCmd.Flags().StringVar(&snapshotDir, "snapshots", "", "Directory for Markdown snapshots of scraped detail pages")
	lookupCmd.Flags().BoolVar(&preferE164, "e164", false, "Write phones in E.164 form when they parse as valid Belgian numbers")
	_ = lookupCmd.MarkFlagRequired("input")
}

func runLookup(cmd *cobra.Command, args []string) error {
	a := getApp()
	if a == nil {
		return fmt.Errorf("application not initialized")
	}

	// Command flags override the loaded config.
	a.Config.Headless = headless
	a.Config.SlowMo = slowMo
	a.Config.PaceDelay = paceDelay
	a.Pacer = ratelimit.NewPacer(paceDelay)

	raw, err := input.Read(inputPath)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("no enterprise numbers found in %s", inputPath)
	}

	// Normalize everything up front: a malformed identifier means bad input
	// data, and the whole run halts before the browser even starts.
	numbers, err := kbo.NormalizeAll(raw)
	if err != nil {
		return err
	}
	log.Info().Int("count", len(numbers)).Str("input", inputPath).Msg("Input normalized")

	session, err := a.EnsureSession()
	if err != nil {
		return err
	}

	prompt := &navigator.OperatorPrompt{In: os.Stdin, Out: os.Stderr}
	nav := navigator.New(session, a.Config, prompt)

	// The progress bar and JSON logs would fight over stderr.
	var progressOut io.Writer
	if !a.Config.JSONLog {
		progressOut = os.Stderr
	}

	records := runner.New(nav, a.Pacer, snapshotDir, progressOut).Run(cmd.Context(), numbers)

	if err := output.WriteRecords(outputPath, records, output.Options{PreferE164: preferE164}); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	failed := 0
	for _, r := range records {
		if r.Error != "" {
			failed++
		}
	}

	fmt.Printf("\n%s %d record(s) saved to %s\n", ui.Success("✓"), len(records), outputPath)
	if failed > 0 {
		fmt.Printf("%s %d record(s) carry an error; see the error column\n", ui.Error("✗"), failed)
	}
	return nil
}
