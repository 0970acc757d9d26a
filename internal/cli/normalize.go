// internal/cli/normalize.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbo-tools/kbolookup/internal/input"
	"github.com/kbo-tools/kbolookup/internal/kbo"
)

var normalizeInput string

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize [numbers...]",
	Short: "Normalize enterprise numbers without scraping",
	Long: `Converts free-form enterprise numbers ("BE 0123.456.789", "123456789") to
their canonical 10-digit form and prints one per line. Useful to sanity-check
an input file before a long scraping run.

The first invalid number aborts with a non-zero exit code.`,
	Example: `  kbolookup normalize "BE 0123.456.789" 123456789

  # Check a whole input file
  kbolookup normalize --input companies.csv`,
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringVarP(&normalizeInput, "input", "i", "", "Read numbers from a CSV or text file instead of arguments")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	raw := args
	if normalizeInput != "" {
		fromFile, err := input.Read(normalizeInput)
		if err != nil {
			return err
		}
		raw = append(fromFile, raw...)
	}
	if len(raw) == 0 {
		return fmt.Errorf("nothing to normalize: pass numbers as arguments or use --input")
	}

	numbers, err := kbo.NormalizeAll(raw)
	if err != nil {
		return err
	}
	for _, n := range numbers {
		fmt.Println(n)
	}
	return nil
}
