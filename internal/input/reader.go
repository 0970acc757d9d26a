// Package input reads enterprise number lists from CSV or plain text files.
package input

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// numberColumn is the preferred CSV header for the identifier column.
const numberColumn = "enterprise_number"

// Read loads the raw (not yet normalized) enterprise numbers from path.
// A .csv file is read as a delimited table; anything else is treated as a
// newline-delimited list where blank lines and "#" comments are skipped.
func Read(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSV(path)
	}
	return readLines(path)
}

// readCSV prefers the enterprise_number column and falls back to the first
// column when the header does not name one.
func readCSV(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input file %s is empty", path)
	}

	col := 0
	for i, name := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(name), numberColumn) {
			col = i
			break
		}
	}
	if !strings.EqualFold(strings.TrimSpace(rows[0][col]), numberColumn) {
		log.Debug().Str("file", path).Msg("No enterprise_number column, using first column")
	}

	var numbers []string
	for _, row := range rows[1:] {
		if col >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[col]); v != "" {
			numbers = append(numbers, v)
		}
	}
	return numbers, nil
}

// readLines reads one number per line, ignoring blanks and "#" comments.
func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var numbers []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		numbers = append(numbers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return numbers, nil
}
