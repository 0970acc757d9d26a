package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbo-tools/kbolookup/pkg/models"
)

var sample = []models.ContactRecord{
	{
		EnterpriseNumber: "0123456789",
		Name:             "Acme NV",
		Phone:            "02 212 34 56",
		PhoneE164:        "+3222123456",
		Email:            "info@acme.be",
		Website:          "https://acme.be",
		URL:              "https://kbopub.economie.fgov.be/detail",
	},
	{
		EnterpriseNumber: "0987654321",
		Error:            "could not find the enterprise number input field",
	},
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	return rows
}

func TestWriteRecordsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := WriteRecords(path, sample, Options{}); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}
	if strings.Join(rows[0], ",") != "enterprise_number,name,phone,email,website,url,error" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "02 212 34 56" {
		t.Errorf("phone column = %q, want raw scraped value", rows[1][2])
	}
	if rows[2][0] != "0987654321" || rows[2][6] == "" {
		t.Errorf("error row not preserved: %v", rows[2])
	}
	// Failed records keep empty contact fields rather than missing columns.
	for i := 1; i <= 5; i++ {
		if rows[2][i] != "" {
			t.Errorf("error row column %d = %q, want empty", i, rows[2][i])
		}
	}
}

func TestWriteRecordsCSVPreferE164(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := WriteRecords(path, sample, Options{PreferE164: true}); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}

	rows := readCSV(t, path)
	if rows[1][2] != "+3222123456" {
		t.Errorf("phone column = %q, want E.164 form", rows[1][2])
	}
	// Records without a derivable E.164 form keep the raw value.
	if rows[2][2] != "" {
		t.Errorf("phone column = %q, want empty", rows[2][2])
	}
}

func TestWriteRecordsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := WriteRecords(path, sample, Options{}); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	for _, want := range []string{`"enterprise_number": "0123456789"`, `"phone_e164": "+3222123456"`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("JSON output missing %s", want)
		}
	}
}

func TestWriteRecordsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	if err := WriteRecords(path, sample, Options{}); err != nil {
		t.Fatalf("WriteRecords failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("xlsx file not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("xlsx file is empty")
	}
}

func TestSaveSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pages")

	html := `<html><body><h1>Acme NV</h1><p>Tel: 02 123 45 67</p></body></html>`
	if err := SaveSnapshot(dir, "0123456789", html); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "0123456789.md"))
	if err != nil {
		t.Fatalf("snapshot not written: %v", err)
	}
	if !strings.Contains(string(content), "Acme NV") {
		t.Errorf("snapshot missing page content: %q", content)
	}
}
