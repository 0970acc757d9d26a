package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kbo-tools/kbolookup/internal/ratelimit"
	"github.com/kbo-tools/kbolookup/pkg/models"
)

type fakeDriver struct {
	failOn string
	calls  []string
}

func (f *fakeDriver) Lookup(ctx context.Context, number string) (*models.RenderedPage, error) {
	f.calls = append(f.calls, number)
	if number == f.failOn {
		return nil, errors.New("could not find the enterprise number input field")
	}
	return &models.RenderedPage{
		URL:      "https://registry.example/detail/" + number,
		Text:     "Tel: +32 2 123 45 67\nE-mail: info@example.be",
		HTML:     "<html><body><h1>Firm " + number + "</h1></body></html>",
		Headings: []string{"Firm " + number},
	}, nil
}

func TestRunOneErrorDoesNotStopBatch(t *testing.T) {
	driver := &fakeDriver{failOn: "0222222222"}
	r := New(driver, ratelimit.NewPacer(0), "", nil)

	numbers := []string{"0111111111", "0222222222", "0333333333"}
	records := r.Run(context.Background(), numbers)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if len(driver.calls) != 3 {
		t.Fatalf("driver called %d times, want 3", len(driver.calls))
	}

	errCount := 0
	for i, rec := range records {
		if rec.EnterpriseNumber != numbers[i] {
			t.Errorf("record %d number = %q, want %q (order must be preserved)", i, rec.EnterpriseNumber, numbers[i])
		}
		if rec.Error != "" {
			errCount++
			if rec.Name != "" || rec.Phone != "" || rec.Email != "" || rec.Website != "" || rec.URL != "" {
				t.Errorf("failed record %d should have empty contact fields: %+v", i, rec)
			}
		}
	}
	if errCount != 1 {
		t.Errorf("expected exactly 1 error record, got %d", errCount)
	}
}

func TestRunExtractsContactFields(t *testing.T) {
	r := New(&fakeDriver{}, nil, "", nil)

	records := r.Run(context.Background(), []string{"0123456789"})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Phone != "+32 2 123 45 67" {
		t.Errorf("Phone = %q", rec.Phone)
	}
	if rec.Email != "info@example.be" {
		t.Errorf("Email = %q", rec.Email)
	}
	if rec.Name != "Firm 0123456789" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.URL != "https://registry.example/detail/0123456789" {
		t.Errorf("URL = %q", rec.URL)
	}
	if rec.Error != "" {
		t.Errorf("Error = %q, want empty", rec.Error)
	}
}

func TestRunWritesSnapshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pages")
	r := New(&fakeDriver{}, nil, dir, nil)

	r.Run(context.Background(), []string{"0123456789"})

	if _, err := os.Stat(filepath.Join(dir, "0123456789.md")); err != nil {
		t.Errorf("snapshot not written: %v", err)
	}
}

func TestRunCancelledMidBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A long pacing interval plus a cancelled context aborts before the
	// first lookup; every input still gets an output row.
	driver := &fakeDriver{}
	r := New(driver, ratelimit.NewPacer(time.Minute), "", nil)

	records := r.Run(ctx, []string{"0111111111", "0222222222"})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Error == "" {
			t.Errorf("cancelled record should carry an error: %+v", rec)
		}
	}
}
