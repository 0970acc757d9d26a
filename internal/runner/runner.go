// Package runner walks the normalized number list through the navigation
// driver and collects one ContactRecord per input, in order. A failing record
// never stops the batch; its error lands in the record and the run moves on.
package runner

import (
	"context"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/kbo-tools/kbolookup/internal/kbo"
	"github.com/kbo-tools/kbolookup/internal/output"
	"github.com/kbo-tools/kbolookup/internal/ratelimit"
	"github.com/kbo-tools/kbolookup/pkg/models"
)

// Driver is the navigation capability the runner depends on. The real
// implementation drives a browser; tests substitute a fake.
type Driver interface {
	Lookup(ctx context.Context, number string) (*models.RenderedPage, error)
}

// Runner processes a batch of canonical enterprise numbers sequentially
// through one Driver.
type Runner struct {
	driver      Driver
	pacer       *ratelimit.Pacer
	snapshotDir string
	progressOut io.Writer
}

// New creates a Runner. snapshotDir may be empty (no page snapshots);
// progressOut may be nil (no progress bar).
func New(driver Driver, pacer *ratelimit.Pacer, snapshotDir string, progressOut io.Writer) *Runner {
	return &Runner{
		driver:      driver,
		pacer:       pacer,
		snapshotDir: snapshotDir,
		progressOut: progressOut,
	}
}

// Run scrapes every number and returns exactly one record per input, in the
// input order. Numbers must already be in canonical 10-digit form.
func (r *Runner) Run(ctx context.Context, numbers []string) []models.ContactRecord {
	records := make([]models.ContactRecord, 0, len(numbers))

	var bar *progressbar.ProgressBar
	if r.progressOut != nil {
		bar = progressbar.NewOptions(len(numbers),
			progressbar.OptionSetWriter(r.progressOut),
			progressbar.OptionSetDescription("scraping"),
			progressbar.OptionShowCount(),
		)
	}

	for i, number := range numbers {
		if r.pacer != nil {
			if err := r.pacer.Wait(ctx); err != nil {
				// Cancelled mid-batch: emit the remaining records as errors
				// so the output still has one row per input.
				log.Warn().Err(err).Int("remaining", len(numbers)-i).Msg("Batch cancelled")
				for _, rest := range numbers[i:] {
					records = append(records, models.ContactRecord{
						EnterpriseNumber: rest,
						Error:            err.Error(),
					})
				}
				break
			}
		}

		log.Info().Int("index", i+1).Int("total", len(numbers)).Str("number", number).Msg("Looking up")
		records = append(records, r.scrapeOne(ctx, number))

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return records
}

// scrapeOne runs one lookup and extraction. Driver errors are recorded, not
// returned: partial batches are the whole point.
func (r *Runner) scrapeOne(ctx context.Context, number string) models.ContactRecord {
	page, err := r.driver.Lookup(ctx, number)
	if err != nil {
		log.Warn().Str("number", number).Err(err).Msg("Lookup failed, continuing batch")
		return models.ContactRecord{
			EnterpriseNumber: number,
			Error:            err.Error(),
		}
	}

	contact := kbo.ExtractContact(page.Text, page.Headings)

	if r.snapshotDir != "" {
		if err := output.SaveSnapshot(r.snapshotDir, number, page.HTML); err != nil {
			log.Warn().Str("number", number).Err(err).Msg("Failed to save page snapshot")
		}
	}

	return models.ContactRecord{
		EnterpriseNumber: number,
		Name:             contact.Name,
		Phone:            contact.Phone,
		PhoneE164:        contact.PhoneE164,
		Email:            contact.Email,
		Website:          contact.Website,
		URL:              page.URL,
	}
}
