// Package navigator drives the registry's public search form: submit one
// enterprise number, walk through an optional result list, and hand back the
// rendered detail page. Selector fallback chains and the human-check pause
// live here; parsing does not.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/rs/zerolog/log"

	"github.com/kbo-tools/kbolookup/internal/browser"
	"github.com/kbo-tools/kbolookup/internal/config"
	"github.com/kbo-tools/kbolookup/internal/kbo"
	"github.com/kbo-tools/kbolookup/pkg/models"
)

// Navigation errors surfaced into the per-record error column.
var (
	ErrFieldNotFound = errors.New("could not find the enterprise number input field on the registry form")
)

// selectorTimeout bounds each candidate probe; a stale selector should fail
// fast so the next candidate gets its turn.
const selectorTimeout = 2 * time.Second

// Navigator submits lookups through one shared browser session.
type Navigator struct {
	session  *browser.Session
	startURL string
	slowMo   time.Duration
	timeout  time.Duration
	prompt   *OperatorPrompt
}

// New wires a Navigator to an already-running browser session.
func New(session *browser.Session, cfg *config.Config, prompt *OperatorPrompt) *Navigator {
	return &Navigator{
		session:  session,
		startURL: cfg.StartURL,
		slowMo:   cfg.SlowMo,
		timeout:  cfg.NavTimeout,
		prompt:   prompt,
	}
}

// Lookup submits one canonical enterprise number and returns the rendered
// detail page. ctx only gates cancellation between steps; the human-check
// pause itself is an unbounded wait on the operator.
func (n *Navigator) Lookup(ctx context.Context, number string) (*models.RenderedPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := n.run(chromedp.Navigate(n.startURL), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return nil, fmt.Errorf("failed to open search form: %w", err)
	}
	if err := n.pauseForHumanCheck(); err != nil {
		return nil, err
	}

	if err := n.fillNumber(number); err != nil {
		return nil, err
	}
	if err := n.submit(); err != nil {
		return nil, err
	}
	if err := n.pauseForHumanCheck(); err != nil {
		return nil, err
	}

	if err := n.openDetailFromResultList(number); err != nil {
		return nil, err
	}
	if err := n.pauseForHumanCheck(); err != nil {
		return nil, err
	}

	return n.capture()
}

// run executes actions against the session with the configured step timeout,
// spacing them with the slow-motion delay.
func (n *Navigator) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(n.session.Ctx(), n.timeout)
	defer cancel()

	spaced := make([]chromedp.Action, 0, len(actions)*2)
	for _, a := range actions {
		spaced = append(spaced, a)
		if n.slowMo > 0 {
			spaced = append(spaced, chromedp.Sleep(n.slowMo))
		}
	}
	return chromedp.Run(ctx, spaced...)
}

// fillNumber probes the candidate input selectors in order.
func (n *Navigator) fillNumber(number string) error {
	for _, sel := range inputSelectors {
		ctx, cancel := context.WithTimeout(n.session.Ctx(), selectorTimeout)
		err := chromedp.Run(ctx,
			chromedp.WaitVisible(sel, chromedp.ByQuery),
			chromedp.Clear(sel, chromedp.ByQuery),
			chromedp.SendKeys(sel, number, chromedp.ByQuery),
		)
		cancel()
		if err == nil {
			log.Debug().Str("selector", sel).Str("number", number).Msg("Number field filled")
			return nil
		}
		log.Debug().Str("selector", sel).Err(err).Msg("Input selector failed, trying next")
	}
	return ErrFieldNotFound
}

// submit probes the candidate submit selectors; exhaustion falls back to
// pressing Enter, which the form also accepts.
func (n *Navigator) submit() error {
	submitted := false
	for _, sel := range submitSelectors {
		ctx, cancel := context.WithTimeout(n.session.Ctx(), selectorTimeout)
		err := chromedp.Run(ctx, chromedp.Click(sel, chromedp.ByQuery))
		cancel()
		if err == nil {
			log.Debug().Str("selector", sel).Msg("Form submitted")
			submitted = true
			break
		}
		log.Debug().Str("selector", sel).Err(err).Msg("Submit selector failed, trying next")
	}

	if !submitted {
		log.Debug().Msg("No submit button matched, pressing Enter")
		if err := n.run(chromedp.KeyEvent(kb.Enter)); err != nil {
			return fmt.Errorf("failed to submit search form: %w", err)
		}
	}

	return n.run(chromedp.WaitReady("body", chromedp.ByQuery))
}

// openDetailFromResultList clicks through when the search lands on a result
// list instead of the detail page. More than one link matching the number is
// ambiguous; it is flagged loudly and the first link is followed, matching
// the registry's own ordering.
func (n *Navigator) openDetailFromResultList(number string) error {
	var matches int
	countJS := fmt.Sprintf(
		`Array.from(document.querySelectorAll('a')).filter(a => a.textContent.includes(%q)).length`,
		number,
	)
	if err := n.run(chromedp.Evaluate(countJS, &matches)); err != nil {
		log.Debug().Err(err).Msg("Result list probe failed, assuming detail page")
		return nil
	}

	if matches == 0 {
		return nil
	}
	if matches > 1 {
		log.Warn().
			Str("number", number).
			Int("matches", matches).
			Msg("Ambiguous result list: multiple links match this number, following the first")
	}

	clickJS := fmt.Sprintf(
		`Array.from(document.querySelectorAll('a')).find(a => a.textContent.includes(%q)).click()`,
		number,
	)
	if err := n.run(chromedp.Evaluate(clickJS, nil), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		// Best effort, like the rest of result-list handling: the search can
		// also land directly on the detail page.
		log.Debug().Err(err).Msg("Result link click failed, continuing with current page")
	}
	return nil
}

// capture reads the rendered detail page out of the browser.
func (n *Navigator) capture() (*models.RenderedPage, error) {
	var pageURL, title, text, html string
	err := n.run(
		chromedp.Location(&pageURL),
		chromedp.Title(&title),
		chromedp.Text("body", &text, chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read detail page: %w", err)
	}

	return &models.RenderedPage{
		URL:       pageURL,
		Title:     title,
		HTML:      html,
		Text:      text,
		Headings:  kbo.Headings(html),
		FetchedAt: time.Now(),
	}, nil
}

// pauseForHumanCheck inspects the current page and, when it reads like a
// verification challenge, blocks until the operator clears it.
func (n *Navigator) pauseForHumanCheck() error {
	if n.prompt == nil {
		return nil
	}

	var body string
	ctx, cancel := context.WithTimeout(n.session.Ctx(), selectorTimeout)
	err := chromedp.Run(ctx, chromedp.Text("body", &body, chromedp.ByQuery))
	cancel()
	if err != nil {
		// An unreadable body is not a challenge; let the next step fail on
		// its own terms if the page is actually broken.
		return nil
	}

	if !looksLikeHumanCheck(body) {
		return nil
	}

	log.Info().Msg("Human check detected, waiting for operator")
	if err := n.prompt.Wait(); err != nil {
		return err
	}

	// Give the page a moment to settle after the operator's interaction.
	return n.run(chromedp.WaitReady("body", chromedp.ByQuery))
}
