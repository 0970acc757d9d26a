package kbo

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/net/html/charset"
)

// Contact holds the fields scraped from one detail page. Every field is
// best-effort; an unrecognized layout yields empty strings, never an error.
type Contact struct {
	Name      string
	Phone     string
	PhoneE164 string
	Email     string
	Website   string
}

// Registry pages are served in Dutch or French and the labels vary between
// layouts, so each field carries an ordered list of tolerant patterns. The
// first match wins. Pattern order and case-insensitivity are compatibility
// critical: do not reorder.
var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Tel\.?|Téléphone)\s*[:\-]\s*([+()\d][^\n\r]*)`),
		regexp.MustCompile(`(?i)(?:Telefoon)\s*[:\-]\s*([+()\d][^\n\r]*)`),
	}
	emailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:E-?mail)\s*[:\-]\s*([^\s\n\r]+@[^\s\n\r]+)`),
	}
	websitePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Website|Site web)\s*[:\-]\s*(https?://[^\s\n\r]+|www\.[^\s\n\r]+)`),
	}
)

// maxNameLen bounds the heading length (in runes) accepted as a company name.
const maxNameLen = 200

// ExtractContact pulls contact fields out of the visible text of a rendered
// detail page. headings are short candidate strings for the company name in
// priority order (primary heading, secondary heading, page title).
func ExtractContact(pageText string, headings []string) Contact {
	c := Contact{
		Phone:   findFirst(phonePatterns, pageText),
		Email:   findFirst(emailPatterns, pageText),
		Website: findFirst(websitePatterns, pageText),
	}

	for _, h := range headings {
		h = strings.TrimSpace(h)
		if h != "" && utf8.RuneCountInString(h) < maxNameLen {
			c.Name = h
			break
		}
	}

	if c.Phone != "" {
		c.PhoneE164 = formatE164(c.Phone)
	}
	return c
}

// findFirst returns the trimmed first capture group of the first pattern that
// matches, or "" when none do.
func findFirst(patterns []*regexp.Regexp, text string) string {
	for _, pat := range patterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// formatE164 renders a scraped phone value in E.164 if it parses as a valid
// Belgian number. Anything else comes back empty; the raw value is kept in
// Contact.Phone either way.
func formatE164(raw string) string {
	num, err := phonenumbers.Parse(raw, "BE")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Headings extracts the name candidates from raw detail-page HTML in priority
// order: first h1, first h2, then the document title. Missing elements are
// skipped, so callers can hand the slice straight to ExtractContact.
func Headings(html string) []string {
	doc, err := parseHTML(html)
	if err != nil {
		return nil
	}

	var out []string
	for _, sel := range []string{"h1", "h2", "title"} {
		if t := strings.TrimSpace(doc.Find(sel).First().Text()); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// parseHTML decodes the page through charset detection first; the registry
// has been seen serving Latin-1 on older layouts.
func parseHTML(html string) (*goquery.Document, error) {
	utf8Reader, err := charset.NewReader(strings.NewReader(html), "")
	if err != nil {
		return goquery.NewDocumentFromReader(strings.NewReader(html))
	}
	return goquery.NewDocumentFromReader(utf8Reader)
}
