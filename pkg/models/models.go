package models

import "time"

// ContactRecord is one output row per input enterprise number.
//
// All fields except EnterpriseNumber are best-effort: an absent value is an
// empty string, never a missing column. A record is created once per number
// at scrape time and never mutated afterwards.
type ContactRecord struct {
	EnterpriseNumber string `json:"enterprise_number"`
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	PhoneE164        string `json:"phone_e164,omitempty"`
	Email            string `json:"email"`
	Website          string `json:"website"`
	URL              string `json:"url"`
	Error            string `json:"error,omitempty"`
}

// RenderedPage is what the navigation driver hands back after a successful
// form submission: the detail page as the browser rendered it.
type RenderedPage struct {
	URL       string
	Title     string
	HTML      string
	Text      string
	Headings  []string
	FetchedAt time.Time
}
