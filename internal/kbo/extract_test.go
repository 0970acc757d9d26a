package kbo

import (
	"strings"
	"testing"
)

func TestExtractContact(t *testing.T) {
	text := "Tel: +32 2 123 45 67\nE-mail: info@example.be\nWebsite: https://example.be"

	c := ExtractContact(text, []string{"Example BV"})

	if c.Phone != "+32 2 123 45 67" {
		t.Errorf("Phone = %q, want %q", c.Phone, "+32 2 123 45 67")
	}
	if c.Email != "info@example.be" {
		t.Errorf("Email = %q, want %q", c.Email, "info@example.be")
	}
	if c.Website != "https://example.be" {
		t.Errorf("Website = %q, want %q", c.Website, "https://example.be")
	}
	if c.Name != "Example BV" {
		t.Errorf("Name = %q, want %q", c.Name, "Example BV")
	}
}

func TestExtractContactLabelVariants(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, c Contact)
	}{
		{
			name: "french phone label",
			text: "Téléphone - 02 123 45 67",
			check: func(t *testing.T, c Contact) {
				if c.Phone != "02 123 45 67" {
					t.Errorf("Phone = %q", c.Phone)
				}
			},
		},
		{
			name: "dutch phone label",
			text: "Telefoon: (02) 123.45.67",
			check: func(t *testing.T, c Contact) {
				if c.Phone != "(02) 123.45.67" {
					t.Errorf("Phone = %q", c.Phone)
				}
			},
		},
		{
			name: "tel dot label ranks before telefoon",
			text: "Telefoon: 111\nTel.: 222",
			check: func(t *testing.T, c Contact) {
				// Tel./Téléphone patterns are tried first.
				if c.Phone != "222" {
					t.Errorf("Phone = %q, want %q", c.Phone, "222")
				}
			},
		},
		{
			name: "email without hyphen",
			text: "Email: contact@firma.be",
			check: func(t *testing.T, c Contact) {
				if c.Email != "contact@firma.be" {
					t.Errorf("Email = %q", c.Email)
				}
			},
		},
		{
			name: "french website label with www token",
			text: "Site web: www.firma.be",
			check: func(t *testing.T, c Contact) {
				if c.Website != "www.firma.be" {
					t.Errorf("Website = %q", c.Website)
				}
			},
		},
		{
			name: "absent website stays empty",
			text: "Tel: +32 2 123 45 67\nE-mail: info@example.be",
			check: func(t *testing.T, c Contact) {
				if c.Phone != "+32 2 123 45 67" || c.Email != "info@example.be" {
					t.Errorf("Phone = %q, Email = %q", c.Phone, c.Email)
				}
				if c.Website != "" {
					t.Errorf("Website = %q, want empty", c.Website)
				}
			},
		},
		{
			name: "phone stops at end of line",
			text: "Tel: +32 2 555 00 11\nBtw-plichtig: Ja",
			check: func(t *testing.T, c Contact) {
				if c.Phone != "+32 2 555 00 11" {
					t.Errorf("Phone = %q", c.Phone)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ExtractContact(tt.text, nil))
		})
	}
}

func TestExtractContactNoLabels(t *testing.T) {
	c := ExtractContact("Algemene informatie over de onderneming.", nil)

	if c.Name != "" || c.Phone != "" || c.Email != "" || c.Website != "" {
		t.Errorf("expected all fields empty, got %+v", c)
	}
}

func TestExtractContactNamePriority(t *testing.T) {
	tooLong := strings.Repeat("x", 200)

	tests := []struct {
		name     string
		headings []string
		want     string
	}{
		{"first heading wins", []string{"Acme NV", "Gegevens", "KBO Public Search"}, "Acme NV"},
		{"empty heading skipped", []string{"", "Acme NV"}, "Acme NV"},
		{"whitespace heading skipped", []string{"  \n ", "Acme NV"}, "Acme NV"},
		{"oversized heading skipped", []string{tooLong, "Acme NV"}, "Acme NV"},
		{"no candidates", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ExtractContact("", tt.headings)
			if c.Name != tt.want {
				t.Errorf("Name = %q, want %q", c.Name, tt.want)
			}
		})
	}
}

func TestExtractContactE164(t *testing.T) {
	c := ExtractContact("Tel: 02 212 34 56", nil)
	if c.PhoneE164 != "+3222123456" {
		t.Errorf("PhoneE164 = %q, want %q", c.PhoneE164, "+3222123456")
	}

	// Garbage after the label still fills Phone but not the E.164 form.
	c = ExtractContact("Tel: 12", nil)
	if c.Phone != "12" {
		t.Errorf("Phone = %q, want %q", c.Phone, "12")
	}
	if c.PhoneE164 != "" {
		t.Errorf("PhoneE164 = %q, want empty", c.PhoneE164)
	}
}

func TestHeadings(t *testing.T) {
	html := `<html><head><title>KBO Public Search</title></head>
	<body><h1>Acme NV</h1><h2>Ondernemingsgegevens</h2><h2>Second</h2></body></html>`

	got := Headings(html)
	want := []string{"Acme NV", "Ondernemingsgegevens", "KBO Public Search"}

	if len(got) != len(want) {
		t.Fatalf("Headings returned %d candidates, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Headings[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHeadingsMissingElements(t *testing.T) {
	got := Headings(`<html><head><title>Only Title</title></head><body><p>x</p></body></html>`)
	if len(got) != 1 || got[0] != "Only Title" {
		t.Errorf("Headings = %v, want [Only Title]", got)
	}
}
