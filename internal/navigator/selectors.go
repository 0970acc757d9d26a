package navigator

// The registry's markup changes between layout revisions, so navigation is
// configuration rather than logic: ordered candidate selector lists, tried in
// sequence, first success wins.

// inputSelectors locate the enterprise number field on the search form.
var inputSelectors = []string{
	`input[name="nummer"]`,
	`input#nummer`,
	`input[type="text"]`,
}

// submitSelectors locate the search button. The Dutch and French button
// captions are matched case-insensitively on the value attribute. When every
// candidate fails the driver falls back to pressing Enter in the form field.
var submitSelectors = []string{
	`input[type="submit"]`,
	`button[type="submit"]`,
	`input[value*="Zoek" i]`,
	`input[value*="Recher" i]`,
}
