package redirect

import (
	"net/url"
	"strings"

	"github.com/smartsched/leadbridge/internal/clients"
	"github.com/smartsched/leadbridge/internal/smartlead"
)

// BuildURL composes the scheduling redirect target:
//
//	{calendlyLink}?name={name}&email={email}&phone={phone}
//
// legacyUndefined renders missing client/lead fields as the literal text
// "undefined", matching the original service's output; otherwise they render
// empty. A lead field the provider left blank counts as missing too. The URL
// is composed even when client or lead is missing.
func BuildURL(client *clients.Client, lead *smartlead.Lead, legacyUndefined bool) string {
	missing := ""
	if legacyUndefined {
		missing = "undefined"
	}

	base := missing
	if client != nil {
		base = client.CalendlyLink
	}

	name, email, phone := missing, missing, missing
	if lead != nil {
		name = orMissing(lead.FullName(), missing)
		email = orMissing(lead.Email, missing)
		phone = orMissing(lead.PhoneNumber, missing)
	}

	return base +
		"?name=" + encodeComponent(name) +
		"&email=" + encodeComponent(email) +
		"&phone=" + encodeComponent(phone)
}

func orMissing(v, missing string) string {
	if v == "" {
		return missing
	}
	return v
}

// encodeComponent escapes like encodeURIComponent: spaces become %20, not +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
