package redirect

import (
	"testing"

	"github.com/smartsched/leadbridge/internal/clients"
	"github.com/smartsched/leadbridge/internal/smartlead"
)

func TestBuildURLEncodesAllFields(t *testing.T) {
	client := &clients.Client{CalendlyLink: "https://cal.ly/alice"}
	lead := &smartlead.Lead{
		FirstName:   "Bob",
		LastName:    "Lee",
		PhoneNumber: "+1 555 0100",
		Email:       "bob@x.com",
	}

	got := BuildURL(client, lead, true)
	want := "https://cal.ly/alice?name=Bob%20Lee&email=bob%40x.com&phone=%2B1%20555%200100"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildURLSpacesAreNotPlusSigns(t *testing.T) {
	lead := &smartlead.Lead{FirstName: "Bob", LastName: "Lee"}
	got := BuildURL(&clients.Client{CalendlyLink: "https://cal.ly/a"}, lead, false)
	if want := "https://cal.ly/a?name=Bob%20Lee&email=&phone="; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildURLBlankLeadFieldsLegacy(t *testing.T) {
	client := &clients.Client{CalendlyLink: "https://cal.ly/alice"}
	lead := &smartlead.Lead{
		FirstName: "SHIVAM",
		LastName:  "WIN",
		Email:     "sharmashivam@gmail.com",
	}

	got := BuildURL(client, lead, true)
	want := "https://cal.ly/alice?name=SHIVAM%20WIN&email=sharmashivam%40gmail.com&phone=undefined"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildURLBlankLeadFieldsNonLegacy(t *testing.T) {
	client := &clients.Client{CalendlyLink: "https://cal.ly/alice"}
	lead := &smartlead.Lead{FirstName: "Bob", LastName: "Lee", Email: "bob@x.com"}

	got := BuildURL(client, lead, false)
	if want := "https://cal.ly/alice?name=Bob%20Lee&email=bob%40x.com&phone="; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildURLMissingLeadLegacy(t *testing.T) {
	client := &clients.Client{CalendlyLink: "https://cal.ly/alice"}
	got := BuildURL(client, nil, true)
	want := "https://cal.ly/alice?name=undefined&email=undefined&phone=undefined"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildURLMissingClientLegacy(t *testing.T) {
	got := BuildURL(nil, nil, true)
	want := "undefined?name=undefined&email=undefined&phone=undefined"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBuildURLMissingDataNonLegacy(t *testing.T) {
	got := BuildURL(nil, nil, false)
	if want := "?name=&email=&phone="; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
