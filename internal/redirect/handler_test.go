package redirect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/smartsched/leadbridge/internal/clients"
	"github.com/smartsched/leadbridge/internal/resolver"
	"github.com/smartsched/leadbridge/internal/smartlead"
	"github.com/smartsched/leadbridge/pkg/logging"
)

type fakeProvider struct {
	lead  *smartlead.Lead
	err   error
	calls int

	lastAPIKey string
	lastEmail  string
}

func (f *fakeProvider) FetchLead(ctx context.Context, apiKey, email string) (*smartlead.Lead, error) {
	f.calls++
	f.lastAPIKey = apiKey
	f.lastEmail = email
	return f.lead, f.err
}

func newTestHandler(t *testing.T, provider *fakeProvider, legacy bool) *Handler {
	t.Helper()
	repo := clients.NewInMemoryRepository()
	if _, err := repo.Insert(context.Background(), &clients.UpsertClientRequest{
		Username:        "alice",
		Email:           "alice@tenant.example",
		CalendlyLink:    "https://cal.ly/alice",
		SmartLeadAPIKey: "K1",
	}); err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if _, err := repo.Insert(context.Background(), &clients.UpsertClientRequest{
		Username:        "bob",
		Domain:          "tenant.custom",
		Email:           "bob@tenant.example",
		CalendlyLink:    "https://cal.ly/bob",
		SmartLeadAPIKey: "K2",
	}); err != nil {
		t.Fatalf("seed domain client: %v", err)
	}

	res := resolver.New(repo, "default.example", logging.Default())
	return NewHandler(res, provider, nil, logging.Default(), legacy)
}

func doRedirect(h *Handler, host, param1, param2 string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/"+param1+"/"+param2, nil)
	req.Host = host
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("param1", param1)
	rctx.URLParams.Add("param2", param2)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h.Redirect(w, req)
	return w
}

func TestRedirectUsernameMode(t *testing.T) {
	provider := &fakeProvider{lead: &smartlead.Lead{
		FirstName:   "Bob",
		LastName:    "Lee",
		PhoneNumber: "555",
		Email:       "bob@x.com",
	}}
	h := newTestHandler(t, provider, true)

	w := doRedirect(h, "default.example", "alice", "bob@x.com")

	if w.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, w.Code)
	}
	want := "https://cal.ly/alice?name=Bob%20Lee&email=bob%40x.com&phone=555"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("expected redirect to %q, got %q", want, got)
	}
	if provider.lastAPIKey != "K1" {
		t.Fatalf("expected tenant api key, got %q", provider.lastAPIKey)
	}
	if provider.lastEmail != "bob@x.com" {
		t.Fatalf("expected lead email from param2, got %q", provider.lastEmail)
	}
}

func TestRedirectDomainModeIgnoresSecondSegment(t *testing.T) {
	provider := &fakeProvider{lead: &smartlead.Lead{
		FirstName:   "Ann",
		LastName:    "Way",
		PhoneNumber: "777",
		Email:       "lead@x.com",
	}}
	h := newTestHandler(t, provider, true)

	w := doRedirect(h, "tenant.custom", "lead@x.com", "ignored")

	if w.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, w.Code)
	}
	if provider.lastAPIKey != "K2" {
		t.Fatalf("expected domain tenant api key, got %q", provider.lastAPIKey)
	}
	if provider.lastEmail != "lead@x.com" {
		t.Fatalf("expected lead email from param1, got %q", provider.lastEmail)
	}
}

func TestRedirectMissingClientSkipsLeadFetch(t *testing.T) {
	provider := &fakeProvider{}
	h := newTestHandler(t, provider, true)

	w := doRedirect(h, "default.example", "nobody", "lead@x.com")

	if w.Code != http.StatusFound {
		t.Fatalf("expected degraded redirect, got %d", w.Code)
	}
	if provider.calls != 0 {
		t.Fatalf("expected no provider call without a client, got %d", provider.calls)
	}
	want := "undefined?name=undefined&email=undefined&phone=undefined"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("expected legacy placeholder URL %q, got %q", want, got)
	}
}

func TestRedirectProviderFailureDegrades(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	h := newTestHandler(t, provider, true)

	w := doRedirect(h, "default.example", "alice", "bob@x.com")

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect despite provider failure, got %d", w.Code)
	}
	want := "https://cal.ly/alice?name=undefined&email=undefined&phone=undefined"
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("expected degraded URL %q, got %q", want, got)
	}
}

func TestRedirectNonLegacyRendersEmptyFields(t *testing.T) {
	provider := &fakeProvider{err: errors.New("upstream down")}
	h := newTestHandler(t, provider, false)

	w := doRedirect(h, "default.example", "alice", "bob@x.com")

	want := "https://cal.ly/alice?name=&email=&phone="
	if got := w.Header().Get("Location"); got != want {
		t.Fatalf("expected empty-field URL %q, got %q", want, got)
	}
}
