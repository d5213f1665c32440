// Package redirect implements the enrichment pipeline: resolve the tenant,
// fetch the lead, and send the caller to the prefilled scheduling URL.
package redirect

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/smartsched/leadbridge/internal/clients"
	"github.com/smartsched/leadbridge/internal/observability/metrics"
	"github.com/smartsched/leadbridge/internal/resolver"
	"github.com/smartsched/leadbridge/internal/smartlead"
	"github.com/smartsched/leadbridge/pkg/logging"
)

// LeadFetcher is the provider surface the pipeline needs.
type LeadFetcher interface {
	FetchLead(ctx context.Context, apiKey, email string) (*smartlead.Lead, error)
}

// Handler serves GET /{param1}/{param2} webhook hits.
type Handler struct {
	resolver *resolver.Resolver
	provider LeadFetcher
	metrics  *metrics.RedirectMetrics
	logger   *logging.Logger

	legacyUndefined bool
}

// NewHandler creates the redirect handler. metrics may be nil.
func NewHandler(res *resolver.Resolver, provider LeadFetcher, m *metrics.RedirectMetrics, logger *logging.Logger, legacyUndefined bool) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		resolver:        res,
		provider:        provider,
		metrics:         m,
		logger:          logger,
		legacyUndefined: legacyUndefined,
	}
}

// Redirect resolves the tenant, enriches with lead data, and issues a 302.
// Missing client or lead degrades the composed URL but never turns into an
// error response.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	param1 := chi.URLParam(r, "param1")
	param2 := chi.URLParam(r, "param2")

	client, leadEmail, mode := h.resolver.Resolve(r.Context(), r.Host, param1, param2)

	lead := h.fetchLead(r.Context(), client, leadEmail)

	outcome := "ok"
	switch {
	case client == nil:
		outcome = "client_miss"
	case lead == nil:
		outcome = "lead_miss"
	}
	h.metrics.ObserveRedirect(string(mode), outcome)

	target := BuildURL(client, lead, h.legacyUndefined)
	h.logger.Info("redirecting",
		"mode", mode,
		"outcome", outcome,
		"lead_email", leadEmail,
		"target", target,
	)
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handler) fetchLead(ctx context.Context, client *clients.Client, leadEmail string) *smartlead.Lead {
	if client == nil {
		return nil
	}

	start := time.Now()
	lead, err := h.provider.FetchLead(ctx, client.SmartLeadAPIKey, leadEmail)
	if err != nil {
		h.metrics.ObserveLeadFetchLatency("error", time.Since(start).Seconds())
		h.logger.Warn("lead not found", "error", err, "lead_email", leadEmail)
		return nil
	}
	h.metrics.ObserveLeadFetchLatency("ok", time.Since(start).Seconds())
	return lead
}
