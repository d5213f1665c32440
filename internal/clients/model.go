package clients

import (
	"strings"
	"time"
)

// Client is a tenant record controlling webhook routing, the scheduling
// link, and the SmartLead credential used on the tenant's behalf.
type Client struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Domain          string    `json:"domain,omitempty"`
	Email           string    `json:"email"`
	CalendlyLink    string    `json:"calendlyLink"`
	SmartLeadAPIKey string    `json:"smartLeadApiKey"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpsertClientRequest is the request body for creating or updating a client.
// Updates are keyed by Email.
type UpsertClientRequest struct {
	Username        string `json:"username"`
	Domain          string `json:"domain"`
	Email           string `json:"email"`
	CalendlyLink    string `json:"calendlyLink"`
	SmartLeadAPIKey string `json:"smartLeadApiKey"`
}

// Validate checks the fields required before any persistence or upstream
// key validation happens.
func (r *UpsertClientRequest) Validate() error {
	if strings.TrimSpace(r.SmartLeadAPIKey) == "" ||
		strings.TrimSpace(r.CalendlyLink) == "" ||
		strings.TrimSpace(r.Email) == "" {
		return ErrMissingFields
	}
	return nil
}
