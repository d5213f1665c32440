package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/smartsched/leadbridge/internal/observability/metrics"
	"github.com/smartsched/leadbridge/pkg/logging"
)

// KeyValidator checks a SmartLead API key against the provider before a
// client record is persisted.
type KeyValidator interface {
	ValidateKey(ctx context.Context, apiKey, email string) bool
}

// Handler handles HTTP requests for client management
type Handler struct {
	repo      Repository
	validator KeyValidator
	metrics   *metrics.RedirectMetrics
	logger    *logging.Logger

	// strict turns a zero-row update into 404 instead of silent success.
	strict bool
}

// NewHandler creates a new client management handler. m may be nil.
func NewHandler(repo Repository, validator KeyValidator, m *metrics.RedirectMetrics, logger *logging.Logger, strict bool) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:      repo,
		validator: validator,
		metrics:   m,
		logger:    logger,
		strict:    strict,
	}
}

// messageResponse is the success envelope for mutations.
type messageResponse struct {
	Message string  `json:"message"`
	Data    *Client `json:"data,omitempty"`
}

// Create handles POST /client requests
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndGate(w, r, "create")
	if !ok {
		return
	}

	client, err := h.repo.Insert(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to create client", "error", err, "username", req.Username)
		h.metrics.ObserveManagement("create", "error")
		jsonError(w, "Error creating client", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveManagement("create", "created")
	h.logger.Info("client created", "id", client.ID, "username", client.Username)
	writeJSON(w, http.StatusCreated, messageResponse{
		Message: "Client created successfully",
		Data:    client,
	})
}

// Update handles PUT /client requests. The row is matched by email.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndGate(w, r, "update")
	if !ok {
		return
	}

	affected, err := h.repo.UpdateByEmail(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to update client", "error", err, "email", req.Email)
		h.metrics.ObserveManagement("update", "error")
		jsonError(w, "Error updating client", http.StatusInternalServerError)
		return
	}
	if h.strict && affected == 0 {
		h.metrics.ObserveManagement("update", "not_found")
		jsonError(w, "Client not found", http.StatusNotFound)
		return
	}

	h.metrics.ObserveManagement("update", "ok")
	h.logger.Info("client updated", "email", req.Email, "rows", affected)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Client updated successfully"})
}

// Delete handles DELETE /client/{email} requests. Deleting a non-existent
// email still succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		jsonError(w, "email parameter required", http.StatusBadRequest)
		return
	}

	affected, err := h.repo.DeleteByEmail(r.Context(), email)
	if err != nil {
		h.logger.Error("failed to delete client", "error", err, "email", email)
		h.metrics.ObserveManagement("delete", "error")
		jsonError(w, "Error deleting client", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveManagement("delete", "ok")
	h.logger.Info("client deleted", "email", email, "rows", affected)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Client deleted successfully"})
}

// decodeAndGate decodes the body, checks required fields, and validates the
// SmartLead key. Field validation failures never reach the provider and key
// validation failures never reach the directory.
func (h *Handler) decodeAndGate(w http.ResponseWriter, r *http.Request, operation string) (*UpsertClientRequest, bool) {
	var req UpsertClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		h.metrics.ObserveManagement(operation, "rejected")
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return nil, false
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Domain = strings.ToLower(strings.TrimSpace(req.Domain))

	if err := req.Validate(); err != nil {
		h.metrics.ObserveManagement(operation, "rejected")
		jsonError(w, "Missing required fields [Smart Lead API/ Calendly Link/ Email]", http.StatusBadRequest)
		return nil, false
	}

	if !h.validator.ValidateKey(r.Context(), req.SmartLeadAPIKey, req.Email) {
		h.logger.Warn("smartlead key rejected", "email", req.Email)
		h.metrics.ObserveManagement(operation, "rejected")
		jsonError(w, "Invalid Smart Lead API Key", http.StatusBadRequest)
		return nil, false
	}

	return &req, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
