package clients

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the client directory interface.
//
// Mutations report the number of rows affected so callers can distinguish a
// zero-row update or delete when they care to.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*Client, error)
	FindByDomain(ctx context.Context, domain string) (*Client, error)
	Insert(ctx context.Context, req *UpsertClientRequest) (*Client, error)
	UpdateByEmail(ctx context.Context, req *UpsertClientRequest) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

// InMemoryRepository keeps the directory in process memory. Used by tests
// and local runs without a database.
type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]*Client // keyed by id
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients: make(map[string]*Client),
	}
}

// FindByUsername returns the single client with the given username.
func (r *InMemoryRepository) FindByUsername(ctx context.Context, username string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.Username == username {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrClientNotFound
}

// FindByDomain returns the single client with the given custom domain.
func (r *InMemoryRepository) FindByDomain(ctx context.Context, domain string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.clients {
		if c.Domain != "" && c.Domain == domain {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrClientNotFound
}

// Insert stores a new client, enforcing username/domain uniqueness.
func (r *InMemoryRepository) Insert(ctx context.Context, req *UpsertClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.Username == req.Username || (req.Domain != "" && c.Domain == req.Domain) {
			return nil, ErrDuplicateClient
		}
	}

	now := time.Now().UTC()
	client := &Client{
		ID:              uuid.New().String(),
		Username:        req.Username,
		Domain:          req.Domain,
		Email:           req.Email,
		CalendlyLink:    req.CalendlyLink,
		SmartLeadAPIKey: req.SmartLeadAPIKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	r.clients[client.ID] = client

	cp := *client
	return &cp, nil
}

// UpdateByEmail rewrites every row matching the email, reporting how many
// matched. Zero matches is not an error.
func (r *InMemoryRepository) UpdateByEmail(ctx context.Context, req *UpsertClientRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	var affected int64
	for _, c := range r.clients {
		if c.Email == req.Email {
			c.Username = req.Username
			c.Domain = req.Domain
			c.CalendlyLink = req.CalendlyLink
			c.SmartLeadAPIKey = req.SmartLeadAPIKey
			c.UpdatedAt = time.Now().UTC()
			affected++
		}
	}
	return affected, nil
}

// DeleteByEmail removes every row matching the email.
func (r *InMemoryRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var affected int64
	for id, c := range r.clients {
		if c.Email == email {
			delete(r.clients, id)
			affected++
		}
	}
	return affected, nil
}
