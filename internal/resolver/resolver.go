// Package resolver maps an inbound webhook request to a tenant client record
// and the lead email to enrich with.
package resolver

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/smartsched/leadbridge/internal/clients"
	"github.com/smartsched/leadbridge/pkg/logging"
)

// Mode reports which routing key resolved a request.
type Mode string

const (
	// ModeDomain means the request arrived on a tenant's custom domain.
	ModeDomain Mode = "domain"
	// ModeUsername means the request arrived on the canonical domain with a
	// username path segment.
	ModeUsername Mode = "username"
)

// Directory is the client lookup surface the resolver needs.
type Directory interface {
	FindByUsername(ctx context.Context, username string) (*clients.Client, error)
	FindByDomain(ctx context.Context, domain string) (*clients.Client, error)
}

// Resolver dispatches a (host, path segments) pair to a client record.
type Resolver struct {
	directory     Directory
	defaultDomain string
	logger        *logging.Logger
}

// New creates a resolver. defaultDomain is the canonical webhook host;
// requests on any other host resolve by custom domain.
func New(directory Directory, defaultDomain string, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{
		directory:     directory,
		defaultDomain: strings.ToLower(defaultDomain),
		logger:        logger,
	}
}

// Resolve determines the client and the lead email for a request.
//
// Custom-domain mode: host differs from the canonical domain, param1 is the
// lead email, and the client is looked up by domain. Default mode: param1 is
// the tenant username, param2 is the lead email. Domain mode wins whenever
// the host differs, regardless of path shape.
//
// A lookup miss yields a nil client with no error; the redirect path treats
// that as a recoverable condition.
func (r *Resolver) Resolve(ctx context.Context, host, param1, param2 string) (*clients.Client, string, Mode) {
	host = NormalizeHost(host)

	var (
		client    *clients.Client
		leadEmail string
		mode      Mode
		err       error
	)
	if host != r.defaultDomain {
		mode = ModeDomain
		leadEmail = param1
		client, err = r.directory.FindByDomain(ctx, host)
		if err != nil {
			r.logClientMiss(err, "domain", host)
		}
	} else {
		mode = ModeUsername
		leadEmail = param2
		client, err = r.directory.FindByUsername(ctx, param1)
		if err != nil {
			r.logClientMiss(err, "username", param1)
		}
	}

	return client, leadEmail, mode
}

// NormalizeHost lowercases the host and strips any port.
func NormalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSpace(host))
}

func (r *Resolver) logClientMiss(err error, keyKind, key string) {
	if errors.Is(err, clients.ErrClientNotFound) {
		r.logger.Warn("client not found", keyKind, key)
		return
	}
	r.logger.Error("client lookup failed", "error", err, keyKind, key)
}
