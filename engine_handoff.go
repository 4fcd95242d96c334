package cxauth

import (
	"context"

	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/handoff"
	"github.com/Kevin-Shelton/verizon-cx-demo-sub000/token"
	"github.com/google/uuid"
)

// MintHandoff issues a short-lived handoff token for a partner redirect.
// The token subject is always portal-scoped, never an internal account
// ID. session may be nil: an unauthenticated visitor gets a handoff
// under the anonymous demo identity. Handoff tokens never carry a role.
func (e *Engine) MintHandoff(ctx context.Context, session *token.Claims) (HandoffGrant, error) {
	if e == nil || e.tokens == nil {
		return HandoffGrant{}, ErrEngineNotReady
	}

	identity := e.handoffIdentity(session)

	signed, expiresAt, err := e.tokens.Issue(token.KindHandoff, identity)
	if err != nil {
		return HandoffGrant{}, err
	}

	auditSubject := identity.Subject
	if session != nil {
		auditSubject = session.Subject
	}

	e.metrics.Inc(MetricHandoffIssued)
	e.emitAudit(ctx, eventHandoffIssued, true, auditSubject, nil, nil)

	return HandoffGrant{Token: signed, ExpiresAt: expiresAt}, nil
}

// LaunchURL builds the partner launch URL for rawURL, minting a handoff
// token and attaching it in the shape the partner host expects. When the
// mint fails, the original URL is returned unchanged so the visitor still
// lands on the partner page, just unauthenticated.
func (e *Engine) LaunchURL(ctx context.Context, rawURL string, session *token.Claims) (string, error) {
	shape := handoff.ShapeFor(rawURL, e.config.Handoff.BridgeHosts)

	grant, err := e.MintHandoff(ctx, session)
	if err != nil {
		e.metrics.Inc(MetricHandoffFallback)
		e.emitAudit(ctx, eventHandoffFallback, false, "", err, map[string]string{"url": rawURL})
		return rawURL, nil
	}

	built, err := handoff.Build(shape, rawURL, grant.Token)
	if err != nil {
		return "", err
	}
	return built, nil
}

// handoffIdentity maps an optional session onto the identity carried by
// a handoff token. The subject is always portal-scoped; internal account
// IDs never cross into the partner domain.
func (e *Engine) handoffIdentity(session *token.Claims) token.Identity {
	if session != nil {
		return token.Identity{
			Subject: "portal-" + uuid.NewString(),
			Email:   session.Email,
			Name:    session.Name,
		}
	}
	return token.Identity{
		Subject: "portal-" + uuid.NewString(),
		Email:   e.config.Handoff.AnonymousEmail,
		Name:    e.config.Handoff.AnonymousName,
	}
}
