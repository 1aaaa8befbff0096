package service

import (
	"context"

	"github.com/haneul-lab/cruise-companion/models"
)

// GateService is the single entry point of the account lifecycle gate.
//
// Login runs the whole pipeline: credential classification, the lifecycle
// transition for the requested action, first-entry provisioning where the
// pathway asks for it, and finally session issuance.
//
// ResolveSession is the contract every downstream page consumes: a valid
// session resolves to the owning account's id, role and lifecycle status,
// and nothing else.
type GateService interface {
	Login(ctx context.Context, request models.LoginRequest) (models.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	ResolveSession(ctx context.Context, sessionID string) (models.SessionInfo, error)
}
