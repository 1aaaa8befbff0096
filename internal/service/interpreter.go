package service

import (
	"github.com/haneul-lab/cruise-companion/internal/config"
	"github.com/haneul-lab/cruise-companion/models"
)

// RequestedAction is the closed set of lifecycle actions a submitted
// credential can request. Produced by the credential interpreter, consumed
// by the lifecycle state machine; nothing else branches on raw credential
// values.
type RequestedAction int

const (
	// ActionStandardLogin is the fall-through: the credential is an
	// ordinary secret to verify against the stored one.
	ActionStandardLogin RequestedAction = iota

	// ActionBeginTrial requests the trial pathway.
	ActionBeginTrial

	// ActionActivateOrReactivate requests activation, reactivation or
	// self-service signup.
	ActionActivateOrReactivate

	// ActionRejectLocked always fails. The locked credential is reserved
	// as a "do not allow login" marker and never authenticates.
	ActionRejectLocked

	// ActionPartnerLogin requests the partner-portal pathway.
	ActionPartnerLogin
)

// credentialInterpreter classifies a login request into a [RequestedAction]
// by matching the submitted credential against the configured sentinel
// values. Classification is pure: no lookups, no mutations.
type credentialInterpreter struct {
	gate config.Gate
}

func newCredentialInterpreter(gate config.Gate) *credentialInterpreter {
	return &credentialInterpreter{gate: gate}
}

// Classify inspects the literal credential value and the optional mode
// hint. Sentinels are checked before anything else so they are never
// treated as ordinary secrets.
//
// Returns [ErrValidation] when a required field for the requested pathway
// is missing; no state transition may be attempted after that.
func (i *credentialInterpreter) Classify(request models.LoginRequest) (RequestedAction, error) {
	if request.Credential == "" || request.Contact == "" {
		return ActionStandardLogin, ErrValidation
	}

	switch request.Credential {
	case i.gate.LockedSentinel:
		return ActionRejectLocked, nil

	case i.gate.TrialSentinel:
		if request.DisplayName == "" {
			return ActionBeginTrial, ErrValidation
		}
		return ActionBeginTrial, nil

	case i.gate.ReactivateSentinel:
		return ActionActivateOrReactivate, nil

	case i.gate.PartnerSentinel:
		if request.DisplayName == "" {
			return ActionPartnerLogin, ErrValidation
		}
		return ActionPartnerLogin, nil
	}

	if request.Mode == models.ModePartner {
		return ActionPartnerLogin, nil
	}

	return ActionStandardLogin, nil
}
