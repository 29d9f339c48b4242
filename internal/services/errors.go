package services

import (
	"errors"
	"fmt"
	"strings"
)

// Policy and validation errors surfaced by the service layer. Handlers map
// these to HTTP statuses; the messages for policy denials are deliberately
// generic so a denied caller learns nothing about why.
var (
	ErrCampaignNotFound = errors.New("campaign not found or not active")
	// ErrAccessDenied covers every ban-gate denial. IP, device, and identity
	// bans all produce this same error on purpose.
	ErrAccessDenied       = errors.New("access denied")
	ErrConsentRequired    = errors.New("you must accept terms to play")
	ErrPhoneRequired      = errors.New("a phone number is required for this campaign")
	ErrPlanQuotaExceeded  = errors.New("monthly play limit reached for current plan")
	ErrEmailCapReached    = errors.New("maximum plays reached for this email")
	ErrPhoneCapReached    = errors.New("maximum plays reached for this phone number")
	ErrIPVelocityExceeded = errors.New("too many plays from this location")

	ErrRewardNotFound        = errors.New("reward code not found")
	ErrRewardAlreadyRedeemed = errors.New("code already redeemed")
	ErrRewardExpired         = errors.New("code has expired")
	ErrTestCodeUnredeemable  = errors.New("test codes cannot be redeemed")

	ErrCampaignActive     = errors.New("cannot delete an active campaign")
	ErrDuplicateBan       = errors.New("ban entry already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already registered")
	ErrForbidden          = errors.New("insufficient permissions")
)

// TransitionError reports a lifecycle transition not present in the
// transition table.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ActivationError carries the itemized checklist of reasons a campaign may
// not go active. All violated rules are reported at once.
type ActivationError struct {
	Problems []string
}

func (e *ActivationError) Error() string {
	return "cannot activate campaign: " + strings.Join(e.Problems, "; ")
}
