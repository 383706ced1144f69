package services

import (
	"github.com/reviewhub/reviews-backend/internal/models"
)

// Action is an operation gated by the moderation policy.
type Action string

const (
	ActionRead      Action = "read"
	ActionCreate    Action = "create"
	ActionReact     Action = "react"
	ActionFlag      Action = "flag"
	ActionDelete    Action = "delete"
	ActionAdminList Action = "admin_list"
)

// ModerationPolicy is the single authorization authority. Role checks
// in the web client are advisory only; every mutating request is
// re-decided here from the token's role claim.
type ModerationPolicy struct {
	// AllowAnonymous permits review submission without an identity.
	// Reactions, flags and admin operations always require one.
	AllowAnonymous bool
}

func NewModerationPolicy(allowAnonymous bool) *ModerationPolicy {
	return &ModerationPolicy{AllowAnonymous: allowAnonymous}
}

// Authorize returns nil when identity may perform action,
// ErrUnauthenticated when the action needs an identity and none was
// presented, and ErrForbidden when the role disallows it.
func (p *ModerationPolicy) Authorize(identity *models.Identity, action Action) error {
	switch action {
	case ActionRead:
		return nil

	case ActionCreate:
		if identity == nil && !p.AllowAnonymous {
			return ErrUnauthenticated
		}
		return nil

	case ActionReact:
		if identity == nil {
			return ErrUnauthenticated
		}
		return nil

	case ActionFlag:
		if identity == nil {
			return ErrUnauthenticated
		}
		// Admins moderate via delete; the flag is a peer-reporting
		// signal reserved for regular users.
		if identity.IsAdmin() {
			return ErrForbidden
		}
		return nil

	case ActionDelete, ActionAdminList:
		if identity == nil {
			return ErrUnauthenticated
		}
		if !identity.IsAdmin() {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}
