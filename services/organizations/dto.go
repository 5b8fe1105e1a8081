package organizations

import (
	"errors"
	"time"

	"github.com/gatherly/event-hub/repos/store"
)

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidRole   = errors.New("role must be owner, admin or member")
	ErrNotMember     = errors.New("not a member of the organization")
	ErrForbidden     = errors.New("insufficient role")
	ErrInvalidInvite = errors.New("not a valid invite code")
)

// CreateOrgRequest is the JSON body for creating an organization.
type CreateOrgRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

func (r CreateOrgRequest) validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// UpdateOrgRequest carries a partial update; nil fields are untouched.
type UpdateOrgRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Avatar      *string `json:"avatar"`
}

func (r UpdateOrgRequest) validate() error {
	if r.Name != nil && *r.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// InviteRequest is the JSON body for inviting someone to the roster.
type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r InviteRequest) validate() error {
	if r.Email == "" {
		return ErrEmailRequired
	}
	if !validRole(r.Role) {
		return ErrInvalidRole
	}
	return nil
}

// UpdateRoleRequest is the JSON body for changing a member's role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func validRole(role string) bool {
	switch role {
	case store.RoleOwner, store.RoleAdmin, store.RoleMember:
		return true
	}
	return false
}

// canManage reports whether a role may administer the roster.
func canManage(role string) bool {
	return role == store.RoleOwner || role == store.RoleAdmin
}

// reacceptNoop reports whether a failed usability check can be ignored
// because the caller already holds the membership the invite granted.
func reacceptNoop(invite store.Invite, orgID string, alreadyMember bool) bool {
	return alreadyMember && invite.OrganizationID == orgID
}

// inviteUsable checks that an invite belongs to the organization encoded
// in the code, is still pending, and has not lapsed.
func inviteUsable(invite store.Invite, orgID string, now time.Time) error {
	if invite.OrganizationID != orgID {
		return ErrInvalidInvite
	}
	if invite.Status != store.InvitePending {
		return ErrInvalidInvite
	}
	if !invite.ExpiresAt.IsZero() && now.After(invite.ExpiresAt) {
		return ErrInvalidInvite
	}
	return nil
}
