package organizations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gatherly/event-hub/repos/store"
)

func TestValidRole(t *testing.T) {
	assert.True(t, validRole(store.RoleOwner))
	assert.True(t, validRole(store.RoleAdmin))
	assert.True(t, validRole(store.RoleMember))
	assert.False(t, validRole("superuser"))
	assert.False(t, validRole(""))
}

func TestCanManage(t *testing.T) {
	assert.True(t, canManage(store.RoleOwner))
	assert.True(t, canManage(store.RoleAdmin))
	assert.False(t, canManage(store.RoleMember))
}

func TestCreateOrgRequestValidate(t *testing.T) {
	assert.Nil(t, CreateOrgRequest{Name: "Gather Co"}.validate())
	assert.ErrorIs(t, CreateOrgRequest{}.validate(), ErrNameRequired)
}

func TestInviteRequestValidate(t *testing.T) {
	assert.Nil(t, InviteRequest{Email: "a@b.c", Role: store.RoleMember}.validate())
	assert.ErrorIs(t, InviteRequest{Role: store.RoleMember}.validate(), ErrEmailRequired)
	assert.ErrorIs(t, InviteRequest{Email: "a@b.c", Role: "boss"}.validate(), ErrInvalidRole)
}

func TestInviteUsable(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	invite := store.Invite{
		OrganizationID: "org1",
		Status:         store.InvitePending,
		ExpiresAt:      now.Add(24 * time.Hour),
	}

	assert.Nil(t, inviteUsable(invite, "org1", now))

	wrongOrg := invite
	assert.ErrorIs(t, inviteUsable(wrongOrg, "org2", now), ErrInvalidInvite,
		"code pointing at a different org should fail")

	accepted := invite
	accepted.Status = store.InviteAccepted
	assert.ErrorIs(t, inviteUsable(accepted, "org1", now), ErrInvalidInvite)

	expired := invite
	expired.ExpiresAt = now.Add(-time.Minute)
	assert.ErrorIs(t, inviteUsable(expired, "org1", now), ErrInvalidInvite)

	noExpiry := invite
	noExpiry.ExpiresAt = time.Time{}
	assert.Nil(t, inviteUsable(noExpiry, "org1", now), "zero expiry never lapses")
}

func TestReacceptNoop(t *testing.T) {
	accepted := store.Invite{
		OrganizationID: "org1",
		Status:         store.InviteAccepted,
	}

	assert.True(t, reacceptNoop(accepted, "org1", true),
		"a member resubmitting their own spent code should no-op")
	assert.False(t, reacceptNoop(accepted, "org1", false),
		"non-members cannot ride a spent code")
	assert.False(t, reacceptNoop(accepted, "org2", true),
		"membership in another org does not count")
}
