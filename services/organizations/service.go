package organizations

import (
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/samborkent/uuidv7"

	"github.com/gatherly/event-hub/pkg/inviteCode"
	"github.com/gatherly/event-hub/pkg/listops"
	"github.com/gatherly/event-hub/repos/resend"
	"github.com/gatherly/event-hub/repos/store"
)

const inviteTTL = 14 * 24 * time.Hour

type OrganizationsService struct {
	store         *store.Store
	resendService *resend.Service
}

func NewOrganizationsService(st *store.Store, resendService *resend.Service) *OrganizationsService {
	return &OrganizationsService{
		store:         st,
		resendService: resendService,
	}
}

// ListOrganizations returns the caller's organizations with search, sort
// and pagination.
func (s *OrganizationsService) ListOrganizations(c *gin.Context, userID, q, sortKey string, page, pageSize int) ([]store.Organization, error) {
	orgs, err := s.store.ListOrganizationsByUser(c, userID)
	if err != nil {
		log.Printf("Failed to list organizations from Firestore: %v\n", err)
		return nil, err
	}

	orgs = listops.Filter(orgs, q, func(o store.Organization) string {
		return o.Name + " " + o.Description
	})

	var primary func(a, b store.Organization) int
	switch sortKey {
	case "createdAt":
		primary = func(a, b store.Organization) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default: // name
		primary = func(a, b store.Organization) int { return strings.Compare(a.Name, b.Name) }
	}
	listops.SortBy(orgs,
		primary,
		func(a, b store.Organization) int { return strings.Compare(a.ID, b.ID) },
	)

	return listops.Paginate(orgs, page, pageSize), nil
}

// CreateOrganization creates the organization with the caller as owner.
func (s *OrganizationsService) CreateOrganization(c *gin.Context, userID, userEmail, userName string, request CreateOrgRequest) (store.Organization, error) {
	if err := request.validate(); err != nil {
		return store.Organization{}, err
	}

	now := time.Now().UTC()
	org := store.Organization{
		ID:          uuidv7.New().String(),
		Name:        request.Name,
		Description: request.Description,
		Avatar:      request.Avatar,
		OwnerID:     userID,
		MemberIDs:   []string{userID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	owner := store.Member{
		UserID:  userID,
		Email:   userEmail,
		Name:    userName,
		Role:    store.RoleOwner,
		AddedAt: now,
	}
	if err := s.store.CreateOrganization(c, org, owner); err != nil {
		log.Printf("Failed to write organization to Firestore: %v\n", err)
		return store.Organization{}, err
	}
	return org, nil
}

func (s *OrganizationsService) GetOrganization(c *gin.Context, userID, orgID string) (store.Organization, error) {
	org, err := s.store.GetOrganization(c, orgID)
	if err != nil {
		return store.Organization{}, err
	}
	if _, err := s.requireMember(c, orgID, userID); err != nil {
		return store.Organization{}, err
	}
	return org, nil
}

func (s *OrganizationsService) UpdateOrganization(c *gin.Context, userID, orgID string, request UpdateOrgRequest) (store.Organization, error) {
	if err := request.validate(); err != nil {
		return store.Organization{}, err
	}
	member, err := s.requireMember(c, orgID, userID)
	if err != nil {
		return store.Organization{}, err
	}
	if !canManage(member.Role) {
		return store.Organization{}, ErrForbidden
	}

	updates := []firestore.Update{
		{Path: "updatedAt", Value: time.Now().UTC()},
	}
	if request.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *request.Name})
	}
	if request.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *request.Description})
	}
	if request.Avatar != nil {
		updates = append(updates, firestore.Update{Path: "avatar", Value: *request.Avatar})
	}

	if err := s.store.UpdateOrganization(c, orgID, updates); err != nil {
		log.Printf("Failed to update organization in Firestore: %v\n", err)
		return store.Organization{}, err
	}
	return s.store.GetOrganization(c, orgID)
}

// DeleteOrganization removes the organization and its roster. Owner only.
func (s *OrganizationsService) DeleteOrganization(c *gin.Context, userID, orgID string) error {
	member, err := s.requireMember(c, orgID, userID)
	if err != nil {
		return err
	}
	if member.Role != store.RoleOwner {
		return ErrForbidden
	}
	return s.store.DeleteOrganization(c, orgID)
}

func (s *OrganizationsService) ListTeam(c *gin.Context, userID, orgID string) ([]store.Member, error) {
	if _, err := s.requireMember(c, orgID, userID); err != nil {
		return nil, err
	}

	members, err := s.store.ListMembers(c, orgID)
	if err != nil {
		log.Printf("Failed to list members from Firestore: %v\n", err)
		return nil, err
	}

	listops.SortBy(members,
		func(a, b store.Member) int { return strings.Compare(a.Name, b.Name) },
		func(a, b store.Member) int { return strings.Compare(a.UserID, b.UserID) },
	)
	return members, nil
}

func (s *OrganizationsService) GetMember(c *gin.Context, userID, orgID, memberID string) (store.Member, error) {
	if _, err := s.requireMember(c, orgID, userID); err != nil {
		return store.Member{}, err
	}
	return s.store.GetMember(c, orgID, memberID)
}

// UpdateMemberRole changes a roster entry's role. Owner/admin only; the
// store refuses to demote the last owner.
func (s *OrganizationsService) UpdateMemberRole(c *gin.Context, userID, orgID, memberID, role string) (store.Member, error) {
	if !validRole(role) {
		return store.Member{}, ErrInvalidRole
	}
	caller, err := s.requireMember(c, orgID, userID)
	if err != nil {
		return store.Member{}, err
	}
	if !canManage(caller.Role) {
		return store.Member{}, ErrForbidden
	}

	if err := s.store.UpdateMemberRole(c, orgID, memberID, role); err != nil {
		return store.Member{}, err
	}
	return s.store.GetMember(c, orgID, memberID)
}

// RemoveMember drops a roster entry. Owner/admin may remove anyone;
// everyone may remove themselves (leave).
func (s *OrganizationsService) RemoveMember(c *gin.Context, userID, orgID, memberID string) error {
	caller, err := s.requireMember(c, orgID, userID)
	if err != nil {
		return err
	}
	if !canManage(caller.Role) && userID != memberID {
		return ErrForbidden
	}
	return s.store.RemoveMember(c, orgID, memberID)
}

// Invite emails an invitation with a one-time code. Owner/admin only.
func (s *OrganizationsService) Invite(c *gin.Context, userID, orgID string, request InviteRequest) error {
	if err := request.validate(); err != nil {
		return err
	}
	caller, err := s.requireMember(c, orgID, userID)
	if err != nil {
		return err
	}
	if !canManage(caller.Role) {
		return ErrForbidden
	}

	org, err := s.store.GetOrganization(c, orgID)
	if err != nil {
		return err
	}

	invite := store.Invite{
		ID:             inviteCode.NewSecret(),
		OrganizationID: orgID,
		Email:          request.Email,
		Role:           request.Role,
		InviterID:      userID,
		Status:         store.InvitePending,
		ExpiresAt:      time.Now().UTC().Add(inviteTTL),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.CreateInvite(c, invite); err != nil {
		log.Printf("Failed to write invite to Firestore: %v\n", err)
		return err
	}

	code := inviteCode.GenerateCode(orgID, invite.ID)
	return s.resendService.SendInviteMail(c, resend.InviteRequest{
		OrganizationID:   orgID,
		OrganizationName: org.Name,
		Email:            request.Email,
		Role:             request.Role,
	}, code)
}

// AcceptInvite decodes the code, checks the invite and grants roster
// membership. Accepting twice is a no-op.
func (s *OrganizationsService) AcceptInvite(c *gin.Context, userID, userEmail, userName, code string) (store.Organization, error) {
	orgID, secret, err := inviteCode.Decode(code)
	if err != nil {
		return store.Organization{}, ErrInvalidInvite
	}

	invite, err := s.store.GetInvite(c, secret)
	if err != nil {
		if store.IsNotFound(err) {
			return store.Organization{}, ErrInvalidInvite
		}
		return store.Organization{}, err
	}
	if err := inviteUsable(invite, orgID, time.Now().UTC()); err != nil {
		// A spent code resubmitted by someone already on the roster is a no-op.
		if _, merr := s.store.GetMember(c, orgID, userID); reacceptNoop(invite, orgID, merr == nil) {
			return s.store.GetOrganization(c, orgID)
		}
		return store.Organization{}, err
	}

	member := store.Member{
		UserID:  userID,
		Email:   userEmail,
		Name:    userName,
		Role:    invite.Role,
		AddedAt: time.Now().UTC(),
	}
	if err := s.store.GrantMembership(c, orgID, member); err != nil {
		log.Printf("Failed to grant membership: %v\n", err)
		return store.Organization{}, err
	}

	if err := s.store.UpdateInviteStatus(c, invite.ID, store.InviteAccepted); err != nil {
		log.Printf("Failed to mark invite accepted: %v\n", err)
	}

	return s.store.GetOrganization(c, orgID)
}

func (s *OrganizationsService) requireMember(c *gin.Context, orgID, userID string) (store.Member, error) {
	member, err := s.store.GetMember(c, orgID, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return store.Member{}, ErrNotMember
		}
		return store.Member{}, err
	}
	return member, nil
}
