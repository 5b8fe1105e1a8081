package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

func (s *Store) orgRef(orgID string) *firestore.DocumentRef {
	return s.client.Collection(collectionOrganizations).Doc(orgID)
}

// CreateOrganization writes the organization and its owner roster entry
// together.
func (s *Store) CreateOrganization(ctx context.Context, org Organization, owner Member) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(s.orgRef(org.ID), org); err != nil {
			return err
		}
		return tx.Set(s.orgRef(org.ID).Collection(collectionMembers).Doc(owner.UserID), owner)
	})
}

func (s *Store) GetOrganization(ctx context.Context, orgID string) (Organization, error) {
	doc, err := s.orgRef(orgID).Get(ctx)
	if err != nil {
		return Organization{}, notFoundAs(err)
	}
	var org Organization
	if err := doc.DataTo(&org); err != nil {
		return Organization{}, err
	}
	return org, nil
}

func (s *Store) UpdateOrganization(ctx context.Context, orgID string, updates []firestore.Update) error {
	_, err := s.orgRef(orgID).Update(ctx, updates)
	return notFoundAs(err)
}

func (s *Store) DeleteOrganization(ctx context.Context, orgID string) error {
	docs, err := s.orgRef(orgID).Collection(collectionMembers).Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return err
		}
	}
	_, err = s.orgRef(orgID).Delete(ctx)
	return err
}

func (s *Store) ListOrganizationsByUser(ctx context.Context, userID string) ([]Organization, error) {
	docs, err := s.client.Collection(collectionOrganizations).
		Where("memberIds", "array-contains", userID).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	return docsTo[Organization](docs)
}

func (s *Store) ListMembers(ctx context.Context, orgID string) ([]Member, error) {
	docs, err := s.orgRef(orgID).Collection(collectionMembers).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	return docsTo[Member](docs)
}

func (s *Store) GetMember(ctx context.Context, orgID, userID string) (Member, error) {
	doc, err := s.orgRef(orgID).Collection(collectionMembers).Doc(userID).Get(ctx)
	if err != nil {
		return Member{}, notFoundAs(err)
	}
	var member Member
	if err := doc.DataTo(&member); err != nil {
		return Member{}, err
	}
	return member, nil
}

// GrantMembership adds a member to the roster transactionally. Granting
// to an existing member is a no-op, so a double-accepted invite stays
// idempotent.
func (s *Store) GrantMembership(ctx context.Context, orgID string, member Member) error {
	orgRef := s.orgRef(orgID)
	memberRef := orgRef.Collection(collectionMembers).Doc(member.UserID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(orgRef)
		if err != nil {
			return notFoundAs(err)
		}
		var org Organization
		if err := doc.DataTo(&org); err != nil {
			return err
		}

		// Check if the user already exists in the roster
		for _, id := range org.MemberIDs {
			if id == member.UserID {
				// User already has access, so return nil to indicate no update needed
				return nil
			}
		}

		updatedIDs := append(org.MemberIDs, member.UserID)
		if err := tx.Update(orgRef, []firestore.Update{
			{Path: "memberIds", Value: updatedIDs},
			{Path: "updatedAt", Value: time.Now().UTC()},
		}); err != nil {
			return err
		}
		return tx.Set(memberRef, member)
	})
}

// checkLastOwner decides whether taking the owner role away from a member
// would leave the roster without one. newRole is empty for removal.
func checkLastOwner(currentRole, newRole string, ownerCount int) error {
	if currentRole != RoleOwner || newRole == RoleOwner {
		return nil
	}
	if ownerCount <= 1 {
		return ErrLastOwner
	}
	return nil
}

func (s *Store) countOwners(tx *firestore.Transaction, orgID string) (int, error) {
	docs, err := tx.Documents(s.orgRef(orgID).Collection(collectionMembers).
		Where("role", "==", RoleOwner)).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// UpdateMemberRole changes a roster entry's role. Demoting the only
// owner is refused.
func (s *Store) UpdateMemberRole(ctx context.Context, orgID, userID, role string) error {
	memberRef := s.orgRef(orgID).Collection(collectionMembers).Doc(userID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(memberRef)
		if err != nil {
			return notFoundAs(err)
		}
		var member Member
		if err := doc.DataTo(&member); err != nil {
			return err
		}
		if member.Role == RoleOwner && role != RoleOwner {
			owners, err := s.countOwners(tx, orgID)
			if err != nil {
				return err
			}
			if err := checkLastOwner(member.Role, role, owners); err != nil {
				return err
			}
		}
		return tx.Update(memberRef, []firestore.Update{
			{Path: "role", Value: role},
		})
	})
}

// RemoveMember drops a roster entry and the matching memberIds element.
// Removing the only owner is refused.
func (s *Store) RemoveMember(ctx context.Context, orgID, userID string) error {
	orgRef := s.orgRef(orgID)
	memberRef := orgRef.Collection(collectionMembers).Doc(userID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orgDoc, err := tx.Get(orgRef)
		if err != nil {
			return notFoundAs(err)
		}
		memberDoc, err := tx.Get(memberRef)
		if err != nil {
			return notFoundAs(err)
		}
		var org Organization
		if err := orgDoc.DataTo(&org); err != nil {
			return err
		}
		var member Member
		if err := memberDoc.DataTo(&member); err != nil {
			return err
		}
		if member.Role == RoleOwner {
			owners, err := s.countOwners(tx, orgID)
			if err != nil {
				return err
			}
			if err := checkLastOwner(member.Role, "", owners); err != nil {
				return err
			}
		}

		remaining := make([]string, 0, len(org.MemberIDs))
		for _, id := range org.MemberIDs {
			if id != userID {
				remaining = append(remaining, id)
			}
		}
		if err := tx.Update(orgRef, []firestore.Update{
			{Path: "memberIds", Value: remaining},
			{Path: "updatedAt", Value: time.Now().UTC()},
		}); err != nil {
			return err
		}
		return tx.Delete(memberRef)
	})
}

func (s *Store) CreateInvite(ctx context.Context, invite Invite) error {
	_, err := s.client.Collection(collectionInvites).Doc(invite.ID).Set(ctx, invite)
	return err
}

func (s *Store) GetInvite(ctx context.Context, inviteID string) (Invite, error) {
	doc, err := s.client.Collection(collectionInvites).Doc(inviteID).Get(ctx)
	if err != nil {
		return Invite{}, notFoundAs(err)
	}
	var invite Invite
	if err := doc.DataTo(&invite); err != nil {
		return Invite{}, err
	}
	return invite, nil
}

func (s *Store) UpdateInviteStatus(ctx context.Context, inviteID, status string) error {
	_, err := s.client.Collection(collectionInvites).Doc(inviteID).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
	})
	return notFoundAs(err)
}
