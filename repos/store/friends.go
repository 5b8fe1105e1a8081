package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

func (s *Store) CreateFriendRequest(ctx context.Context, req FriendRequest) error {
	_, err := s.client.Collection(collectionFriendReqs).Doc(req.ID).Set(ctx, req)
	return err
}

func (s *Store) GetFriendRequest(ctx context.Context, requestID string) (FriendRequest, error) {
	doc, err := s.client.Collection(collectionFriendReqs).Doc(requestID).Get(ctx)
	if err != nil {
		return FriendRequest{}, notFoundAs(err)
	}
	var req FriendRequest
	if err := doc.DataTo(&req); err != nil {
		return FriendRequest{}, err
	}
	return req, nil
}

func (s *Store) UpdateFriendRequestStatus(ctx context.Context, requestID, status string) error {
	_, err := s.client.Collection(collectionFriendReqs).Doc(requestID).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	return notFoundAs(err)
}

// ListPendingRequestsTo returns the pending requests addressed to a user.
func (s *Store) ListPendingRequestsTo(ctx context.Context, userID string) ([]FriendRequest, error) {
	docs, err := s.client.Collection(collectionFriendReqs).
		Where("toId", "==", userID).
		Where("status", "==", InvitePending).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	return docsTo[FriendRequest](docs)
}

// HasPendingRequestBetween checks both directions for an open request.
func (s *Store) HasPendingRequestBetween(ctx context.Context, userA, userB string) (bool, error) {
	for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
		docs, err := s.client.Collection(collectionFriendReqs).
			Where("fromId", "==", pair[0]).
			Where("toId", "==", pair[1]).
			Where("status", "==", InvitePending).
			Limit(1).
			Documents(ctx).
			GetAll()
		if err != nil {
			return false, err
		}
		if len(docs) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateFriendship(ctx context.Context, friendship Friendship) error {
	_, err := s.client.Collection(collectionFriendships).Doc(friendship.ID).Set(ctx, friendship)
	return err
}

func (s *Store) GetFriendship(ctx context.Context, pairKey string) (Friendship, error) {
	doc, err := s.client.Collection(collectionFriendships).Doc(pairKey).Get(ctx)
	if err != nil {
		return Friendship{}, notFoundAs(err)
	}
	var friendship Friendship
	if err := doc.DataTo(&friendship); err != nil {
		return Friendship{}, err
	}
	return friendship, nil
}

func (s *Store) DeleteFriendship(ctx context.Context, pairKey string) error {
	_, err := s.client.Collection(collectionFriendships).Doc(pairKey).Delete(ctx)
	return err
}

func (s *Store) ListFriendshipsByUser(ctx context.Context, userID string) ([]Friendship, error) {
	docs, err := s.client.Collection(collectionFriendships).
		Where("userIds", "array-contains", userID).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	return docsTo[Friendship](docs)
}
