package friends

import (
	"errors"
	"time"

	"github.com/gatherly/event-hub/repos/store"
)

var (
	ErrSelfRequest    = errors.New("cannot send a friend request to yourself")
	ErrTargetRequired = errors.New("email or userId is required")
	ErrUserNotFound   = errors.New("no user with that email")
	ErrAlreadyFriends = errors.New("already friends")
	ErrRequestPending = errors.New("a request is already pending")
	ErrNotRecipient   = errors.New("only the recipient may answer a request")
	ErrRequestClosed  = errors.New("request already answered")
)

// SendRequestRequest targets a user by uid or, failing that, by email.
type SendRequestRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (r SendRequestRequest) validate() error {
	if r.UserID == "" && r.Email == "" {
		return ErrTargetRequired
	}
	return nil
}

// Friend is one row of the friend list: the other side of an edge.
type Friend struct {
	UserID string    `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Since  time.Time `json:"since"`
}

// otherSide returns the friend-list row for the edge as seen by userID.
func otherSide(f store.Friendship, userID string) Friend {
	if f.UserAID == userID {
		return Friend{UserID: f.UserBID, Name: f.UserBName, Email: f.UserBEmail, Since: f.CreatedAt}
	}
	return Friend{UserID: f.UserAID, Name: f.UserAName, Email: f.UserAEmail, Since: f.CreatedAt}
}

// buildFriendship turns an accepted request into the canonical edge
// document, with the lower uid on the A side.
func buildFriendship(req store.FriendRequest, toName string, now time.Time) store.Friendship {
	aID, aName, aEmail := req.FromID, req.FromName, req.FromEmail
	bID, bName, bEmail := req.ToID, toName, req.ToEmail
	if bID < aID {
		aID, bID = bID, aID
		aName, bName = bName, aName
		aEmail, bEmail = bEmail, aEmail
	}
	return store.Friendship{
		ID:         store.PairKey(req.FromID, req.ToID),
		UserIDs:    []string{aID, bID},
		UserAID:    aID,
		UserAName:  aName,
		UserAEmail: aEmail,
		UserBID:    bID,
		UserBName:  bName,
		UserBEmail: bEmail,
		CreatedAt:  now,
	}
}
