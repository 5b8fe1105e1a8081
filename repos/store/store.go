// Package store is the typed Firestore access layer shared by the
// services.
package store

import (
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrSoldOut             = errors.New("ticket type sold out")
	ErrQuantityBelowIssued = errors.New("quantity below issued count")
	ErrLastOwner           = errors.New("organization needs at least one owner")
	ErrAlreadyPaid         = errors.New("ticket already paid")
)

const (
	collectionEvents        = "Events"
	collectionTicketTypes   = "TicketTypes"
	collectionTickets       = "Tickets"
	collectionOrganizations = "Organizations"
	collectionMembers       = "Members"
	collectionInvites       = "Invites"
	collectionFriendReqs    = "FriendRequests"
	collectionFriendships   = "Friendships"
)

// Store wraps the Firestore client with typed collection access.
type Store struct {
	client *firestore.Client
}

// New creates a new store on top of the given Firestore client.
func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || status.Code(err) == codes.NotFound
}

func notFoundAs(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func docsTo[T any](docs []*firestore.DocumentSnapshot) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := doc.DataTo(&v); err != nil {
			// If this fails, we have an inconsistency error as we control both
			// the data written to Firestore and the shape of our structs.
			return nil, fmt.Errorf("consistency error. Converting %s failed: %w", doc.Ref.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// chunk splits ids into groups small enough for a Firestore "in" filter.
func chunk(ids []string, size int) [][]string {
	var out [][]string
	for len(ids) > size {
		out = append(out, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		out = append(out, ids)
	}
	return out
}
