package friends

import (
	"context"
	"log"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/samborkent/uuidv7"

	"github.com/gatherly/event-hub/pkg/listops"
	"github.com/gatherly/event-hub/repos/resend"
	"github.com/gatherly/event-hub/repos/store"
)

type FriendsService struct {
	store         *store.Store
	firebaseApp   *firebase.App
	resendService *resend.Service
}

func NewFriendsService(st *store.Store, firebaseApp *firebase.App, resendService *resend.Service) *FriendsService {
	return &FriendsService{
		store:         st,
		firebaseApp:   firebaseApp,
		resendService: resendService,
	}
}

// ListFriends returns the caller's friends with search and pagination.
func (s *FriendsService) ListFriends(c *gin.Context, userID, q string, page, pageSize int) ([]Friend, error) {
	edges, err := s.store.ListFriendshipsByUser(c, userID)
	if err != nil {
		log.Printf("Failed to list friendships from Firestore: %v\n", err)
		return nil, err
	}

	friends := make([]Friend, 0, len(edges))
	for _, edge := range edges {
		friends = append(friends, otherSide(edge, userID))
	}

	friends = listops.Filter(friends, q, func(f Friend) string {
		return f.Name + " " + f.Email
	})
	listops.SortBy(friends,
		func(a, b Friend) int { return strings.Compare(a.Name, b.Name) },
		func(a, b Friend) int { return strings.Compare(a.UserID, b.UserID) },
	)
	return listops.Paginate(friends, page, pageSize), nil
}

// ListRequests returns the caller's incoming pending requests.
func (s *FriendsService) ListRequests(c *gin.Context, userID string) ([]store.FriendRequest, error) {
	requests, err := s.store.ListPendingRequestsTo(c, userID)
	if err != nil {
		log.Printf("Failed to list friend requests from Firestore: %v\n", err)
		return nil, err
	}
	listops.SortBy(requests,
		func(a, b store.FriendRequest) int { return a.CreatedAt.Compare(b.CreatedAt) },
	)
	return requests, nil
}

// SendRequest opens a friend request towards a user picked by uid or
// email, and notifies them by mail.
func (s *FriendsService) SendRequest(c *gin.Context, userID, userName, userEmail string, request SendRequestRequest) (store.FriendRequest, error) {
	if err := request.validate(); err != nil {
		return store.FriendRequest{}, err
	}

	toID, toEmail, err := s.resolveTarget(c, request)
	if err != nil {
		return store.FriendRequest{}, err
	}
	if toID == userID {
		return store.FriendRequest{}, ErrSelfRequest
	}

	if _, err := s.store.GetFriendship(c, store.PairKey(userID, toID)); err == nil {
		return store.FriendRequest{}, ErrAlreadyFriends
	} else if !store.IsNotFound(err) {
		return store.FriendRequest{}, err
	}

	pending, err := s.store.HasPendingRequestBetween(c, userID, toID)
	if err != nil {
		return store.FriendRequest{}, err
	}
	if pending {
		return store.FriendRequest{}, ErrRequestPending
	}

	now := time.Now().UTC()
	req := store.FriendRequest{
		ID:        uuidv7.New().String(),
		FromID:    userID,
		FromName:  userName,
		FromEmail: userEmail,
		ToID:      toID,
		ToEmail:   toEmail,
		Status:    store.InvitePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateFriendRequest(c, req); err != nil {
		log.Printf("Failed to write friend request to Firestore: %v\n", err)
		return store.FriendRequest{}, err
	}

	go s.resendService.SendFriendRequestMail(context.Background(), resend.FriendNotice{
		ToEmail:  toEmail,
		FromName: userName,
	})

	return req, nil
}

// AcceptRequest turns a pending request into a friendship edge. Only the
// recipient may accept.
func (s *FriendsService) AcceptRequest(c *gin.Context, userID, userName, requestID string) (Friend, error) {
	req, err := s.store.GetFriendRequest(c, requestID)
	if err != nil {
		return Friend{}, err
	}
	if req.ToID != userID {
		return Friend{}, ErrNotRecipient
	}
	if req.Status != store.InvitePending {
		return Friend{}, ErrRequestClosed
	}

	edge := buildFriendship(req, userName, time.Now().UTC())
	if err := s.store.CreateFriendship(c, edge); err != nil {
		log.Printf("Failed to write friendship to Firestore: %v\n", err)
		return Friend{}, err
	}
	if err := s.store.UpdateFriendRequestStatus(c, requestID, store.InviteAccepted); err != nil {
		log.Printf("Failed to mark friend request accepted: %v\n", err)
	}

	return otherSide(edge, userID), nil
}

// DeclineRequest closes a pending request. Only the recipient may
// decline.
func (s *FriendsService) DeclineRequest(c *gin.Context, userID, requestID string) error {
	req, err := s.store.GetFriendRequest(c, requestID)
	if err != nil {
		return err
	}
	if req.ToID != userID {
		return ErrNotRecipient
	}
	if req.Status != store.InvitePending {
		return ErrRequestClosed
	}
	return s.store.UpdateFriendRequestStatus(c, requestID, store.InviteDeclined)
}

// Unfriend removes the edge between the caller and a friend.
func (s *FriendsService) Unfriend(c *gin.Context, userID, friendID string) error {
	key := store.PairKey(userID, friendID)
	if _, err := s.store.GetFriendship(c, key); err != nil {
		return err
	}
	return s.store.DeleteFriendship(c, key)
}

// resolveTarget finds the target user, preferring an explicit uid and
// falling back to a Firebase email lookup.
func (s *FriendsService) resolveTarget(c *gin.Context, request SendRequestRequest) (uid, email string, err error) {
	authClient, err := s.firebaseApp.Auth(c)
	if err != nil {
		return "", "", err
	}

	if request.UserID != "" {
		user, err := authClient.GetUser(c, request.UserID)
		if err != nil {
			log.Printf("Failed to look up user %s: %v\n", request.UserID, err)
			return "", "", ErrUserNotFound
		}
		return user.UID, user.Email, nil
	}

	user, err := authClient.GetUserByEmail(c, request.Email)
	if err != nil {
		log.Printf("Failed to look up user by email: %v\n", err)
		return "", "", ErrUserNotFound
	}
	return user.UID, user.Email, nil
}
