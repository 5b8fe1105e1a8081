package friends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gatherly/event-hub/repos/store"
)

func TestSendRequestRequestValidate(t *testing.T) {
	assert.Nil(t, SendRequestRequest{Email: "a@b.c"}.validate())
	assert.Nil(t, SendRequestRequest{UserID: "u1"}.validate())
	assert.ErrorIs(t, SendRequestRequest{}.validate(), ErrTargetRequired)
}

func TestBuildFriendshipCanonical(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	req := store.FriendRequest{
		FromID:    "zoe",
		FromName:  "Zoe",
		FromEmail: "zoe@example.com",
		ToID:      "adam",
		ToEmail:   "adam@example.com",
	}

	edge := buildFriendship(req, "Adam", now)

	assert.Equal(t, "adam_zoe", edge.ID, "edge ID is the sorted pair")
	assert.Equal(t, "adam", edge.UserAID, "lower uid on the A side")
	assert.Equal(t, "Adam", edge.UserAName)
	assert.Equal(t, "zoe", edge.UserBID)
	assert.Equal(t, "zoe@example.com", edge.UserBEmail)
	assert.Equal(t, []string{"adam", "zoe"}, edge.UserIDs)

	// The reverse direction builds the identical edge.
	reverse := store.FriendRequest{
		FromID: "adam", FromName: "Adam", FromEmail: "adam@example.com",
		ToID: "zoe", ToEmail: "zoe@example.com",
	}
	mirrored := buildFriendship(reverse, "Zoe", now)
	assert.Equal(t, edge.ID, mirrored.ID)
	assert.Equal(t, edge.UserAID, mirrored.UserAID)
	assert.Equal(t, edge.UserBID, mirrored.UserBID)
}

func TestOtherSide(t *testing.T) {
	edge := store.Friendship{
		UserAID: "adam", UserAName: "Adam", UserAEmail: "adam@example.com",
		UserBID: "zoe", UserBName: "Zoe", UserBEmail: "zoe@example.com",
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	asAdam := otherSide(edge, "adam")
	assert.Equal(t, "zoe", asAdam.UserID)
	assert.Equal(t, "Zoe", asAdam.Name)

	asZoe := otherSide(edge, "zoe")
	assert.Equal(t, "adam", asZoe.UserID)
	assert.Equal(t, edge.CreatedAt, asZoe.Since)
}
