package friends

import (
	"errors"
	"log"
	"net/http"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/gatherly/event-hub/pkg/auth"
	"github.com/gatherly/event-hub/pkg/listops"
	"github.com/gatherly/event-hub/repos/store"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Friends is the interface for the friends service.
type Friends interface {
	ListFriends(c *gin.Context, userID, q string, page, pageSize int) ([]Friend, error)
	ListRequests(c *gin.Context, userID string) ([]store.FriendRequest, error)
	SendRequest(c *gin.Context, userID, userName, userEmail string, request SendRequestRequest) (store.FriendRequest, error)
	AcceptRequest(c *gin.Context, userID, userName, requestID string) (Friend, error)
	DeclineRequest(c *gin.Context, userID, requestID string) error
	Unfriend(c *gin.Context, userID, friendID string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Friends

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/", h.listFriendsHandler)
	r.GET("/requests", h.listRequestsHandler)
	r.POST("/requests", h.sendRequestHandler)
	r.POST("/requests/:request_id/accept", h.acceptRequestHandler)
	r.POST("/requests/:request_id/decline", h.declineRequestHandler)
	r.DELETE("/:friend_id", h.unfriendHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTargetRequired), errors.Is(err, ErrSelfRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotRecipient):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrUserNotFound), store.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrAlreadyFriends),
		errors.Is(err, ErrRequestPending),
		errors.Is(err, ErrRequestClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Friends request failed: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
	c.Abort()
}

func tokenClaim(c *gin.Context, claim string) string {
	token, ok := c.MustGet("token").(*fbauth.Token)
	if !ok {
		return ""
	}
	if value, ok := token.Claims[claim].(string); ok {
		return value
	}
	return ""
}

func (h *httpHandler) listFriendsHandler(c *gin.Context) {
	page, pageSize := listops.ParsePage(c.Query("page"), c.Query("pageSize"))

	friends, err := h.Service.ListFriends(c, auth.UserID(c), c.Query("q"), page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if friends == nil {
		friends = []Friend{}
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends, "page": page, "pageSize": pageSize})
}

func (h *httpHandler) listRequestsHandler(c *gin.Context) {
	requests, err := h.Service.ListRequests(c, auth.UserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if requests == nil {
		requests = []store.FriendRequest{}
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (h *httpHandler) sendRequestHandler(c *gin.Context) {
	var request SendRequestRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	req, err := h.Service.SendRequest(c, auth.UserID(c), tokenClaim(c, "name"), tokenClaim(c, "email"), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *httpHandler) acceptRequestHandler(c *gin.Context) {
	friend, err := h.Service.AcceptRequest(c, auth.UserID(c), tokenClaim(c, "name"), c.Param("request_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, friend)
}

func (h *httpHandler) declineRequestHandler(c *gin.Context) {
	if err := h.Service.DeclineRequest(c, auth.UserID(c), c.Param("request_id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request declined"})
}

func (h *httpHandler) unfriendHandler(c *gin.Context) {
	if err := h.Service.Unfriend(c, auth.UserID(c), c.Param("friend_id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}
