package organizations

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
	PATCH(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Organizations is the interface for the organizations service.
type Organizations interface {
	ListOrganizations(c *gin.Context, userID, q, sortKey string, page, pageSize int) ([]store.Organization, error)
	CreateOrganization(c *gin.Context, userID, userEmail, userName string, request CreateOrgRequest) (store.Organization, error)
	GetOrganization(c *gin.Context, userID, orgID string) (store.Organization, error)
	UpdateOrganization(c *gin.Context, userID, orgID string, request UpdateOrgRequest) (store.Organization, error)
	DeleteOrganization(c *gin.Context, userID, orgID string) error
	ListTeam(c *gin.Context, userID, orgID string) ([]store.Member, error)
	GetMember(c *gin.Context, userID, orgID, memberID string) (store.Member, error)
	UpdateMemberRole(c *gin.Context, userID, orgID, memberID, role string) (store.Member, error)
	RemoveMember(c *gin.Context, userID, orgID, memberID string) error
	Invite(c *gin.Context, userID, orgID string, request InviteRequest) error
	AcceptInvite(c *gin.Context, userID, userEmail, userName, code string) (store.Organization, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Organizations

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler registers the organization routes.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/", h.listHandler)
	r.POST("/", h.createHandler)
	r.GET("/:org_id", h.getHandler)
	r.PATCH("/:org_id", h.updateHandler)
	r.DELETE("/:org_id", h.deleteHandler)
	r.GET("/:org_id/team", h.listTeamHandler)
	r.GET("/:org_id/team/:member_id", h.getMemberHandler)
	r.PATCH("/:org_id/team/:member_id", h.updateMemberHandler)
	r.DELETE("/:org_id/team/:member_id", h.removeMemberHandler)
	r.POST("/:org_id/invite", h.inviteHandler)
}

// NewInviteHTTPHandler registers the invite-acceptance route on its own
// group, away from the :org_id wildcard.
func NewInviteHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/:invite_code", h.acceptInviteHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrEmailRequired),
		errors.Is(err, ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotMember), errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidInvite):
		c.JSON(http.StatusForbidden, gin.H{"error": "not a valid invite code"})
	case store.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrLastOwner):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Organizations request failed: %v\n", err)
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

func (h *httpHandler) listHandler(c *gin.Context) {
	page, pageSize := listops.ParsePage(c.Query("page"), c.Query("pageSize"))

	orgs, err := h.Service.ListOrganizations(c, auth.UserID(c), c.Query("q"), c.Query("sort"), page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if orgs == nil {
		orgs = []store.Organization{}
	}
	c.JSON(http.StatusOK, gin.H{"organizations": orgs, "page": page, "pageSize": pageSize})
}

func (h *httpHandler) createHandler(c *gin.Context) {
	var request CreateOrgRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	org, err := h.Service.CreateOrganization(c, auth.UserID(c), tokenClaim(c, "email"), tokenClaim(c, "name"), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, org)
}

func (h *httpHandler) getHandler(c *gin.Context) {
	org, err := h.Service.GetOrganization(c, auth.UserID(c), c.Param("org_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *httpHandler) updateHandler(c *gin.Context) {
	var request UpdateOrgRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	org, err := h.Service.UpdateOrganization(c, auth.UserID(c), c.Param("org_id"), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *httpHandler) deleteHandler(c *gin.Context) {
	if err := h.Service.DeleteOrganization(c, auth.UserID(c), c.Param("org_id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Organization deleted"})
}

func (h *httpHandler) listTeamHandler(c *gin.Context) {
	members, err := h.Service.ListTeam(c, auth.UserID(c), c.Param("org_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if members == nil {
		members = []store.Member{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *httpHandler) getMemberHandler(c *gin.Context) {
	member, err := h.Service.GetMember(c, auth.UserID(c), c.Param("org_id"), c.Param("member_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *httpHandler) updateMemberHandler(c *gin.Context) {
	var request UpdateRoleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	member, err := h.Service.UpdateMemberRole(c, auth.UserID(c), c.Param("org_id"), c.Param("member_id"), request.Role)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *httpHandler) removeMemberHandler(c *gin.Context) {
	err := h.Service.RemoveMember(c, auth.UserID(c), c.Param("org_id"), c.Param("member_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

func (h *httpHandler) inviteHandler(c *gin.Context) {
	var request InviteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := h.Service.Invite(c, auth.UserID(c), c.Param("org_id"), request); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invite sent", "email": request.Email})
}

func (h *httpHandler) acceptInviteHandler(c *gin.Context) {
	org, err := h.Service.AcceptInvite(c, auth.UserID(c), tokenClaim(c, "email"), tokenClaim(c, "name"), c.Param("invite_code"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizationId": org.ID, "name": org.Name})
}
