package payments

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/event-hub/pkg/auth"
	payments "github.com/gatherly/event-hub/repos/payments"
	"github.com/gatherly/event-hub/repos/store"
)

var ErrNotMember = errors.New("not a member of the organization")

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Payments is the interface for the payments sync service.
type Payments interface {
	SyncCharges(c *gin.Context, userID, orgID string, force bool) error
	SyncStatus(c *gin.Context, userID, orgID string) (payments.SyncStatus, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Payments

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/sync/:org_id", h.syncChargesHandler)
	r.GET("/status/:org_id", h.syncStatusHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) syncChargesHandler(c *gin.Context) {
	orgID := c.Param("org_id")

	// Parse the URL query parameters
	forceParam := c.Query("force")
	if forceParam != "" {
		fmt.Printf("The 'force' parameter value is: %s\n", forceParam)
	}

	err := h.Service.SyncCharges(c, auth.UserID(c), orgID, forceParam == "true")
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			c.Abort()
			return
		}
		log.Printf("Could not sync charges: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
}

func (h *httpHandler) syncStatusHandler(c *gin.Context) {
	status, err := h.Service.SyncStatus(c, auth.UserID(c), c.Param("org_id"))
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			c.Abort()
			return
		}
		log.Printf("Could not get sync status: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, status)
}
