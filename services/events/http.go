package events

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

// Events is the interface for the events service.
type Events interface {
	Browse(c *gin.Context, q, sortKey, order string, page, pageSize int) ([]store.Event, error)
	CreateEvent(c *gin.Context, userID string, request CreateEventRequest) (store.Event, error)
	GetEvent(c *gin.Context, eventID string) (store.Event, error)
	UpdateEvent(c *gin.Context, userID, eventID string, request UpdateEventRequest) (store.Event, error)
	DeleteEvent(c *gin.Context, userID, eventID string) error
	ListTicketTypes(c *gin.Context, eventID string) ([]store.TicketType, error)
	CreateTicketType(c *gin.Context, userID, eventID string, request TicketTypeRequest) (store.TicketType, error)
	UpdateTicketType(c *gin.Context, userID, eventID, typeID string, request UpdateTicketTypeRequest) (store.TicketType, error)
	DeleteTicketType(c *gin.Context, userID, eventID, typeID string) error
	IssueTicket(c *gin.Context, userID, userEmail, eventID string, request IssueTicketRequest) (store.Ticket, error)
	GetTicket(c *gin.Context, userID, eventID, ticketID string) (store.Ticket, error)
	ListTickets(c *gin.Context, userID, eventID string) ([]store.Ticket, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Events

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler registers the authenticated event routes.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/", h.createEventHandler)
	r.GET("/:event_id", h.getEventHandler)
	r.PATCH("/:event_id", h.updateEventHandler)
	r.DELETE("/:event_id", h.deleteEventHandler)
	r.GET("/:event_id/ticket-types", h.listTicketTypesHandler)
	r.POST("/:event_id/ticket-types", h.createTicketTypeHandler)
	r.PATCH("/:event_id/ticket-types/:type_id", h.updateTicketTypeHandler)
	r.DELETE("/:event_id/ticket-types/:type_id", h.deleteTicketTypeHandler)
	r.POST("/:event_id/tickets", h.issueTicketHandler)
	r.GET("/:event_id/tickets", h.listTicketsHandler)
	r.GET("/:event_id/tickets/:ticket_id", h.getTicketHandler)
}

// NewPublicHTTPHandler registers the unauthenticated browse route.
func NewPublicHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/", h.browseHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrInvalidSaleWindow),
		errors.Is(err, ErrInvalidAccessRule):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case store.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ErrHasPaidTickets),
		errors.Is(err, ErrSaleClosed),
		errors.Is(err, store.ErrSoldOut),
		errors.Is(err, store.ErrQuantityBelowIssued):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("Events request failed: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
	c.Abort()
}

// tokenEmail pulls the email claim off the verified Firebase token.
func tokenEmail(c *gin.Context) string {
	token, ok := c.MustGet("token").(*fbauth.Token)
	if !ok {
		return ""
	}
	if email, ok := token.Claims["email"].(string); ok {
		return email
	}
	return ""
}

func (h *httpHandler) browseHandler(c *gin.Context) {
	page, pageSize := listops.ParsePage(c.Query("page"), c.Query("pageSize"))

	events, err := h.Service.Browse(c, c.Query("q"), c.Query("sort"), c.Query("order"), page, pageSize)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if events == nil {
		events = []store.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "page": page, "pageSize": pageSize})
}

func (h *httpHandler) createEventHandler(c *gin.Context) {
	var request CreateEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	event, err := h.Service.CreateEvent(c, auth.UserID(c), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *httpHandler) getEventHandler(c *gin.Context) {
	event, err := h.Service.GetEvent(c, c.Param("event_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *httpHandler) updateEventHandler(c *gin.Context) {
	var request UpdateEventRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	event, err := h.Service.UpdateEvent(c, auth.UserID(c), c.Param("event_id"), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *httpHandler) deleteEventHandler(c *gin.Context) {
	if err := h.Service.DeleteEvent(c, auth.UserID(c), c.Param("event_id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

func (h *httpHandler) listTicketTypesHandler(c *gin.Context) {
	types, err := h.Service.ListTicketTypes(c, c.Param("event_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if types == nil {
		types = []store.TicketType{}
	}
	c.JSON(http.StatusOK, gin.H{"ticketTypes": types})
}

func (h *httpHandler) createTicketTypeHandler(c *gin.Context) {
	var request TicketTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	tt, err := h.Service.CreateTicketType(c, auth.UserID(c), c.Param("event_id"), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tt)
}

func (h *httpHandler) updateTicketTypeHandler(c *gin.Context) {
	var request UpdateTicketTypeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	tt, err := h.Service.UpdateTicketType(c, auth.UserID(c), c.Param("event_id"), c.Param("type_id"), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tt)
}

func (h *httpHandler) deleteTicketTypeHandler(c *gin.Context) {
	err := h.Service.DeleteTicketType(c, auth.UserID(c), c.Param("event_id"), c.Param("type_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket type deleted"})
}

func (h *httpHandler) issueTicketHandler(c *gin.Context) {
	var request IssueTicketRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}
	if request.TicketTypeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticketTypeId is required"})
		c.Abort()
		return
	}

	ticket, err := h.Service.IssueTicket(c, auth.UserID(c), tokenEmail(c), c.Param("event_id"), request)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *httpHandler) getTicketHandler(c *gin.Context) {
	ticket, err := h.Service.GetTicket(c, auth.UserID(c), c.Param("event_id"), c.Param("ticket_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *httpHandler) listTicketsHandler(c *gin.Context) {
	tickets, err := h.Service.ListTickets(c, auth.UserID(c), c.Param("event_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	if tickets == nil {
		tickets = []store.Ticket{}
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
