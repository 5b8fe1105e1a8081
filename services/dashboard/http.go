package dashboard

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/event-hub/pkg/auth"
	"github.com/gatherly/event-hub/repos/store"
)

const (
	defaultUpcomingLimit = 5
	maxUpcomingLimit     = 50
	defaultChartBuckets  = 7
	maxChartBuckets      = 90
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Dashboard is the interface for the dashboard service.
type Dashboard interface {
	UpcomingEvents(c *gin.Context, userID string, limit int) ([]store.Event, error)
	TicketMetrics(c *gin.Context, userID string, eventIDs []string) ([]EventTicketMetrics, error)
	RevenueChart(c *gin.Context, userID, eventID string, from, to time.Time, buckets int) (RevenueChartResponse, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Dashboard

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/upcoming-events", h.upcomingEventsHandler)
	r.GET("/metrics/tickets", h.ticketMetricsHandler)
	r.GET("/revenue-chart/:event_id", h.revenueChartHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) upcomingEventsHandler(c *gin.Context) {
	limit := defaultUpcomingLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			c.Abort()
			return
		}
		limit = n
	}
	if limit > maxUpcomingLimit {
		limit = maxUpcomingLimit
	}

	events, err := h.Service.UpcomingEvents(c, auth.UserID(c), limit)
	if err != nil {
		log.Printf("Could not list upcoming events: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	if events == nil {
		events = []store.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *httpHandler) ticketMetricsHandler(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("eventIds"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventIds is required"})
		c.Abort()
		return
	}

	var eventIDs []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			eventIDs = append(eventIDs, id)
		}
	}
	if len(eventIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventIds is required"})
		c.Abort()
		return
	}

	metrics, err := h.Service.TicketMetrics(c, auth.UserID(c), eventIDs)
	if err != nil {
		log.Printf("Could not compute ticket metrics: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

func (h *httpHandler) revenueChartHandler(c *gin.Context) {
	eventID := c.Param("event_id")

	to := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	from := to.AddDate(0, 0, -30)
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
			c.Abort()
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
			c.Abort()
			return
		}
	}

	buckets := defaultChartBuckets
	if raw := c.Query("buckets"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid buckets"})
			c.Abort()
			return
		}
		buckets = n
	}
	if buckets > maxChartBuckets {
		buckets = maxChartBuckets
	}

	resp, err := h.Service.RevenueChart(c, auth.UserID(c), eventID, from, to, buckets)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotMember):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case store.IsNotFound(err):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		default:
			log.Printf("Could not build revenue chart: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, resp)
}
