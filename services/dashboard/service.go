package dashboard

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/event-hub/pkg/chart"
	"github.com/gatherly/event-hub/pkg/listops"
	timehelper "github.com/gatherly/event-hub/pkg/timeHelper"
	"github.com/gatherly/event-hub/repos/store"
)

var ErrNotMember = errors.New("not a member of the organization")

type DashboardService struct {
	store *store.Store
}

func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{
		store: st,
	}
}

// UpcomingEvents returns the caller's next events, soonest first.
func (s *DashboardService) UpcomingEvents(c *gin.Context, userID string, limit int) ([]store.Event, error) {
	events, err := s.callerEvents(c, userID)
	if err != nil {
		return nil, err
	}

	today := timehelper.GetTodaysDateString()
	upcoming := make([]store.Event, 0, len(events))
	for _, event := range events {
		if event.StartDate >= today {
			upcoming = append(upcoming, event)
		}
	}

	listops.SortBy(upcoming,
		func(a, b store.Event) int { return strings.Compare(a.StartDate, b.StartDate) },
		func(a, b store.Event) int { return strings.Compare(a.Name, b.Name) },
		func(a, b store.Event) int { return strings.Compare(a.ID, b.ID) },
	)
	return listops.Paginate(upcoming, 1, limit), nil
}

// TicketMetrics computes per-event sold/paid counts and revenue for the
// requested events. IDs outside the caller's organizations come back as
// zero rows rather than an error.
func (s *DashboardService) TicketMetrics(c *gin.Context, userID string, eventIDs []string) ([]EventTicketMetrics, error) {
	events, err := s.callerEvents(c, userID)
	if err != nil {
		return nil, err
	}

	visible := make(map[string]bool, len(events))
	for _, event := range events {
		visible[event.ID] = true
	}

	var queryIDs []string
	for _, id := range eventIDs {
		if visible[id] {
			queryIDs = append(queryIDs, id)
		}
	}

	var tickets []store.Ticket
	if len(queryIDs) > 0 {
		tickets, err = s.store.ListTicketsByEvents(c, queryIDs)
		if err != nil {
			log.Printf("Failed to list tickets from Firestore: %v\n", err)
			return nil, err
		}
	}

	return AggregateTicketMetrics(eventIDs, tickets), nil
}

// RevenueChart buckets an event's paid revenue over a date range and
// attaches the tick scale for the chart's Y axis.
func (s *DashboardService) RevenueChart(c *gin.Context, userID, eventID string, from, to time.Time, bucketCount int) (RevenueChartResponse, error) {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return RevenueChartResponse{}, err
	}

	if _, err := s.store.GetMember(c, event.OrganizationID, userID); err != nil {
		if store.IsNotFound(err) {
			return RevenueChartResponse{}, ErrNotMember
		}
		return RevenueChartResponse{}, err
	}

	tickets, err := s.store.ListTicketsByEvent(c, eventID)
	if err != nil {
		log.Printf("Failed to list tickets from Firestore: %v\n", err)
		return RevenueChartResponse{}, err
	}

	var points []chart.Point
	for _, ticket := range tickets {
		if ticket.Status != store.TicketPaid || ticket.PaidAt == nil {
			continue
		}
		points = append(points, chart.Point{At: *ticket.PaidAt, Value: TicketAmount(ticket)})
	}

	buckets := chart.Buckets(from, to, bucketCount)
	values := chart.Assign(buckets, points)

	maxValue := 0.0
	for _, v := range values {
		if v > maxValue {
			maxValue = v
		}
	}

	return RevenueChartResponse{
		EventID: eventID,
		Buckets: buckets,
		Values:  values,
		Scale:   chart.TickScale(maxValue, 4),
	}, nil
}

func (s *DashboardService) callerEvents(c *gin.Context, userID string) ([]store.Event, error) {
	orgs, err := s.store.ListOrganizationsByUser(c, userID)
	if err != nil {
		log.Printf("Failed to list organizations from Firestore: %v\n", err)
		return nil, err
	}
	if len(orgs) == 0 {
		return nil, nil
	}

	orgIDs := make([]string, 0, len(orgs))
	for _, org := range orgs {
		orgIDs = append(orgIDs, org.ID)
	}

	events, err := s.store.ListEventsByOrgs(c, orgIDs)
	if err != nil {
		log.Printf("Failed to list events from Firestore: %v\n", err)
		return nil, err
	}
	return events, nil
}

// AggregateTicketMetrics groups tickets by event and sums paid revenue.
// Every requested ID gets a row, in request order.
func AggregateTicketMetrics(eventIDs []string, tickets []store.Ticket) []EventTicketMetrics {
	byEvent := make(map[string]*EventTicketMetrics, len(eventIDs))
	rows := make([]EventTicketMetrics, 0, len(eventIDs))
	for _, id := range eventIDs {
		if _, ok := byEvent[id]; ok {
			continue
		}
		rows = append(rows, EventTicketMetrics{EventID: id})
		byEvent[id] = &rows[len(rows)-1]
	}

	for _, ticket := range tickets {
		row, ok := byEvent[ticket.EventID]
		if !ok {
			continue
		}
		if ticket.Status == store.TicketCancelled {
			continue
		}
		row.TicketsSold++
		if ticket.Status == store.TicketPaid {
			row.TicketsPaid++
			row.Revenue += TicketAmount(ticket)
		}
	}
	return rows
}

// TicketAmount coalesces a ticket's amount fields: the decimal amount,
// then the tier price, then legacy cents. Malformed values count as zero.
func TicketAmount(ticket store.Ticket) float64 {
	if ticket.Amount != nil && *ticket.Amount >= 0 {
		return *ticket.Amount
	}
	if ticket.Price != nil && *ticket.Price >= 0 {
		return *ticket.Price
	}
	if ticket.AmountCents != nil && *ticket.AmountCents >= 0 {
		return float64(*ticket.AmountCents) / 100
	}
	return 0
}
