package events

import (
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/samborkent/uuidv7"

	"github.com/gatherly/event-hub/pkg/listops"
	timehelper "github.com/gatherly/event-hub/pkg/timeHelper"
	"github.com/gatherly/event-hub/repos/store"
)

type EventsService struct {
	store *store.Store
}

func NewEventsService(st *store.Store) *EventsService {
	return &EventsService{
		store: st,
	}
}

// Browse lists published events with search, sort and pagination.
func (s *EventsService) Browse(c *gin.Context, q, sortKey, order string, page, pageSize int) ([]store.Event, error) {
	events, err := s.store.ListPublishedEvents(c)
	if err != nil {
		log.Printf("Failed to list events from Firestore: %v\n", err)
		return nil, err
	}

	events = listops.Filter(events, q, func(e store.Event) string {
		return e.Name + " " + e.Venue + " " + e.Description
	})

	var primary func(a, b store.Event) int
	switch sortKey {
	case "name":
		primary = func(a, b store.Event) int { return strings.Compare(a.Name, b.Name) }
	case "createdAt":
		primary = func(a, b store.Event) int { return a.CreatedAt.Compare(b.CreatedAt) }
	default: // startDate
		primary = func(a, b store.Event) int { return strings.Compare(a.StartDate, b.StartDate) }
	}
	if order == "desc" {
		primary = listops.Reverse(primary)
	}
	listops.SortBy(events,
		primary,
		func(a, b store.Event) int { return strings.Compare(a.Name, b.Name) },
		func(a, b store.Event) int { return strings.Compare(a.ID, b.ID) },
	)

	return listops.Paginate(events, page, pageSize), nil
}

func (s *EventsService) CreateEvent(c *gin.Context, userID string, request CreateEventRequest) (store.Event, error) {
	if err := request.validate(); err != nil {
		return store.Event{}, err
	}
	if err := s.requireMember(c, request.OrganizationID, userID); err != nil {
		return store.Event{}, err
	}

	now := time.Now().UTC()
	event := store.Event{
		ID:             uuidv7.New().String(),
		OrganizationID: request.OrganizationID,
		Name:           request.Name,
		Description:    request.Description,
		Venue:          request.Venue,
		StartDate:      request.StartDate,
		EndDate:        request.EndDate,
		Published:      request.Published,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.CreateEvent(c, event); err != nil {
		log.Printf("Failed to write event to Firestore: %v\n", err)
		return store.Event{}, err
	}
	return event, nil
}

func (s *EventsService) GetEvent(c *gin.Context, eventID string) (store.Event, error) {
	return s.store.GetEvent(c, eventID)
}

func (s *EventsService) UpdateEvent(c *gin.Context, userID, eventID string, request UpdateEventRequest) (store.Event, error) {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return store.Event{}, err
	}
	if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
		return store.Event{}, err
	}
	if err := request.validate(event.StartDate, event.EndDate); err != nil {
		return store.Event{}, err
	}

	updates := []firestore.Update{
		{Path: "updatedAt", Value: time.Now().UTC()},
	}
	if request.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *request.Name})
	}
	if request.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *request.Description})
	}
	if request.Venue != nil {
		updates = append(updates, firestore.Update{Path: "venue", Value: *request.Venue})
	}
	if request.StartDate != nil {
		updates = append(updates, firestore.Update{Path: "startDate", Value: *request.StartDate})
	}
	if request.EndDate != nil {
		updates = append(updates, firestore.Update{Path: "endDate", Value: *request.EndDate})
	}
	if request.Published != nil {
		updates = append(updates, firestore.Update{Path: "published", Value: *request.Published})
	}

	if err := s.store.UpdateEvent(c, eventID, updates); err != nil {
		log.Printf("Failed to update event in Firestore: %v\n", err)
		return store.Event{}, err
	}
	return s.store.GetEvent(c, eventID)
}

// DeleteEvent removes an event and its ticket types. Events with paid
// tickets cannot be deleted.
func (s *EventsService) DeleteEvent(c *gin.Context, userID, eventID string) error {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return err
	}
	if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
		return err
	}

	paid, err := s.store.CountPaidTickets(c, eventID)
	if err != nil {
		log.Printf("Failed to count paid tickets: %v\n", err)
		return err
	}
	if paid > 0 {
		return ErrHasPaidTickets
	}

	return s.store.DeleteEvent(c, eventID)
}

func (s *EventsService) ListTicketTypes(c *gin.Context, eventID string) ([]store.TicketType, error) {
	if _, err := s.store.GetEvent(c, eventID); err != nil {
		return nil, err
	}
	return s.store.ListTicketTypes(c, eventID)
}

func (s *EventsService) CreateTicketType(c *gin.Context, userID, eventID string, request TicketTypeRequest) (store.TicketType, error) {
	if err := request.validate(); err != nil {
		return store.TicketType{}, err
	}
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return store.TicketType{}, err
	}
	if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
		return store.TicketType{}, err
	}

	now := time.Now().UTC()
	tt := store.TicketType{
		ID:          uuidv7.New().String(),
		EventID:     eventID,
		Name:        request.Name,
		Description: request.Description,
		Price:       request.Price,
		Quantity:    request.Quantity,
		AccessRule:  request.AccessRule,
		SaleStart:   request.SaleStart,
		SaleEnd:     request.SaleEnd,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateTicketType(c, tt); err != nil {
		log.Printf("Failed to write ticket type to Firestore: %v\n", err)
		return store.TicketType{}, err
	}
	return tt, nil
}

func (s *EventsService) UpdateTicketType(c *gin.Context, userID, eventID, typeID string, request UpdateTicketTypeRequest) (store.TicketType, error) {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return store.TicketType{}, err
	}
	if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
		return store.TicketType{}, err
	}
	tt, err := s.store.GetTicketType(c, eventID, typeID)
	if err != nil {
		return store.TicketType{}, err
	}
	if err := request.validate(tt.SaleStart, tt.SaleEnd); err != nil {
		return store.TicketType{}, err
	}

	fields := request.ticketTypeUpdates()

	// A quantity change rides the guarded transaction together with the
	// other fields, so the patch lands whole or not at all.
	if request.Quantity != nil {
		if err := s.store.SetTicketTypeQuantity(c, eventID, typeID, *request.Quantity, fields...); err != nil {
			return store.TicketType{}, err
		}
		return s.store.GetTicketType(c, eventID, typeID)
	}

	updates := append([]firestore.Update{
		{Path: "updatedAt", Value: time.Now().UTC()},
	}, fields...)
	if err := s.store.UpdateTicketType(c, eventID, typeID, updates); err != nil {
		log.Printf("Failed to update ticket type in Firestore: %v\n", err)
		return store.TicketType{}, err
	}
	return s.store.GetTicketType(c, eventID, typeID)
}

func (s *EventsService) DeleteTicketType(c *gin.Context, userID, eventID, typeID string) error {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return err
	}
	if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
		return err
	}
	if _, err := s.store.GetTicketType(c, eventID, typeID); err != nil {
		return err
	}
	return s.store.DeleteTicketType(c, eventID, typeID)
}

// IssueTicket creates a ticket for a tier, enforcing the tier's access
// rule and sale window. Capacity is enforced by the store transaction.
func (s *EventsService) IssueTicket(c *gin.Context, userID, userEmail, eventID string, request IssueTicketRequest) (store.Ticket, error) {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return store.Ticket{}, err
	}
	tt, err := s.store.GetTicketType(c, eventID, request.TicketTypeID)
	if err != nil {
		return store.Ticket{}, err
	}

	if tt.AccessRule != store.AccessPublic {
		// Members-only and invite-only tiers are issued by the roster.
		if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
			return store.Ticket{}, err
		}
	}

	today := timehelper.GetTodaysDateString()
	if (tt.SaleStart != "" && today < tt.SaleStart) || (tt.SaleEnd != "" && today > tt.SaleEnd) {
		return store.Ticket{}, ErrSaleClosed
	}

	holderEmail := request.HolderEmail
	if holderEmail == "" {
		holderEmail = userEmail
	}

	ticket := store.Ticket{
		ID:             uuidv7.New().String(),
		EventID:        eventID,
		TicketTypeID:   tt.ID,
		OrganizationID: event.OrganizationID,
		HolderID:       userID,
		HolderEmail:    holderEmail,
		Status:         store.TicketIssued,
		Price:          &tt.Price,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.store.IssueTicket(c, ticket); err != nil {
		return store.Ticket{}, err
	}
	return ticket, nil
}

// GetTicket fetches a single ticket for an org member. Tickets of other
// events hide behind not-found.
func (s *EventsService) GetTicket(c *gin.Context, userID, eventID, ticketID string) (store.Ticket, error) {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return store.Ticket{}, err
	}
	if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
		return store.Ticket{}, err
	}
	ticket, err := s.store.GetTicket(c, ticketID)
	if err != nil {
		return store.Ticket{}, err
	}
	if ticket.EventID != eventID {
		return store.Ticket{}, store.ErrNotFound
	}
	return ticket, nil
}

func (s *EventsService) ListTickets(c *gin.Context, userID, eventID string) ([]store.Ticket, error) {
	event, err := s.store.GetEvent(c, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.requireMember(c, event.OrganizationID, userID); err != nil {
		return nil, err
	}
	return s.store.ListTicketsByEvent(c, eventID)
}

func (s *EventsService) requireMember(c *gin.Context, orgID, userID string) error {
	if orgID == "" {
		return store.ErrNotFound
	}
	if _, err := s.store.GetOrganization(c, orgID); err != nil {
		return err
	}
	if _, err := s.store.GetMember(c, orgID, userID); err != nil {
		if store.IsNotFound(err) {
			return ErrNotMember
		}
		return err
	}
	return nil
}
