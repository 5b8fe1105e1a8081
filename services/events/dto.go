package events

import (
	"errors"
	"time"

	"cloud.google.com/go/firestore"
)

var (
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidDate       = errors.New("dates must be YYYY-MM-DD")
	ErrInvalidDateRange  = errors.New("startDate must not be after endDate")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrInvalidSaleWindow = errors.New("saleStart must not be after saleEnd")
	ErrInvalidAccessRule = errors.New("accessRule must be public, members or invite")
	ErrNotMember         = errors.New("not a member of the organization")
	ErrHasPaidTickets    = errors.New("event has paid tickets")
	ErrSaleClosed        = errors.New("ticket sales are closed")
)

const dateLayout = "2006-01-02"

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// CreateEventRequest is the JSON body for creating an event.
type CreateEventRequest struct {
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Venue          string `json:"venue"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Published      bool   `json:"published"`
}

func (r CreateEventRequest) validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if !validDate(r.StartDate) || !validDate(r.EndDate) {
		return ErrInvalidDate
	}
	if r.StartDate != "" && r.EndDate != "" && r.StartDate > r.EndDate {
		return ErrInvalidDateRange
	}
	return nil
}

// UpdateEventRequest carries a partial update; nil fields are untouched.
type UpdateEventRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Venue       *string `json:"venue"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Published   *bool   `json:"published"`
}

// validate checks the patch against the event's current dates, so a
// partial update cannot invert the range.
func (r UpdateEventRequest) validate(currentStart, currentEnd string) error {
	if r.Name != nil && *r.Name == "" {
		return ErrNameRequired
	}
	start, end := currentStart, currentEnd
	if r.StartDate != nil {
		if !validDate(*r.StartDate) {
			return ErrInvalidDate
		}
		start = *r.StartDate
	}
	if r.EndDate != nil {
		if !validDate(*r.EndDate) {
			return ErrInvalidDate
		}
		end = *r.EndDate
	}
	if start != "" && end != "" && start > end {
		return ErrInvalidDateRange
	}
	return nil
}

// TicketTypeRequest is the JSON body for creating a ticket type.
type TicketTypeRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	AccessRule  string  `json:"accessRule"`
	SaleStart   string  `json:"saleStart"`
	SaleEnd     string  `json:"saleEnd"`
}

func validAccessRule(rule string) bool {
	switch rule {
	case "public", "members", "invite":
		return true
	}
	return false
}

func (r TicketTypeRequest) validate() error {
	if r.Name == "" {
		return ErrNameRequired
	}
	if r.Price < 0 {
		return ErrInvalidPrice
	}
	if r.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if !validAccessRule(r.AccessRule) {
		return ErrInvalidAccessRule
	}
	if !validDate(r.SaleStart) || !validDate(r.SaleEnd) {
		return ErrInvalidDate
	}
	if r.SaleStart != "" && r.SaleEnd != "" && r.SaleStart > r.SaleEnd {
		return ErrInvalidSaleWindow
	}
	return nil
}

// UpdateTicketTypeRequest carries a partial ticket-type update.
type UpdateTicketTypeRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	AccessRule  *string  `json:"accessRule"`
	SaleStart   *string  `json:"saleStart"`
	SaleEnd     *string  `json:"saleEnd"`
}

func (r UpdateTicketTypeRequest) validate(currentSaleStart, currentSaleEnd string) error {
	if r.Name != nil && *r.Name == "" {
		return ErrNameRequired
	}
	if r.Price != nil && *r.Price < 0 {
		return ErrInvalidPrice
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if r.AccessRule != nil && !validAccessRule(*r.AccessRule) {
		return ErrInvalidAccessRule
	}
	start, end := currentSaleStart, currentSaleEnd
	if r.SaleStart != nil {
		if !validDate(*r.SaleStart) {
			return ErrInvalidDate
		}
		start = *r.SaleStart
	}
	if r.SaleEnd != nil {
		if !validDate(*r.SaleEnd) {
			return ErrInvalidDate
		}
		end = *r.SaleEnd
	}
	if start != "" && end != "" && start > end {
		return ErrInvalidSaleWindow
	}
	return nil
}

// ticketTypeUpdates turns the set fields of a partial update into field
// writes. Quantity is excluded, it goes through the guarded capacity path.
func (r UpdateTicketTypeRequest) ticketTypeUpdates() []firestore.Update {
	var updates []firestore.Update
	if r.Name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *r.Name})
	}
	if r.Description != nil {
		updates = append(updates, firestore.Update{Path: "description", Value: *r.Description})
	}
	if r.Price != nil {
		updates = append(updates, firestore.Update{Path: "price", Value: *r.Price})
	}
	if r.AccessRule != nil {
		updates = append(updates, firestore.Update{Path: "accessRule", Value: *r.AccessRule})
	}
	if r.SaleStart != nil {
		updates = append(updates, firestore.Update{Path: "saleStart", Value: *r.SaleStart})
	}
	if r.SaleEnd != nil {
		updates = append(updates, firestore.Update{Path: "saleEnd", Value: *r.SaleEnd})
	}
	return updates
}

// IssueTicketRequest is the JSON body for issuing a ticket.
type IssueTicketRequest struct {
	TicketTypeID string `json:"ticketTypeId"`
	HolderEmail  string `json:"holderEmail"`
}
