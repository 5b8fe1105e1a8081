package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

func (s *Store) ticketTypeRef(eventID, typeID string) *firestore.DocumentRef {
	return s.client.Collection(collectionEvents).Doc(eventID).
		Collection(collectionTicketTypes).Doc(typeID)
}

func (s *Store) CreateTicketType(ctx context.Context, tt TicketType) error {
	_, err := s.ticketTypeRef(tt.EventID, tt.ID).Set(ctx, tt)
	return err
}

func (s *Store) GetTicketType(ctx context.Context, eventID, typeID string) (TicketType, error) {
	doc, err := s.ticketTypeRef(eventID, typeID).Get(ctx)
	if err != nil {
		return TicketType{}, notFoundAs(err)
	}
	var tt TicketType
	if err := doc.DataTo(&tt); err != nil {
		return TicketType{}, err
	}
	return tt, nil
}

func (s *Store) ListTicketTypes(ctx context.Context, eventID string) ([]TicketType, error) {
	docs, err := s.client.Collection(collectionEvents).Doc(eventID).
		Collection(collectionTicketTypes).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	return docsTo[TicketType](docs)
}

func (s *Store) UpdateTicketType(ctx context.Context, eventID, typeID string, updates []firestore.Update) error {
	_, err := s.ticketTypeRef(eventID, typeID).Update(ctx, updates)
	return notFoundAs(err)
}

// SetTicketTypeQuantity lowers or raises the capacity transactionally, so
// a concurrent issue cannot slip the quantity below what is already out.
// Extra field updates ride the same transaction.
func (s *Store) SetTicketTypeQuantity(ctx context.Context, eventID, typeID string, quantity int, extra ...firestore.Update) error {
	ref := s.ticketTypeRef(eventID, typeID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return notFoundAs(err)
		}
		var tt TicketType
		if err := doc.DataTo(&tt); err != nil {
			return err
		}
		if quantity < tt.Issued {
			return ErrQuantityBelowIssued
		}
		updates := append([]firestore.Update{
			{Path: "quantity", Value: quantity},
			{Path: "updatedAt", Value: time.Now().UTC()},
		}, extra...)
		return tx.Update(ref, updates)
	})
}

func (s *Store) DeleteTicketType(ctx context.Context, eventID, typeID string) error {
	_, err := s.ticketTypeRef(eventID, typeID).Delete(ctx)
	return err
}

// IssueTicket writes the ticket and bumps the type's issued counter in
// one transaction. Capacity is enforced here, not in the service, so two
// concurrent issues cannot oversell the tier.
func (s *Store) IssueTicket(ctx context.Context, ticket Ticket) error {
	typeRef := s.ticketTypeRef(ticket.EventID, ticket.TicketTypeID)
	ticketRef := s.client.Collection(collectionTickets).Doc(ticket.ID)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(typeRef)
		if err != nil {
			return notFoundAs(err)
		}
		var tt TicketType
		if err := doc.DataTo(&tt); err != nil {
			return err
		}
		if tt.Issued >= tt.Quantity {
			return ErrSoldOut
		}
		if err := tx.Update(typeRef, []firestore.Update{
			{Path: "issued", Value: tt.Issued + 1},
			{Path: "updatedAt", Value: time.Now().UTC()},
		}); err != nil {
			return err
		}
		return tx.Set(ticketRef, ticket)
	})
}

func (s *Store) GetTicket(ctx context.Context, ticketID string) (Ticket, error) {
	doc, err := s.client.Collection(collectionTickets).Doc(ticketID).Get(ctx)
	if err != nil {
		return Ticket{}, notFoundAs(err)
	}
	var ticket Ticket
	if err := doc.DataTo(&ticket); err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

func (s *Store) ListTicketsByEvent(ctx context.Context, eventID string) ([]Ticket, error) {
	docs, err := s.client.Collection(collectionTickets).
		Where("eventId", "==", eventID).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	return docsTo[Ticket](docs)
}

// ListTicketsByEvents fetches the tickets of several events, chunked for
// the "in" filter cap.
func (s *Store) ListTicketsByEvents(ctx context.Context, eventIDs []string) ([]Ticket, error) {
	var tickets []Ticket
	for _, ids := range chunk(eventIDs, 30) {
		docs, err := s.client.Collection(collectionTickets).
			Where("eventId", "in", ids).
			Documents(ctx).
			GetAll()
		if err != nil {
			return nil, err
		}
		part, err := docsTo[Ticket](docs)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, part...)
	}
	return tickets, nil
}

// CountPaidTickets reports how many tickets of an event are paid.
func (s *Store) CountPaidTickets(ctx context.Context, eventID string) (int, error) {
	docs, err := s.client.Collection(collectionTickets).
		Where("eventId", "==", eventID).
		Where("status", "==", TicketPaid).
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// MarkTicketPaid applies a charge to a ticket. Re-applying the same
// charge is a no-op; a different charge on a paid ticket is refused.
func (s *Store) MarkTicketPaid(ctx context.Context, ticketID, chargeID string, amount float64, paidAt time.Time) error {
	ref := s.client.Collection(collectionTickets).Doc(ticketID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			return notFoundAs(err)
		}
		var ticket Ticket
		if err := doc.DataTo(&ticket); err != nil {
			return err
		}
		if ticket.Status == TicketPaid {
			if ticket.ChargeID == chargeID {
				return nil
			}
			return ErrAlreadyPaid
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: TicketPaid},
			{Path: "chargeId", Value: chargeID},
			{Path: "amount", Value: amount},
			{Path: "paidAt", Value: paidAt},
		})
	})
}
