package store

import (
	"context"

	"cloud.google.com/go/firestore"
)

func (s *Store) CreateEvent(ctx context.Context, event Event) error {
	_, err := s.client.Collection(collectionEvents).Doc(event.ID).Set(ctx, event)
	return err
}

func (s *Store) GetEvent(ctx context.Context, eventID string) (Event, error) {
	doc, err := s.client.Collection(collectionEvents).Doc(eventID).Get(ctx)
	if err != nil {
		return Event{}, notFoundAs(err)
	}
	var event Event
	if err := doc.DataTo(&event); err != nil {
		return Event{}, err
	}
	return event, nil
}

func (s *Store) UpdateEvent(ctx context.Context, eventID string, updates []firestore.Update) error {
	_, err := s.client.Collection(collectionEvents).Doc(eventID).Update(ctx, updates)
	return notFoundAs(err)
}

func (s *Store) DeleteEvent(ctx context.Context, eventID string) error {
	ref := s.client.Collection(collectionEvents).Doc(eventID)

	// Ticket types live under the event, drop them with it.
	docs, err := ref.Collection(collectionTicketTypes).Documents(ctx).GetAll()
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return err
		}
	}

	_, err = ref.Delete(ctx)
	return err
}

// ListPublishedEvents returns every published event, for the public
// browse listing.
func (s *Store) ListPublishedEvents(ctx context.Context) ([]Event, error) {
	docs, err := s.client.Collection(collectionEvents).
		Where("published", "==", true).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}
	return docsTo[Event](docs)
}

// ListEventsByOrgs returns the events belonging to any of the given
// organizations. Firestore caps "in" filters, so the lookup is chunked.
func (s *Store) ListEventsByOrgs(ctx context.Context, orgIDs []string) ([]Event, error) {
	var events []Event
	for _, ids := range chunk(orgIDs, 30) {
		docs, err := s.client.Collection(collectionEvents).
			Where("organizationId", "in", ids).
			Documents(ctx).
			GetAll()
		if err != nil {
			return nil, err
		}
		part, err := docsTo[Event](docs)
		if err != nil {
			return nil, err
		}
		events = append(events, part...)
	}
	return events, nil
}
