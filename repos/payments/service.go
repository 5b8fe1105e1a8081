package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"

	"github.com/gatherly/event-hub/repos/store"
)

var ErrAlreadyRegistered = errors.New("charge already registered")

const settledStatus = "settled"

// Service pulls settled charges from the payment provider and applies
// them to tickets.
type Service struct {
	Store  *store.Store
	apiURL string
	apiKey string
}

// NewService creates a new empty service.
func NewService(st *store.Store, apiURL, apiKey string) *Service {
	return &Service{
		Store:  st,
		apiURL: apiURL,
		apiKey: apiKey,
	}
}

// FetchCharges pulls the first page of charges for an organization,
// processes it, and fans out the remaining pages concurrently.
func (s *Service) FetchCharges(ctx context.Context, pageID int, orgID string) {
	apiResponse, err := s.fetchPage(ctx, pageID, orgID)
	if err != nil {
		log.Printf("Failed to fetch charges page %d: %v", pageID, err)
		return
	}

	s.processPage(ctx, apiResponse.Data)

	lastPage := apiResponse.Meta.LastPage

	var wg sync.WaitGroup
	for i := pageID + 1; i <= lastPage; i++ {
		wg.Add(1)
		go s.fetchChargePage(ctx, i, orgID, &wg)
	}
	wg.Wait()

	s.SetLastSynced(ctx, orgID, time.Now().UTC().Format("2006-01-02 15:04:05"))
	log.Println("All charges processed")
}

func (s *Service) fetchChargePage(ctx context.Context, pageID int, orgID string, wgx *sync.WaitGroup) {
	defer wgx.Done()

	apiResponse, err := s.fetchPage(ctx, pageID, orgID)
	if err != nil {
		log.Printf("Failed to fetch charges page %d: %v", pageID, err)
		return
	}
	s.processPage(ctx, apiResponse.Data)
}

func (s *Service) fetchPage(ctx context.Context, pageID int, orgID string) (ChargeResponse, error) {
	apiURL := fmt.Sprintf("%s/orgs/%s/charges?limit=50&page=%d", s.apiURL, orgID, pageID)

	httpClient := &http.Client{}
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return ChargeResponse{}, xerrors.Errorf("create charges request: %w", err)
	}
	req.Header.Set("x-api-secret", s.apiKey)

	response, err := httpClient.Do(req)
	if err != nil {
		return ChargeResponse{}, xerrors.Errorf("charges request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ChargeResponse{}, xerrors.Errorf("charges request returned %d", response.StatusCode)
	}

	var apiResponse ChargeResponse
	if err := json.NewDecoder(response.Body).Decode(&apiResponse); err != nil {
		return ChargeResponse{}, xerrors.Errorf("parse charges response: %w", err)
	}
	return apiResponse, nil
}

// processPage fans out one goroutine per charge and drains the results.
func (s *Service) processPage(ctx context.Context, charges []Charge) {
	var wg sync.WaitGroup
	chargeCh := make(chan Charge)

	for _, charge := range charges {
		wg.Add(1)
		go s.processCharge(ctx, charge, chargeCh, &wg)
	}

	go func() {
		wg.Wait()
		close(chargeCh)
	}()

	for charge := range chargeCh {
		log.Printf("Processed charge: %s", *charge.ID)
	}
}

func (s *Service) processCharge(ctx context.Context, charge Charge, ch chan<- Charge, wg *sync.WaitGroup) {
	defer wg.Done()

	if err := validateCharge(charge); err != nil {
		log.Printf("Skipping charge: %v", err)
		return
	}
	if *charge.Status != settledStatus {
		return
	}

	err := asRegistered(*charge.ID, s.Store.MarkTicketPaid(ctx, *charge.TicketID, *charge.ID, ChargeAmount(charge), chargePaidAt(charge)))
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			log.Printf("Ticket %s already paid by another charge", *charge.TicketID)
			return
		}
		log.Printf("Failed to apply charge %s: %v", *charge.ID, err)
		return
	}

	ch <- charge
}

// asRegistered maps the store's duplicate-payment error onto the package
// sentinel so callers only check one error.
func asRegistered(chargeID string, err error) error {
	if errors.Is(err, store.ErrAlreadyPaid) {
		return xerrors.Errorf("charge %s: %w", chargeID, ErrAlreadyRegistered)
	}
	return err
}

func validateCharge(charge Charge) error {
	if charge.ID == nil || *charge.ID == "" {
		return xerrors.New("charge without id")
	}
	if charge.TicketID == nil || *charge.TicketID == "" {
		return xerrors.Errorf("charge %s without ticket id", *charge.ID)
	}
	if charge.Status == nil {
		return xerrors.Errorf("charge %s without status", *charge.ID)
	}
	return nil
}

// ChargeAmount coalesces the provider's amount fields. Records predating
// the decimal amount carry cents; anything malformed counts as zero.
func ChargeAmount(charge Charge) float64 {
	if charge.Amount != nil && *charge.Amount >= 0 {
		return *charge.Amount
	}
	if charge.AmountCents != nil && *charge.AmountCents >= 0 {
		return float64(*charge.AmountCents) / 100
	}
	return 0
}

func chargePaidAt(charge Charge) time.Time {
	if charge.CreatedAt != nil {
		if t, err := time.Parse("2006-01-02 15:04:05", *charge.CreatedAt); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// GetLastSynced returns when the organization's charges were last pulled.
func (s *Service) GetLastSynced(ctx context.Context, orgID string) string {
	org, err := s.Store.GetOrganization(ctx, orgID)
	if err != nil {
		log.Printf("Failed to get organization %s: %v", orgID, err)
		return ""
	}
	return org.LastSynced
}

func (s *Service) SetLastSynced(ctx context.Context, orgID, timestamp string) {
	err := s.Store.UpdateOrganization(ctx, orgID, []firestore.Update{
		{Path: "lastSynced", Value: timestamp},
	})
	if err != nil {
		log.Printf("Failed to set last synced for %s: %v", orgID, err)
	}
}

// GetLastRequest returns when a sync was last requested.
func (s *Service) GetLastRequest(ctx context.Context, orgID string) string {
	org, err := s.Store.GetOrganization(ctx, orgID)
	if err != nil {
		log.Printf("Failed to get organization %s: %v", orgID, err)
		return ""
	}
	return org.LastRequested
}

func (s *Service) SetLastRequest(ctx context.Context, orgID, timestamp string) {
	err := s.Store.UpdateOrganization(ctx, orgID, []firestore.Update{
		{Path: "lastRequested", Value: timestamp},
	})
	if err != nil {
		log.Printf("Failed to set last request for %s: %v", orgID, err)
	}
}
