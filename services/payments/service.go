package payments

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	payments "github.com/gatherly/event-hub/repos/payments"
	"github.com/gatherly/event-hub/repos/store"
)

const timestampLayout = "2006-01-02 15:04:05"

type PaymentsService struct {
	store           *store.Store
	paymentsService *payments.Service
}

func NewPaymentsService(st *store.Store, paymentsService *payments.Service) *PaymentsService {
	return &PaymentsService{
		store:           st,
		paymentsService: paymentsService,
	}
}

// SyncCharges kicks off an async charge pull for the organization,
// debounced on the last requested timestamp.
func (s *PaymentsService) SyncCharges(c *gin.Context, userID, orgID string, force bool) error {
	if _, err := s.store.GetMember(c, orgID, userID); err != nil {
		if store.IsNotFound(err) {
			return ErrNotMember
		}
		return err
	}

	t := time.Now()
	now := t.Format(timestampLayout)

	ctx := context.Background()
	lastReq := s.paymentsService.GetLastRequest(ctx, orgID)
	if lastReq == "" {
		lastReq = timestampLayout
	}
	lastRequestTime, err := time.Parse(timestampLayout, lastReq)
	if err != nil {
		fmt.Println(err)
	}
	diff := t.Sub(lastRequestTime)

	log.Printf("Since last req: %s\n", diff)

	if diff < 30*time.Second && !force {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Seconds since last req: %s", diff),
		})
	} else {
		s.paymentsService.SetLastRequest(ctx, orgID, now)
		go s.paymentsService.FetchCharges(ctx, 1, orgID)

		c.JSON(http.StatusOK, gin.H{
			"message": "Async function started",
		})
	}
	return nil
}

// SyncStatus reports the organization's last sync timestamps.
func (s *PaymentsService) SyncStatus(c *gin.Context, userID, orgID string) (payments.SyncStatus, error) {
	if _, err := s.store.GetMember(c, orgID, userID); err != nil {
		if store.IsNotFound(err) {
			return payments.SyncStatus{}, ErrNotMember
		}
		return payments.SyncStatus{}, err
	}

	ctx := context.Background()
	return payments.SyncStatus{
		LastSynced:    s.paymentsService.GetLastSynced(ctx, orgID),
		LastRequested: s.paymentsService.GetLastRequest(ctx, orgID),
	}, nil
}
