package payments

// ChargeResponse is one page of charges from the payment provider.
type ChargeResponse struct {
	Data  []Charge `json:"data"`
	Links struct {
		First string `json:"first"`
		Last  string `json:"last"`
		Prev  string `json:"prev"`
		Next  string `json:"next"`
	} `json:"links"`
	Meta struct {
		CurrentPage int `json:"current_page"`
		From        int `json:"from"`
		LastPage    int `json:"last_page"`
	} `json:"meta"`
}

// Charge is a single settled payment. The provider omits fields freely,
// and older records carry the amount in cents, so everything is a
// pointer and the amount is coalesced at processing time.
type Charge struct {
	ID          *string  `json:"id"`
	TicketID    *string  `json:"ticketId"`
	Amount      *float64 `json:"amount"`
	AmountCents *int64   `json:"amountCents"`
	Currency    *string  `json:"currency"`
	Status      *string  `json:"status"`
	CreatedAt   *string  `json:"createdAt"`
}

// SyncStatus reports when an organization's charges were last pulled.
type SyncStatus struct {
	LastSynced    string `json:"lastSynced"`
	LastRequested string `json:"lastRequested"`
}
