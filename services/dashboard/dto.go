package dashboard

import "github.com/gatherly/event-hub/pkg/chart"

// EventTicketMetrics is one per-event row of the dashboard metrics:
// ticket counts and paid revenue, grouped by event.
type EventTicketMetrics struct {
	EventID     string  `json:"eventId"`
	TicketsSold int     `json:"ticketsSold"`
	TicketsPaid int     `json:"ticketsPaid"`
	Revenue     float64 `json:"revenue"`
}

// RevenueChartResponse is the bucketed revenue series plus its Y-axis
// scale, ready for the chart component.
type RevenueChartResponse struct {
	EventID string         `json:"eventId"`
	Buckets []chart.Bucket `json:"buckets"`
	Values  []float64      `json:"values"`
	Scale   chart.Scale    `json:"scale"`
}
