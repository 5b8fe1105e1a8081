package dashboard

import (
	"testing"
	"time"

	"github.com/xorcare/pointer"

	"github.com/gatherly/event-hub/repos/store"
)

func paidAt(d int) *time.Time {
	t := time.Date(2024, 6, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func TestAggregateTicketMetrics(t *testing.T) {
	tickets := []store.Ticket{
		{EventID: "ev1", Status: store.TicketPaid, Amount: pointer.Float64(20), PaidAt: paidAt(1)},
		{EventID: "ev1", Status: store.TicketPaid, Price: pointer.Float64(15), PaidAt: paidAt(2)},
		{EventID: "ev1", Status: store.TicketIssued},
		{EventID: "ev1", Status: store.TicketCancelled, Amount: pointer.Float64(99)},
		{EventID: "ev2", Status: store.TicketPaid, AmountCents: pointer.Int64(500), PaidAt: paidAt(3)},
		{EventID: "elsewhere", Status: store.TicketPaid, Amount: pointer.Float64(1000)},
	}

	rows := AggregateTicketMetrics([]string{"ev1", "ev2", "ev3"}, tickets)
	if len(rows) != 3 {
		t.Fatalf("Expected a row per requested event, got %d", len(rows))
	}

	ev1 := rows[0]
	if ev1.TicketsSold != 3 {
		t.Errorf("Expected 3 sold for ev1 (cancelled excluded), got %d", ev1.TicketsSold)
	}
	if ev1.TicketsPaid != 2 {
		t.Errorf("Expected 2 paid for ev1, got %d", ev1.TicketsPaid)
	}
	if ev1.Revenue != 35 {
		t.Errorf("Expected revenue 35 for ev1, got %v", ev1.Revenue)
	}

	ev2 := rows[1]
	if ev2.Revenue != 5 {
		t.Errorf("Expected cents-based revenue 5 for ev2, got %v", ev2.Revenue)
	}

	ev3 := rows[2]
	if ev3.TicketsSold != 0 || ev3.Revenue != 0 {
		t.Errorf("Expected zero row for unknown event, got %+v", ev3)
	}
}

func TestAggregateTicketMetricsDuplicateIDs(t *testing.T) {
	tickets := []store.Ticket{
		{EventID: "ev1", Status: store.TicketPaid, Amount: pointer.Float64(10), PaidAt: paidAt(1)},
	}
	rows := AggregateTicketMetrics([]string{"ev1", "ev1"}, tickets)
	if len(rows) != 1 {
		t.Fatalf("Expected duplicate IDs collapsed, got %d rows", len(rows))
	}
	if rows[0].Revenue != 10 {
		t.Errorf("Expected revenue counted once, got %v", rows[0].Revenue)
	}
}

func TestTicketAmountCoalescing(t *testing.T) {
	cases := []struct {
		name   string
		ticket store.Ticket
		want   float64
	}{
		{"amount wins", store.Ticket{Amount: pointer.Float64(12), Price: pointer.Float64(99)}, 12},
		{"price fallback", store.Ticket{Price: pointer.Float64(7.5)}, 7.5},
		{"cents fallback", store.Ticket{AmountCents: pointer.Int64(250)}, 2.5},
		{"nothing defaults to zero", store.Ticket{}, 0},
		{"negative amount skipped", store.Ticket{Amount: pointer.Float64(-4), Price: pointer.Float64(6)}, 6},
		{"all malformed defaults to zero", store.Ticket{Amount: pointer.Float64(-4), Price: pointer.Float64(-1), AmountCents: pointer.Int64(-10)}, 0},
	}

	for _, c := range cases {
		if got := TicketAmount(c.ticket); got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}
