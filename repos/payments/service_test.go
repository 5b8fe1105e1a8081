package payments

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"

	"github.com/gatherly/event-hub/repos/store"
)

func TestChargeAmountCoalescing(t *testing.T) {
	cases := []struct {
		name   string
		charge Charge
		want   float64
	}{
		{
			name:   "decimal amount wins",
			charge: Charge{Amount: pointer.Float64(25.5), AmountCents: pointer.Int64(9999)},
			want:   25.5,
		},
		{
			name:   "cents fallback",
			charge: Charge{AmountCents: pointer.Int64(1250)},
			want:   12.5,
		},
		{
			name:   "nothing set defaults to zero",
			charge: Charge{},
			want:   0,
		},
		{
			name:   "negative amount falls through to cents",
			charge: Charge{Amount: pointer.Float64(-1), AmountCents: pointer.Int64(300)},
			want:   3,
		},
		{
			name:   "all malformed defaults to zero",
			charge: Charge{Amount: pointer.Float64(-1), AmountCents: pointer.Int64(-100)},
			want:   0,
		},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ChargeAmount(c.charge), c.name)
	}
}

func TestValidateCharge(t *testing.T) {
	valid := Charge{
		ID:       pointer.String("ch_1"),
		TicketID: pointer.String("tk_1"),
		Status:   pointer.String(settledStatus),
	}
	assert.Nil(t, validateCharge(valid))

	assert.NotNil(t, validateCharge(Charge{}), "missing id should fail")
	assert.NotNil(t, validateCharge(Charge{ID: pointer.String("ch_1")}), "missing ticket id should fail")
	assert.NotNil(t, validateCharge(Charge{
		ID:       pointer.String("ch_1"),
		TicketID: pointer.String("tk_1"),
	}), "missing status should fail")
}

func TestAsRegistered(t *testing.T) {
	err := asRegistered("ch_1", store.ErrAlreadyPaid)
	assert.True(t, errors.Is(err, ErrAlreadyRegistered), "duplicate payment should map to the sentinel")

	other := errors.New("deadline exceeded")
	assert.Equal(t, other, asRegistered("ch_1", other), "other errors should pass through")
	assert.Nil(t, asRegistered("ch_1", nil))
}

func TestChargePaidAt(t *testing.T) {
	charge := Charge{CreatedAt: pointer.String("2024-06-01 10:30:00")}
	got := chargePaidAt(charge)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, 30, got.Minute())

	// Unparseable timestamps fall back to now rather than zero.
	bad := Charge{CreatedAt: pointer.String("junk")}
	assert.False(t, chargePaidAt(bad).IsZero())
	assert.False(t, chargePaidAt(Charge{}).IsZero())
}
