package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"
)

func TestCreateEventRequestValidate(t *testing.T) {
	valid := CreateEventRequest{
		OrganizationID: "org1",
		Name:           "Summer Gala",
		StartDate:      "2024-06-01",
		EndDate:        "2024-06-02",
	}
	assert.Nil(t, valid.validate())

	noName := valid
	noName.Name = ""
	assert.ErrorIs(t, noName.validate(), ErrNameRequired)

	badDate := valid
	badDate.StartDate = "01/06/2024"
	assert.ErrorIs(t, badDate.validate(), ErrInvalidDate)

	inverted := valid
	inverted.StartDate = "2024-06-03"
	assert.ErrorIs(t, inverted.validate(), ErrInvalidDateRange)

	openEnded := valid
	openEnded.EndDate = ""
	assert.Nil(t, openEnded.validate(), "missing end date is allowed")
}

func TestUpdateEventRequestValidate(t *testing.T) {
	patch := UpdateEventRequest{StartDate: pointer.String("2024-06-05")}
	assert.ErrorIs(t, patch.validate("2024-06-01", "2024-06-02"), ErrInvalidDateRange,
		"patching the start past the existing end should fail")

	patch = UpdateEventRequest{
		StartDate: pointer.String("2024-06-05"),
		EndDate:   pointer.String("2024-06-06"),
	}
	assert.Nil(t, patch.validate("2024-06-01", "2024-06-02"))

	patch = UpdateEventRequest{Name: pointer.String("")}
	assert.ErrorIs(t, patch.validate("", ""), ErrNameRequired)

	assert.Nil(t, UpdateEventRequest{}.validate("2024-06-01", "2024-06-02"),
		"empty patch is valid")
}

func TestTicketTypeRequestValidate(t *testing.T) {
	valid := TicketTypeRequest{
		Name:       "Early Bird",
		Price:      25,
		Quantity:   100,
		AccessRule: "public",
		SaleStart:  "2024-05-01",
		SaleEnd:    "2024-05-31",
	}
	assert.Nil(t, valid.validate())

	free := valid
	free.Price = 0
	assert.Nil(t, free.validate(), "free tiers are allowed")

	negative := valid
	negative.Price = -1
	assert.ErrorIs(t, negative.validate(), ErrInvalidPrice)

	negQty := valid
	negQty.Quantity = -5
	assert.ErrorIs(t, negQty.validate(), ErrInvalidQuantity)

	badRule := valid
	badRule.AccessRule = "vip"
	assert.ErrorIs(t, badRule.validate(), ErrInvalidAccessRule)

	badWindow := valid
	badWindow.SaleStart = "2024-06-30"
	assert.ErrorIs(t, badWindow.validate(), ErrInvalidSaleWindow)
}

func TestUpdateTicketTypeRequestValidate(t *testing.T) {
	patch := UpdateTicketTypeRequest{SaleEnd: pointer.String("2024-04-01")}
	assert.ErrorIs(t, patch.validate("2024-05-01", "2024-05-31"), ErrInvalidSaleWindow)

	patch = UpdateTicketTypeRequest{Price: pointer.Float64(-2)}
	assert.ErrorIs(t, patch.validate("", ""), ErrInvalidPrice)

	patch = UpdateTicketTypeRequest{AccessRule: pointer.String("members")}
	assert.Nil(t, patch.validate("", ""))
}

func TestTicketTypeUpdates(t *testing.T) {
	patch := UpdateTicketTypeRequest{
		Name:     pointer.String("Early bird"),
		Price:    pointer.Float64(99),
		Quantity: pointer.Int(50),
	}

	updates := patch.ticketTypeUpdates()
	assert.Len(t, updates, 2, "quantity stays out of the field writes")
	paths := []string{updates[0].Path, updates[1].Path}
	assert.Contains(t, paths, "name")
	assert.Contains(t, paths, "price")
	assert.NotContains(t, paths, "quantity")

	assert.Empty(t, UpdateTicketTypeRequest{}.ticketTypeUpdates())
}
