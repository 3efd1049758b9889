package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/splitbill/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

var (
	alice = models.Participant{ID: "p-alice", Name: "Alice", Color: "#e2714d"}
	bob   = models.Participant{ID: "p-bob", Name: "Bob", Color: "#498c64"}
	carol = models.Participant{ID: "p-carol", Name: "Carol", Color: "#636fa6"}
)

func newBill(participants ...models.Participant) *models.Bill {
	return &models.Bill{
		ID:           "bill-1",
		Name:         "Dinner",
		TipKind:      models.TipPercentage,
		TipValue:     decimal.Zero,
		TaxAmount:    decimal.Zero,
		Participants: participants,
	}
}

func item(id, name, price string, qty int, splits ...models.Split) models.Item {
	return models.Item{ID: id, Name: name, Price: dec(price), Quantity: qty, Splits: splits}
}

func split(p models.Participant, share string) models.Split {
	return models.Split{ParticipantID: p.ID, Share: dec(share)}
}
