package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
)

const unassignedYAML = `
id: lunch
name: Lunch
tip_type: fixed
tip_value: 5.00
tax_amount: "2.00"
participants:
  - id: a
    name: Ann
  - id: b
    name: Ben
    color: "#123456"
items:
  - id: soup
    name: Soup
    price: 15.00
    splits:
      - participant_id: a
        share: 1
  - name: Salad
    price: "15"
`

func TestDecode_YAML(t *testing.T) {
	snap, err := Decode(strings.NewReader(unassignedYAML))
	require.NoError(t, err)
	assert.Equal(t, "5.00", snap.TipValue)
	assert.Equal(t, "15.00", snap.Items[0].Price)

	bill, err := snap.Model()
	require.NoError(t, err)
	assert.Equal(t, models.TipFixed, bill.TipKind)
	assert.Equal(t, models.DefaultColor(0), bill.Participants[0].Color)
	assert.Equal(t, "#123456", bill.Participants[1].Color)
	require.Len(t, bill.Items, 2)
	assert.Equal(t, "item-2", bill.Items[1].ID)
	assert.Equal(t, 1, bill.Items[1].Quantity)

	summary, err := calculator.CalculateSummary(bill)
	require.NoError(t, err)
	assert.Equal(t, "37.00", calculator.FormatMoney(summary.Total))
	ann, ok := summary.Participant("a")
	require.True(t, ok)
	assert.Equal(t, "15.00", calculator.FormatMoney(ann.ItemsTotal))
	assert.Equal(t, "5.00", calculator.FormatMoney(ann.TipShare))
	assert.Equal(t, "2.00", calculator.FormatMoney(ann.TaxShare))
	assert.Equal(t, "22.00", calculator.FormatMoney(ann.TotalOwed))
}

func TestDecode_JSON(t *testing.T) {
	const doc = `{
  "id": "b1",
  "name": "Drinks",
  "subtotal": "10.00",
  "tip_type": "percentage",
  "tip_value": 15,
  "tax_amount": "0",
  "participants": [{"id": "p1", "name": "Pat"}],
  "items": [{"id": "i1", "name": "Beer", "price": "5.00", "quantity": 2,
             "splits": [{"participant_id": "p1", "share": "1"}]}]
}`
	snap, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	bill, err := snap.Model()
	require.NoError(t, err)
	summary, err := calculator.CalculateSummary(bill)
	require.NoError(t, err)
	assert.Equal(t, "1.50", calculator.FormatMoney(summary.Tip))
	assert.Equal(t, "11.50", calculator.FormatMoney(summary.Participants[0].TotalOwed))
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"unknown field", "name: x\nwaiter: Sam\n"},
		{"not a mapping", "- 1\n- 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, calculator.ErrInvalidInput)
		})
	}
}

func TestModel_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative price", "items:\n  - {name: x, price: -1}\n"},
		{"zero quantity", "items:\n  - {name: x, price: 1, quantity: 0}\n"},
		{"share above one", "participants: [{id: a, name: A}]\nitems:\n  - {name: x, price: 1, splits: [{participant_id: a, share: 1.5}]}\n"},
		{"negative tip", "tip_value: -5\n"},
		{"unknown tip type", "tip_type: generous\n"},
		{"participant without id", "participants: [{name: A}]\n"},
		{"split to stranger", "participants: [{id: a, name: A}]\nitems:\n  - {name: x, price: 1, splits: [{participant_id: z, share: 1}]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := Decode(strings.NewReader(tt.doc))
			require.NoError(t, err)
			_, err = snap.Model()
			assert.ErrorIs(t, err, calculator.ErrInvalidInput)
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(unassignedYAML), 0o644))

	snap, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", snap.Name)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
