package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/pkg/api"
)

func toAPIBill(bill *models.Bill, summary *calculator.Summary) *api.Bill {
	out := &api.Bill{
		ID:                bill.ID,
		Name:              bill.Name,
		Subtotal:          calculator.FormatMoney(summary.Subtotal),
		TipType:           string(bill.TipKind),
		TipValue:          calculator.FormatMoney(bill.TipValue),
		TipAmount:         calculator.FormatMoney(summary.Tip),
		TaxAmount:         calculator.FormatMoney(bill.TaxAmount),
		Total:             calculator.FormatMoney(summary.Total),
		Participants:      make([]*api.Participant, 0, len(bill.Participants)),
		Items:             make([]*api.Item, 0, len(bill.Items)),
		ParticipantsCount: len(bill.Participants),
		ItemsCount:        len(bill.Items),
		IsFullySplit:      calculator.IsFullySplit(bill),
		CreatedAt:         bill.CreatedAt,
		UpdatedAt:         bill.UpdatedAt,
	}

	for _, p := range bill.Participants {
		owed, _ := summary.Participant(p.ID)
		out.Participants = append(out.Participants, &api.Participant{
			ID:         p.ID,
			Name:       p.Name,
			Color:      p.Color,
			TotalOwed:  calculator.FormatMoney(owed.TotalOwed),
			ItemsCount: len(owed.Items),
			CreatedAt:  p.CreatedAt,
		})
	}
	for _, item := range bill.Items {
		out.Items = append(out.Items, toAPIItem(bill, item))
	}
	return out
}

func toAPIItem(bill *models.Bill, item models.Item) *api.Item {
	total := item.TotalPrice()
	out := &api.Item{
		ID:                 item.ID,
		Name:               item.Name,
		Price:              calculator.FormatMoney(item.Price),
		Quantity:           item.Quantity,
		TotalPrice:         calculator.FormatMoney(total),
		Splits:             make([]*api.ItemSplit, 0, len(item.Splits)),
		AssignedCount:      len(item.Splits),
		TotalAssignedShare: calculator.FormatShare(calculator.AssignedShare(item)),
		SplitStatus:        string(calculator.Status(item)),
		CreatedAt:          item.CreatedAt,
	}
	for _, s := range item.Splits {
		p, _ := bill.Participant(s.ParticipantID)
		out.Splits = append(out.Splits, &api.ItemSplit{
			ParticipantID:    s.ParticipantID,
			ParticipantName:  p.Name,
			ParticipantColor: p.Color,
			Share:            calculator.FormatShare(s.Share),
			Amount:           calculator.FormatMoney(total.Mul(s.Share)),
		})
	}
	return out
}

// ToAPISummary converts an engine summary to its wire form.
func ToAPISummary(summary *calculator.Summary) *api.Summary {
	out := &api.Summary{
		BillID:       summary.BillID,
		BillName:     summary.BillName,
		BillSubtotal: calculator.FormatMoney(summary.Subtotal),
		BillTip:      calculator.FormatMoney(summary.Tip),
		BillTax:      calculator.FormatMoney(summary.Tax),
		BillTotal:    calculator.FormatMoney(summary.Total),
		Participants: make([]*api.ParticipantSummary, len(summary.Participants)),
	}
	for i, p := range summary.Participants {
		out.Participants[i] = toAPIParticipantSummary(p)
	}
	return out
}

func toAPIParticipantSummary(p calculator.PersonSplit) *api.ParticipantSummary {
	out := &api.ParticipantSummary{
		ParticipantID:    p.ParticipantID,
		ParticipantName:  p.Name,
		ParticipantColor: p.Color,
		ItemsTotal:       calculator.FormatMoney(p.ItemsTotal),
		TipShare:         calculator.FormatMoney(p.TipShare),
		TaxShare:         calculator.FormatMoney(p.TaxShare),
		TotalOwed:        calculator.FormatMoney(p.TotalOwed),
		Items:            make([]*api.SummaryItem, len(p.Items)),
	}
	for i, it := range p.Items {
		out.Items[i] = &api.SummaryItem{
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			ItemPrice: calculator.FormatMoney(it.ItemPrice),
			Share:     calculator.FormatShare(it.Share),
			Amount:    calculator.FormatMoney(it.Amount),
		}
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// parseTipKind reads a wire tip type; empty means percentage.
func parseTipKind(s string) (models.TipKind, error) {
	if s == "" {
		return models.TipPercentage, nil
	}
	kind := models.TipKind(s)
	if !kind.Valid() {
		return "", invalidf("unknown tip type %q", s)
	}
	return kind, nil
}

// newParticipant builds a participant for position on the bill with a fresh
// ID and, unless one is given, the palette color for that position.
func newParticipant(np *api.NewParticipant, position int) (*models.Participant, error) {
	if np == nil {
		return nil, invalidf("participant is required")
	}
	name := strings.TrimSpace(np.Name)
	if name == "" {
		return nil, invalidf("participant name is required")
	}
	color := strings.TrimSpace(np.Color)
	if color == "" {
		color = models.DefaultColor(position)
	}
	return &models.Participant{ID: uuid.NewString(), Name: name, Color: color}, nil
}

func newItem(ni *api.NewItem) (*models.Item, error) {
	if ni == nil {
		return nil, invalidf("item is required")
	}
	name := strings.TrimSpace(ni.Name)
	if name == "" {
		return nil, invalidf("item name is required")
	}
	if strings.TrimSpace(ni.Price) == "" {
		return nil, invalidf("price of %q is required", name)
	}
	price, err := calculator.ParseAmount(ni.Price)
	if err != nil {
		return nil, err
	}
	quantity := ni.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, invalidf("quantity of %q must be at least 1", name)
	}
	return &models.Item{Name: name, Price: price, Quantity: quantity}, nil
}

func findParticipant(bill *api.Bill, id string) *api.Participant {
	for _, p := range bill.Participants {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func findItem(bill *api.Bill, id string) *api.Item {
	for _, it := range bill.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}
