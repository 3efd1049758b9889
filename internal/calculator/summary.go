// Package calculator computes how a bill is split among its participants.
//
// Every function here is pure: it reads a bill snapshot, never modifies it,
// and returns new values. All arithmetic uses exact decimals; money values
// are rounded to cents only when a Summary is produced.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
)

// Summary is the computed breakdown of a bill. Money values are rounded to cents.
type Summary struct {
	BillID   string
	BillName string
	Subtotal decimal.Decimal
	Tip      decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal

	// Participants follows the bill's participant order.
	Participants []PersonSplit
}

// Participant returns the split for the participant with the given ID.
func (s *Summary) Participant(id string) (PersonSplit, bool) {
	for _, p := range s.Participants {
		if p.ParticipantID == id {
			return p, true
		}
	}
	return PersonSplit{}, false
}

// PersonSplit represents one participant's calculated share of a bill.
type PersonSplit struct {
	ParticipantID string
	Name          string
	Color         string

	// ItemsTotal is the sum of this participant's item amounts.
	ItemsTotal decimal.Decimal

	// TipShare and TaxShare are proportional to ItemsTotal over the total
	// assigned item cost.
	TipShare decimal.Decimal
	TaxShare decimal.Decimal

	// TotalOwed is ItemsTotal + TipShare + TaxShare.
	TotalOwed decimal.Decimal

	// Items follows the bill's item order.
	Items []PersonItem
}

// PersonItem represents an item's share for one person.
type PersonItem struct {
	ItemID   string
	ItemName string

	// ItemPrice is the item's total price (unit price times quantity).
	ItemPrice decimal.Decimal
	Share     decimal.Decimal
	Amount    decimal.Decimal
}

// allocation is one participant's share at full precision.
type allocation struct {
	participant models.Participant
	itemsTotal  decimal.Decimal
	tipShare    decimal.Decimal
	taxShare    decimal.Decimal
	items       []PersonItem
}

func (a allocation) totalOwed() decimal.Decimal {
	return a.itemsTotal.Add(a.tipShare).Add(a.taxShare)
}

// CalculateSummary computes what each participant owes.
//
// Algorithm:
//   - amount = item total price × share, for every split
//   - items_total = Σ amount per participant
//   - tip and tax are distributed by items_total / Σ items_total; unassigned
//     item cost is excluded so it cannot dilute anyone's share
//   - total_owed = items_total + tip_share + tax_share
//
// The bill total is subtotal + tip + tax and may differ from the sum of the
// rounded participant totals by up to a cent per participant. Pass
// WithRemainder to reconcile that difference.
func CalculateSummary(bill *models.Bill, opts ...Option) (*Summary, error) {
	cfg := options{remainder: RemainderIgnore}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := Validate(bill); err != nil {
		return nil, err
	}

	allocs := allocate(bill)
	subtotal := Subtotal(bill)
	tip := TipAmount(bill)

	summary := &Summary{
		BillID:       bill.ID,
		BillName:     bill.Name,
		Subtotal:     roundCents(subtotal),
		Tip:          roundCents(tip),
		Tax:          roundCents(bill.TaxAmount),
		Total:        roundCents(subtotal.Add(tip).Add(bill.TaxAmount)),
		Participants: make([]PersonSplit, len(allocs)),
	}
	for i, a := range allocs {
		items := make([]PersonItem, len(a.items))
		for j, it := range a.items {
			it.ItemPrice = roundCents(it.ItemPrice)
			it.Amount = roundCents(it.Amount)
			items[j] = it
		}
		summary.Participants[i] = PersonSplit{
			ParticipantID: a.participant.ID,
			Name:          a.participant.Name,
			Color:         a.participant.Color,
			ItemsTotal:    roundCents(a.itemsTotal),
			TipShare:      roundCents(a.tipShare),
			TaxShare:      roundCents(a.taxShare),
			TotalOwed:     roundCents(a.totalOwed()),
			Items:         items,
		}
	}

	if cfg.remainder == RemainderLargestShare {
		reconcile(summary, allocs)
	}
	return summary, nil
}

// allocate assumes a validated bill.
func allocate(bill *models.Bill) []allocation {
	index := make(map[string]int, len(bill.Participants))
	allocs := make([]allocation, len(bill.Participants))
	for i, p := range bill.Participants {
		index[p.ID] = i
		allocs[i] = allocation{
			participant: p,
			itemsTotal:  decimal.Zero,
			tipShare:    decimal.Zero,
			taxShare:    decimal.Zero,
		}
	}

	for _, item := range bill.Items {
		total := item.TotalPrice()
		for _, s := range item.Splits {
			a := &allocs[index[s.ParticipantID]]
			amount := total.Mul(s.Share)
			a.itemsTotal = a.itemsTotal.Add(amount)
			a.items = append(a.items, PersonItem{
				ItemID:    item.ID,
				ItemName:  item.Name,
				ItemPrice: total,
				Share:     s.Share,
				Amount:    amount,
			})
		}
	}

	assigned := decimal.Zero
	for _, a := range allocs {
		assigned = assigned.Add(a.itemsTotal)
	}
	if assigned.IsZero() {
		return allocs
	}

	tip := TipAmount(bill)
	for i := range allocs {
		a := &allocs[i]
		a.tipShare = tip.Mul(a.itemsTotal).Div(assigned)
		a.taxShare = bill.TaxAmount.Mul(a.itemsTotal).Div(assigned)
	}
	return allocs
}

// reconcile moves the rounding remainder onto the participant owing the most.
func reconcile(summary *Summary, allocs []allocation) {
	exact := decimal.Zero
	rounded := decimal.Zero
	largest := -1
	for i, a := range allocs {
		owed := a.totalOwed()
		exact = exact.Add(owed)
		rounded = rounded.Add(summary.Participants[i].TotalOwed)
		if largest < 0 || owed.GreaterThan(allocs[largest].totalOwed()) {
			largest = i
		}
	}
	diff := roundCents(exact).Sub(rounded)
	if largest < 0 || diff.IsZero() {
		return
	}
	p := &summary.Participants[largest]
	p.TotalOwed = p.TotalOwed.Add(diff)
}

// Validate checks a bill snapshot. It reports the first problem found.
func Validate(bill *models.Bill) error {
	if !bill.TipKind.Valid() {
		return fmt.Errorf("%w: unknown tip kind %q", ErrInvalidInput, bill.TipKind)
	}
	if bill.TipValue.IsNegative() {
		return fmt.Errorf("%w: tip value %s is negative", ErrInvalidInput, bill.TipValue)
	}
	if bill.TaxAmount.IsNegative() {
		return fmt.Errorf("%w: tax amount %s is negative", ErrInvalidInput, bill.TaxAmount)
	}

	participants := make(map[string]bool, len(bill.Participants))
	for _, p := range bill.Participants {
		if participants[p.ID] {
			return fmt.Errorf("%w: duplicate participant %s", ErrInvalidInput, p.ID)
		}
		participants[p.ID] = true
	}

	for _, item := range bill.Items {
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: item %q has negative price %s", ErrInvalidInput, item.Name, item.Price)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %q has quantity %d", ErrInvalidInput, item.Name, item.Quantity)
		}
		seen := make(map[string]bool, len(item.Splits))
		for _, s := range item.Splits {
			if !participants[s.ParticipantID] {
				return fmt.Errorf("%w: item %q is split to unknown participant %s", ErrInvalidInput, item.Name, s.ParticipantID)
			}
			if seen[s.ParticipantID] {
				return fmt.Errorf("%w: item %q has two splits for participant %s", ErrInvalidInput, item.Name, s.ParticipantID)
			}
			seen[s.ParticipantID] = true
			if err := checkShare(s.Share); err != nil {
				return fmt.Errorf("item %q: %w", item.Name, err)
			}
		}
	}
	return nil
}
