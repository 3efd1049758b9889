package models

import "github.com/shopspring/decimal"

// TipKind selects how a bill's tip value is interpreted.
type TipKind string

const (
	// TipPercentage treats the tip value as a percent of the subtotal (20 means 20%).
	TipPercentage TipKind = "percentage"
	// TipFixed treats the tip value as an absolute amount.
	TipFixed TipKind = "fixed"
)

// Valid reports whether k is a known tip kind.
func (k TipKind) Valid() bool {
	return k == TipPercentage || k == TipFixed
}

// Bill represents a bill with items to be split among participants.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	// OwnerID is the user who created the bill. Only the owner may read or
	// change it.
	OwnerID string

	// Name is the human-readable name for the bill.
	Name string

	// TipKind and TipValue describe the tip policy.
	TipKind  TipKind
	TipValue decimal.Decimal

	// TaxAmount is the absolute tax charged on the bill.
	TaxAmount decimal.Decimal

	// Participants is the ordered list of people splitting the bill.
	Participants []Participant

	// Items is the ordered list of line items on the bill.
	Items []Item

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// Participant returns the participant with the given ID.
func (b *Bill) Participant(id string) (Participant, bool) {
	for _, p := range b.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return Participant{}, false
}

// Item returns the item with the given ID.
func (b *Bill) Item(id string) (Item, bool) {
	for _, it := range b.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Clone returns a deep copy of the bill.
func (b *Bill) Clone() *Bill {
	c := *b
	c.Participants = append([]Participant(nil), b.Participants...)
	c.Items = make([]Item, len(b.Items))
	for i, it := range b.Items {
		c.Items[i] = it.Clone()
	}
	return &c
}

// Participant is a person sharing the bill.
type Participant struct {
	ID     string
	BillID string
	Name   string

	// Color is a display color (hex string). It plays no part in any calculation.
	Color string

	CreatedAt int64
}

// Item represents a single line item on a bill.
type Item struct {
	ID     string
	BillID string
	Name   string

	// Price is the unit price.
	Price decimal.Decimal

	// Quantity is the number of units; always at least 1.
	Quantity int

	// Splits assign fractions of TotalPrice to participants. At most one
	// split exists per participant.
	Splits []Split

	CreatedAt int64
}

// TotalPrice returns Price * Quantity.
func (it Item) TotalPrice() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Clone returns a copy of the item with its own Splits slice.
func (it Item) Clone() Item {
	it.Splits = append([]Split(nil), it.Splits...)
	return it
}

// Split assigns a fraction of one item's cost to one participant.
type Split struct {
	ParticipantID string

	// Share is a fraction in [0, 1] of the owning item's total price.
	Share decimal.Decimal
}

// ParticipantColors is the palette new participants draw their default color from.
var ParticipantColors = []string{
	"#e2714d", // terracotta
	"#498c64", // forest
	"#636fa6", // midnight
	"#c19f5c", // sand
	"#8b5cf6", // violet
	"#0891b2", // cyan
	"#db2777", // pink
	"#ea580c", // orange
	"#65a30d", // lime
	"#7c3aed", // purple
}

// DefaultColor returns the palette color for the participant at position.
func DefaultColor(position int) string {
	return ParticipantColors[position%len(ParticipantColors)]
}
