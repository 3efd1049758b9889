// Package snapshot reads bill snapshots from YAML or JSON files so a
// summary can be computed without a database.
//
// A snapshot looks like:
//
//	name: Dinner
//	tip_type: percentage
//	tip_value: 18
//	tax_amount: "4.20"
//	participants:
//	  - {id: ann, name: Ann}
//	  - {id: ben, name: Ben}
//	items:
//	  - name: Pizza
//	    price: 24
//	    splits:
//	      - {participant_id: ann, share: 0.5}
//	      - {participant_id: ben, share: 0.5}
//
// Money and shares may be written as numbers or strings; either way the
// text is parsed as an exact decimal.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
)

// Bill is the on-disk shape of a bill snapshot. JSON is read as YAML.
type Bill struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Subtotal is accepted for compatibility with exported snapshots and
	// otherwise ignored; it is always recomputed from the items.
	Subtotal     string        `yaml:"subtotal,omitempty"`
	TipType      string        `yaml:"tip_type"`
	TipValue     string        `yaml:"tip_value"`
	TaxAmount    string        `yaml:"tax_amount"`
	Participants []Participant `yaml:"participants"`
	Items        []Item        `yaml:"items"`
}

type Participant struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
}

type Item struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	// Quantity defaults to 1 when absent.
	Quantity *int    `yaml:"quantity,omitempty"`
	Splits   []Split `yaml:"splits,omitempty"`
}

type Split struct {
	ParticipantID string `yaml:"participant_id"`
	Share         string `yaml:"share"`
}

// Decode reads one snapshot. Unknown fields are rejected.
func Decode(r io.Reader) (*Bill, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var b Bill
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty snapshot", calculator.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", calculator.ErrInvalidInput, err)
	}
	return &b, nil
}

// ReadFile decodes the snapshot stored at path.
func ReadFile(path string) (*Bill, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// Model converts the snapshot into a validated models.Bill. Items without
// an id are numbered item-1, item-2 and so on.
func (b *Bill) Model() (*models.Bill, error) {
	tipKind := models.TipPercentage
	if b.TipType != "" {
		tipKind = models.TipKind(b.TipType)
	}
	tipValue, err := calculator.ParseAmount(b.TipValue)
	if err != nil {
		return nil, fmt.Errorf("tip_value: %w", err)
	}
	taxAmount, err := calculator.ParseAmount(b.TaxAmount)
	if err != nil {
		return nil, fmt.Errorf("tax_amount: %w", err)
	}

	bill := &models.Bill{
		ID:           b.ID,
		Name:         b.Name,
		TipKind:      tipKind,
		TipValue:     tipValue,
		TaxAmount:    taxAmount,
		Participants: make([]models.Participant, 0, len(b.Participants)),
		Items:        make([]models.Item, 0, len(b.Items)),
	}

	for i, p := range b.Participants {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("%w: participant %d has no id", calculator.ErrInvalidInput, i+1)
		}
		color := p.Color
		if color == "" {
			color = models.DefaultColor(i)
		}
		bill.Participants = append(bill.Participants, models.Participant{
			ID:     p.ID,
			BillID: b.ID,
			Name:   p.Name,
			Color:  color,
		})
	}

	for i, it := range b.Items {
		item, err := it.model(i)
		if err != nil {
			return nil, err
		}
		item.BillID = b.ID
		bill.Items = append(bill.Items, item)
	}

	if err := calculator.Validate(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (it Item) model(index int) (models.Item, error) {
	id := it.ID
	if id == "" {
		id = fmt.Sprintf("item-%d", index+1)
	}
	price, err := calculator.ParseAmount(it.Price)
	if err != nil {
		return models.Item{}, fmt.Errorf("item %s price: %w", id, err)
	}
	quantity := 1
	if it.Quantity != nil {
		quantity = *it.Quantity
	}

	item := models.Item{
		ID:       id,
		Name:     it.Name,
		Price:    price,
		Quantity: quantity,
		Splits:   make([]models.Split, 0, len(it.Splits)),
	}
	for _, s := range it.Splits {
		share, err := calculator.ParseShare(s.Share)
		if err != nil {
			return models.Item{}, fmt.Errorf("item %s: %w", id, err)
		}
		item.Splits = append(item.Splits, models.Split{ParticipantID: s.ParticipantID, Share: share})
	}
	return item, nil
}
