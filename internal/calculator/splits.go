package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
)

// Selection chooses which participants an equal split covers.
// It is either AllParticipants or a Subset.
type Selection interface {
	resolve(participants []models.Participant) ([]string, error)
}

// AllParticipants selects every participant currently on the bill.
type AllParticipants struct{}

func (AllParticipants) resolve(participants []models.Participant) ([]string, error) {
	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = p.ID
	}
	return ids, nil
}

// Subset selects an explicit set of participant IDs. Repeated IDs count once.
type Subset []string

func (s Subset) resolve(participants []models.Participant) ([]string, error) {
	known := participantSet(participants)
	seen := make(map[string]bool, len(s))
	ids := make([]string, 0, len(s))
	for _, id := range s {
		if !known[id] {
			return nil, fmt.Errorf("%w: unknown participant %s", ErrInvalidOperation, id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// Assignment is one (participant, share) pair for AssignShares.
type Assignment struct {
	ParticipantID string
	Share         decimal.Decimal
}

// SplitEqually replaces every split on item with an equal 1/n share for each
// selected participant. Existing shares are discarded.
func SplitEqually(item models.Item, participants []models.Participant, sel Selection) (models.Item, error) {
	if sel == nil {
		sel = AllParticipants{}
	}
	ids, err := sel.resolve(participants)
	if err != nil {
		return models.Item{}, err
	}
	if len(ids) == 0 {
		return models.Item{}, fmt.Errorf("%w: no participants to split %q among", ErrInvalidOperation, item.Name)
	}

	share := one.Div(decimal.NewFromInt(int64(len(ids))))
	out := item.Clone()
	out.Splits = make([]models.Split, len(ids))
	for i, id := range ids {
		out.Splits[i] = models.Split{ParticipantID: id, Share: share}
	}
	return out, nil
}

// AssignShares replaces every split on item with the given assignments.
// Shares need not sum to 1.
func AssignShares(item models.Item, participants []models.Participant, assignments []Assignment) (models.Item, error) {
	known := participantSet(participants)
	seen := make(map[string]bool, len(assignments))
	splits := make([]models.Split, 0, len(assignments))
	for _, a := range assignments {
		if seen[a.ParticipantID] {
			return models.Item{}, fmt.Errorf("%w: ambiguous share for participant %s", ErrInvalidOperation, a.ParticipantID)
		}
		seen[a.ParticipantID] = true
		if !known[a.ParticipantID] {
			return models.Item{}, fmt.Errorf("%w: unknown participant %s", ErrInvalidOperation, a.ParticipantID)
		}
		if err := checkShare(a.Share); err != nil {
			return models.Item{}, err
		}
		splits = append(splits, models.Split{ParticipantID: a.ParticipantID, Share: a.Share})
	}

	out := item.Clone()
	out.Splits = splits
	return out, nil
}

// ClearSplits returns item without any splits.
func ClearSplits(item models.Item) models.Item {
	item.Splits = nil
	return item
}

// ClearBillSplits returns a copy of bill with every item's splits removed.
func ClearBillSplits(bill *models.Bill) *models.Bill {
	out := bill.Clone()
	for i := range out.Items {
		out.Items[i] = ClearSplits(out.Items[i])
	}
	return out
}

// SplitAllEqually splits every item of the bill equally among all participants.
func SplitAllEqually(bill *models.Bill) (*models.Bill, error) {
	out := bill.Clone()
	for i, item := range out.Items {
		split, err := SplitEqually(item, out.Participants, AllParticipants{})
		if err != nil {
			return nil, err
		}
		out.Items[i] = split
	}
	return out, nil
}

// RemoveParticipant returns a copy of bill without the participant and
// without exactly that participant's splits. Other shares are left as they
// were; the removed cost becomes unassigned.
func RemoveParticipant(bill *models.Bill, participantID string) (*models.Bill, error) {
	if _, ok := bill.Participant(participantID); !ok {
		return nil, fmt.Errorf("%w: unknown participant %s", ErrInvalidOperation, participantID)
	}

	out := bill.Clone()
	participants := out.Participants[:0]
	for _, p := range out.Participants {
		if p.ID != participantID {
			participants = append(participants, p)
		}
	}
	out.Participants = participants

	for i := range out.Items {
		splits := out.Items[i].Splits[:0]
		for _, s := range out.Items[i].Splits {
			if s.ParticipantID != participantID {
				splits = append(splits, s)
			}
		}
		out.Items[i].Splits = splits
	}
	return out, nil
}

func participantSet(participants []models.Participant) map[string]bool {
	set := make(map[string]bool, len(participants))
	for _, p := range participants {
		set[p.ID] = true
	}
	return set
}
