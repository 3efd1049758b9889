package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
)

// SplitStatus describes how much of an item has been assigned.
// It is derived from the item's shares and never stored.
type SplitStatus string

const (
	StatusUnsplit SplitStatus = "unsplit"
	StatusPartial SplitStatus = "partial"
	StatusFull    SplitStatus = "full"
	StatusOver    SplitStatus = "over"
)

// shareEpsilon is the tolerance for treating a share sum as exactly 1.
var shareEpsilon = decimal.New(1, -6)

// AssignedShare returns the sum of the item's split shares.
func AssignedShare(item models.Item) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range item.Splits {
		sum = sum.Add(s.Share)
	}
	return sum
}

// Status reports the split status of an item.
func Status(item models.Item) SplitStatus {
	sum := AssignedShare(item)
	switch {
	case sum.IsZero():
		return StatusUnsplit
	case sum.Sub(one).Abs().LessThanOrEqual(shareEpsilon):
		return StatusFull
	case sum.GreaterThan(one):
		return StatusOver
	default:
		return StatusPartial
	}
}

// IsFullySplit reports whether the bill has items and every one is fully split.
func IsFullySplit(bill *models.Bill) bool {
	if len(bill.Items) == 0 {
		return false
	}
	for _, item := range bill.Items {
		if Status(item) != StatusFull {
			return false
		}
	}
	return true
}
