package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitbill/internal/models"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// ParseAmount parses a non-negative decimal currency string.
// An empty string is read as zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a decimal number", ErrInvalidInput, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount %s is negative", ErrInvalidInput, s)
	}
	return d, nil
}

// ParseShare parses a share string, which must lie in [0, 1].
func ParseShare(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: share %q is not a decimal number", ErrInvalidInput, s)
	}
	if err := checkShare(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// FormatMoney renders an amount with exactly two decimal places, rounding half-up.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatShare renders a share with four decimal places.
func FormatShare(d decimal.Decimal) string {
	return d.StringFixed(4)
}

func checkShare(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(one) {
		return fmt.Errorf("%w: share %s is outside [0, 1]", ErrInvalidInput, d)
	}
	return nil
}

// roundCents rounds to two places. Values here are never negative, so
// decimal's half-away-from-zero rounding is half-up.
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Subtotal returns the sum of every item's total price, split or not.
func Subtotal(bill *models.Bill) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range bill.Items {
		sum = sum.Add(item.TotalPrice())
	}
	return sum
}

// TipAmount returns the bill's tip at full precision.
func TipAmount(bill *models.Bill) decimal.Decimal {
	if bill.TipKind == models.TipFixed {
		return bill.TipValue
	}
	return Subtotal(bill).Mul(bill.TipValue).Div(hundred)
}

// Total returns subtotal + tip + tax at full precision.
func Total(bill *models.Bill) decimal.Decimal {
	return Subtotal(bill).Add(TipAmount(bill)).Add(bill.TaxAmount)
}
