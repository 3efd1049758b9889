package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitbill/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "0.00", false},
		{"12.5", "12.50", false},
		{" 3.999 ", "4.00", false},
		{"0", "0.00", false},
		{"-1.00", "", true},
		{"abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatMoney(got))
		})
	}
}

func TestParseShare(t *testing.T) {
	for _, ok := range []string{"0", "0.5", "1", "1.0000", "0.3333"} {
		_, err := ParseShare(ok)
		assert.NoError(t, err, ok)
	}
	for _, bad := range []string{"", "1.0001", "-0.5", "half"} {
		_, err := ParseShare(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestFormatMoney_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, "2.35", FormatMoney(dec("2.345")))
	assert.Equal(t, "2.34", FormatMoney(dec("2.3449")))
	assert.Equal(t, "0.01", FormatMoney(dec("0.005")))
	assert.Equal(t, "0.3333", FormatShare(dec("0.33333333")))
}

func TestTipAmount(t *testing.T) {
	bill := newBill(alice)
	bill.Items = []models.Item{item("i-1", "Ramen", "14.00", 2)}

	bill.TipValue = dec("20")
	assert.True(t, TipAmount(bill).Equal(dec("5.6")))

	bill.TipKind = models.TipFixed
	bill.TipValue = dec("3.25")
	assert.True(t, TipAmount(bill).Equal(dec("3.25")))

	bill.TaxAmount = dec("1.75")
	assert.True(t, Total(bill).Equal(dec("33.00")))
}

func TestParseRemainderPolicy(t *testing.T) {
	p, err := ParseRemainderPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RemainderIgnore, p)

	p, err = ParseRemainderPolicy("largest-share")
	require.NoError(t, err)
	assert.Equal(t, RemainderLargestShare, p)

	_, err = ParseRemainderPolicy("banker")
	assert.Error(t, err)
}
