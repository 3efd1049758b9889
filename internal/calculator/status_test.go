package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/splitbill/internal/models"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name   string
		splits []models.Split
		want   SplitStatus
	}{
		{"no splits", nil, StatusUnsplit},
		{"zero shares", []models.Split{split(alice, "0")}, StatusUnsplit},
		{"half", []models.Split{split(alice, "0.5")}, StatusPartial},
		{"exact", []models.Split{split(alice, "0.25"), split(bob, "0.75")}, StatusFull},
		{"within epsilon", []models.Split{split(alice, "0.3333333"), split(bob, "0.6666666")}, StatusFull},
		{"just short", []models.Split{split(alice, "0.99")}, StatusPartial},
		{"over", []models.Split{split(alice, "1"), split(bob, "0.1")}, StatusOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(item("i-1", "Thing", "1.00", 1, tt.splits...)))
		})
	}
}

func TestIsFullySplit(t *testing.T) {
	bill := newBill(alice)
	assert.False(t, IsFullySplit(bill), "a bill with no items is not fully split")

	bill.Items = []models.Item{item("i-1", "Tea", "3.00", 1, split(alice, "1"))}
	assert.True(t, IsFullySplit(bill))

	bill.Items = append(bill.Items, item("i-2", "Cake", "5.00", 1))
	assert.False(t, IsFullySplit(bill))
}
