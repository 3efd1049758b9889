package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitbill/pkg/api"
)

func TestAddParticipant_PaletteColors(t *testing.T) {
	c, _ := setupTestServer(t)
	bill := createBill(t, c, &api.CreateBillRequest{Participants: people("Alice")})

	resp, err := c.participants.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{
		BillID: bill.ID,
		Name:   "Bob",
	}))
	require.NoError(t, err)
	require.NotNil(t, resp.Msg.Participant)
	assert.Equal(t, "Bob", resp.Msg.Participant.Name)
	assert.Equal(t, "#498c64", resp.Msg.Participant.Color)
	assert.Equal(t, 2, resp.Msg.Bill.ParticipantsCount)

	bulk, err := c.participants.BulkAddParticipants(context.Background(), connect.NewRequest(&api.BulkAddParticipantsRequest{
		BillID: bill.ID,
		Participants: []*api.NewParticipant{
			{Name: "Carol"},
			{Name: "Dan", Color: "#000000"},
		},
	}))
	require.NoError(t, err)
	require.Len(t, bulk.Msg.Participants, 2)
	assert.Equal(t, "#636fa6", bulk.Msg.Participants[0].Color)
	assert.Equal(t, "#000000", bulk.Msg.Participants[1].Color)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dan"}, participantNames(bulk.Msg.Bill))

	_, err = c.participants.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{BillID: bill.ID}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = c.participants.BulkAddParticipants(context.Background(), connect.NewRequest(&api.BulkAddParticipantsRequest{BillID: bill.ID}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func participantNames(bill *api.Bill) []string {
	names := make([]string, len(bill.Participants))
	for i, p := range bill.Participants {
		names[i] = p.Name
	}
	return names
}

func TestUpdateParticipant(t *testing.T) {
	c, _ := setupTestServer(t)
	bill := createBill(t, c, &api.CreateBillRequest{Participants: people("Alice")})
	alice := bill.Participants[0]

	resp, err := c.participants.UpdateParticipant(context.Background(), connect.NewRequest(&api.UpdateParticipantRequest{
		BillID:        bill.ID,
		ParticipantID: alice.ID,
		Name:          ptr("Alicia"),
	}))
	require.NoError(t, err)
	assert.Equal(t, "Alicia", resp.Msg.Participant.Name)
	assert.Equal(t, alice.Color, resp.Msg.Participant.Color)

	_, err = c.participants.UpdateParticipant(context.Background(), connect.NewRequest(&api.UpdateParticipantRequest{
		BillID:        bill.ID,
		ParticipantID: "nobody",
		Name:          ptr("Ghost"),
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

// Removing a participant drops exactly their splits; nobody else's totals move.
func TestDeleteParticipant_KeepsOtherSplits(t *testing.T) {
	c, _ := setupTestServer(t)
	bill := createBill(t, c, &api.CreateBillRequest{
		Participants: people("Alice", "Bob", "Carol"),
		Items: []*api.NewItem{
			{Name: "Platter", Price: "30"},
			{Name: "Wine", Price: "12"},
		},
	})
	alice, bob, carol := bill.Participants[0].ID, bill.Participants[1].ID, bill.Participants[2].ID
	splitEqually(t, c, bill.ID, bill.Items[0].ID)
	assign(t, c, bill.ID, bill.Items[1].ID, &api.ShareAssignment{ParticipantID: bob, Share: "1"})

	before := summaryOf(t, c, bill.ID)
	assert.Equal(t, "10.00", owed(before, alice).TotalOwed)
	assert.Equal(t, "22.00", owed(before, bob).TotalOwed)

	resp, err := c.participants.DeleteParticipant(context.Background(), connect.NewRequest(&api.ParticipantRef{
		BillID:        bill.ID,
		ParticipantID: carol,
	}))
	require.NoError(t, err)

	after := resp.Msg.Bill
	assert.Equal(t, 2, after.ParticipantsCount)
	platter := after.Items[0]
	require.Len(t, platter.Splits, 2)
	assert.Equal(t, "partial", platter.SplitStatus)
	assert.Equal(t, "0.3333", platter.Splits[0].Share)
	require.Len(t, after.Items[1].Splits, 1)

	summary := summaryOf(t, c, bill.ID)
	assert.Equal(t, "10.00", owed(summary, alice).TotalOwed)
	assert.Equal(t, "22.00", owed(summary, bob).TotalOwed)
	assert.Nil(t, owed(summary, carol))

	_, err = c.participants.DeleteParticipant(context.Background(), connect.NewRequest(&api.ParticipantRef{
		BillID:        bill.ID,
		ParticipantID: carol,
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestDeleteAllParticipants(t *testing.T) {
	c, _ := setupTestServer(t)
	bill := createBill(t, c, &api.CreateBillRequest{
		Participants: people("Alice", "Bob"),
		Items:        []*api.NewItem{{Name: "Pie", Price: "6"}},
	})
	splitEqually(t, c, bill.ID, bill.Items[0].ID)

	resp, err := c.participants.DeleteAllParticipants(context.Background(), connect.NewRequest(&api.BillRef{BillID: bill.ID}))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Msg.Deleted)
	assert.Empty(t, resp.Msg.Bill.Participants)
	assert.Empty(t, resp.Msg.Bill.Items[0].Splits)
	assert.Equal(t, "unsplit", resp.Msg.Bill.Items[0].SplitStatus)
}

func TestGetParticipantSplits(t *testing.T) {
	c, _ := setupTestServer(t)
	bill := createBill(t, c, &api.CreateBillRequest{
		TipType:      "fixed",
		TipValue:     "3",
		Participants: people("Alice", "Bob"),
		Items: []*api.NewItem{
			{Name: "Ramen", Price: "14"},
			{Name: "Gyoza", Price: "8"},
		},
	})
	alice, bob := bill.Participants[0].ID, bill.Participants[1].ID
	assign(t, c, bill.ID, bill.Items[0].ID, &api.ShareAssignment{ParticipantID: alice, Share: "1"})
	splitEqually(t, c, bill.ID, bill.Items[1].ID, alice, bob)

	resp, err := c.participants.GetParticipantSplits(context.Background(), connect.NewRequest(&api.ParticipantRef{
		BillID:        bill.ID,
		ParticipantID: alice,
	}))
	require.NoError(t, err)

	split := resp.Msg.Split
	assert.Equal(t, "Alice", split.ParticipantName)
	assert.Equal(t, "18.00", split.ItemsTotal)
	assert.Equal(t, "2.45", split.TipShare)
	require.Len(t, split.Items, 2)
	assert.Equal(t, "Gyoza", split.Items[1].ItemName)
	assert.Equal(t, "0.5000", split.Items[1].Share)
	assert.Equal(t, "4.00", split.Items[1].Amount)

	_, err = c.participants.GetParticipantSplits(context.Background(), connect.NewRequest(&api.ParticipantRef{
		BillID:        bill.ID,
		ParticipantID: "nobody",
	}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
