// Package api defines the splitbill.v1 wire messages. They travel as JSON
// with snake_case field names; money and shares are decimal strings so no
// precision is lost in transit.
package api

// Bill is a bill with its derived totals. Subtotal, TipAmount and Total
// are computed on every read.
type Bill struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Subtotal          string         `json:"subtotal"`
	TipType           string         `json:"tip_type"`
	TipValue          string         `json:"tip_value"`
	TipAmount         string         `json:"tip_amount"`
	TaxAmount         string         `json:"tax_amount"`
	Total             string         `json:"total"`
	Participants      []*Participant `json:"participants"`
	Items             []*Item        `json:"items"`
	ParticipantsCount int            `json:"participants_count"`
	ItemsCount        int            `json:"items_count"`
	IsFullySplit      bool           `json:"is_fully_split"`
	CreatedAt         int64          `json:"created_at"`
	UpdatedAt         int64          `json:"updated_at"`
}

type Participant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	TotalOwed  string `json:"total_owed"`
	ItemsCount int    `json:"items_count"`
	CreatedAt  int64  `json:"created_at"`
}

type Item struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Price              string       `json:"price"`
	Quantity           int          `json:"quantity"`
	TotalPrice         string       `json:"total_price"`
	Splits             []*ItemSplit `json:"splits"`
	AssignedCount      int          `json:"assigned_count"`
	TotalAssignedShare string       `json:"total_assigned_share"`
	SplitStatus        string       `json:"split_status"`
	CreatedAt          int64        `json:"created_at"`
}

type ItemSplit struct {
	ParticipantID    string `json:"participant_id"`
	ParticipantName  string `json:"participant_name"`
	ParticipantColor string `json:"participant_color"`
	Share            string `json:"share"`
	Amount           string `json:"amount"`
}

// Summary is the per-participant breakdown of a bill.
type Summary struct {
	BillID       string                `json:"bill_id"`
	BillName     string                `json:"bill_name"`
	BillSubtotal string                `json:"bill_subtotal"`
	BillTip      string                `json:"bill_tip"`
	BillTax      string                `json:"bill_tax"`
	BillTotal    string                `json:"bill_total"`
	Participants []*ParticipantSummary `json:"participants"`
}

type ParticipantSummary struct {
	ParticipantID    string         `json:"participant_id"`
	ParticipantName  string         `json:"participant_name"`
	ParticipantColor string         `json:"participant_color"`
	ItemsTotal       string         `json:"items_total"`
	TipShare         string         `json:"tip_share"`
	TaxShare         string         `json:"tax_share"`
	TotalOwed        string         `json:"total_owed"`
	Items            []*SummaryItem `json:"items"`
}

type SummaryItem struct {
	ItemID    string `json:"item_id"`
	ItemName  string `json:"item_name"`
	ItemPrice string `json:"item_price"`
	Share     string `json:"share"`
	Amount    string `json:"amount"`
}

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

// NewParticipant describes a participant to add. An empty color picks the
// next palette color.
type NewParticipant struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// NewItem describes an item to add. Quantity 0 means 1.
type NewItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity,omitempty"`
}

// ShareAssignment gives one participant an explicit share of an item.
type ShareAssignment struct {
	ParticipantID string `json:"participant_id"`
	Share         string `json:"share"`
}

// BillRef names a bill. It is the request for every bill-wide operation
// that takes no other argument.
type BillRef struct {
	BillID string `json:"bill_id"`
}

// BillResponse carries the bill as it stands after the call.
type BillResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillResponse struct{}

type CreateBillRequest struct {
	Name         string            `json:"name,omitempty"`
	TipType      string            `json:"tip_type,omitempty"`
	TipValue     string            `json:"tip_value,omitempty"`
	TaxAmount    string            `json:"tax_amount,omitempty"`
	Participants []*NewParticipant `json:"participants,omitempty"`
	Items        []*NewItem        `json:"items,omitempty"`
}

type ListBillsRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type ListBillsResponse struct {
	Count int     `json:"count"`
	Bills []*Bill `json:"bills"`
}

// UpdateBillRequest changes only the fields that are set.
type UpdateBillRequest struct {
	BillID    string  `json:"bill_id"`
	Name      *string `json:"name,omitempty"`
	TipType   *string `json:"tip_type,omitempty"`
	TipValue  *string `json:"tip_value,omitempty"`
	TaxAmount *string `json:"tax_amount,omitempty"`
}

type GetSummaryResponse struct {
	Summary *Summary `json:"summary"`
}

// CloneBillRequest copies a bill. An empty name means "<name> (copy)".
type CloneBillRequest struct {
	BillID        string `json:"bill_id"`
	Name          string `json:"name,omitempty"`
	IncludeSplits bool   `json:"include_splits,omitempty"`
}

type AddParticipantRequest struct {
	BillID string `json:"bill_id"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`
}

type ParticipantResponse struct {
	Participant *Participant `json:"participant"`
	Bill        *Bill        `json:"bill"`
}

type BulkAddParticipantsRequest struct {
	BillID       string            `json:"bill_id"`
	Participants []*NewParticipant `json:"participants"`
}

type BulkAddParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
	Bill         *Bill          `json:"bill"`
}

type UpdateParticipantRequest struct {
	BillID        string  `json:"bill_id"`
	ParticipantID string  `json:"participant_id"`
	Name          *string `json:"name,omitempty"`
	Color         *string `json:"color,omitempty"`
}

type ParticipantRef struct {
	BillID        string `json:"bill_id"`
	ParticipantID string `json:"participant_id"`
}

type DeleteAllResponse struct {
	Deleted int   `json:"deleted"`
	Bill    *Bill `json:"bill"`
}

type GetParticipantSplitsResponse struct {
	Split *ParticipantSummary `json:"split"`
}

type AddItemRequest struct {
	BillID   string `json:"bill_id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity,omitempty"`
}

type ItemResponse struct {
	Item *Item `json:"item"`
	Bill *Bill `json:"bill"`
}

type BulkAddItemsRequest struct {
	BillID string     `json:"bill_id"`
	Items  []*NewItem `json:"items"`
}

type BulkAddItemsResponse struct {
	Items []*Item `json:"items"`
	Bill  *Bill   `json:"bill"`
}

type UpdateItemRequest struct {
	BillID   string  `json:"bill_id"`
	ItemID   string  `json:"item_id"`
	Name     *string `json:"name,omitempty"`
	Price    *string `json:"price,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
}

type ItemRef struct {
	BillID string `json:"bill_id"`
	ItemID string `json:"item_id"`
}

// SplitItemEquallyRequest splits among ParticipantIDs, or among everyone
// on the bill when the list is empty.
type SplitItemEquallyRequest struct {
	BillID         string   `json:"bill_id"`
	ItemID         string   `json:"item_id"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
}

type AssignSharesRequest struct {
	BillID      string             `json:"bill_id"`
	ItemID      string             `json:"item_id"`
	Assignments []*ShareAssignment `json:"assignments"`
}

type ClearItemSplitsResponse struct {
	Deleted int   `json:"deleted"`
	Item    *Item `json:"item"`
	Bill    *Bill `json:"bill"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
