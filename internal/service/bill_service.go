package service

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
	"github.com/mmynk/splitbill/pkg/api"
	"github.com/mmynk/splitbill/pkg/api/apiconnect"
)

// defaultPageSize applies when ListBills is called without a limit.
const defaultPageSize = 20

var _ apiconnect.BillServiceHandler = (*BillService)(nil)

// BillService implements the Connect BillService.
type BillService struct {
	base
}

// NewBillService creates a new BillService with the given storage backend.
func NewBillService(store storage.Store, opts ...Option) *BillService {
	return &BillService{base: newBase(store, opts)}
}

// CreateBill creates a bill owned by the caller, optionally with its first
// participants and items.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := billFromRequest(userID, req.Msg)
	if err != nil {
		return nil, connectError(err)
	}
	if err := calculator.Validate(bill); err != nil {
		return nil, connectError(err)
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, s.fail(ctx, "create bill", err)
	}
	s.logger.InfoContext(ctx, "Bill created", "bill_id", bill.ID, "participants", len(bill.Participants), "items", len(bill.Items))

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

func billFromRequest(ownerID string, msg *api.CreateBillRequest) (*models.Bill, error) {
	kind, err := parseTipKind(msg.TipType)
	if err != nil {
		return nil, err
	}
	tip, err := calculator.ParseAmount(msg.TipValue)
	if err != nil {
		return nil, err
	}
	tax, err := calculator.ParseAmount(msg.TaxAmount)
	if err != nil {
		return nil, err
	}

	bill := &models.Bill{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(msg.Name),
		TipKind:   kind,
		TipValue:  tip,
		TaxAmount: tax,
	}
	for i, np := range msg.Participants {
		p, err := newParticipant(np, i)
		if err != nil {
			return nil, err
		}
		bill.Participants = append(bill.Participants, *p)
	}
	for _, ni := range msg.Items {
		item, err := newItem(ni)
		if err != nil {
			return nil, err
		}
		bill.Items = append(bill.Items, *item)
	}
	return bill, nil
}

// GetBill returns a bill with every derived value recomputed.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	view, err := s.view(ctx, bill)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

// ListBills returns a page of the caller's bills, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	limit, offset := req.Msg.Limit, req.Msg.Offset
	if limit < 0 || offset < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("limit and offset must not be negative"))
	}
	if limit == 0 {
		limit = defaultPageSize
	}

	bills, count, err := s.store.ListBills(ctx, userID, limit, offset)
	if err != nil {
		return nil, s.fail(ctx, "list bills", err)
	}

	resp := &api.ListBillsResponse{Count: count, Bills: make([]*api.Bill, 0, len(bills))}
	for _, bill := range bills {
		view, err := s.view(ctx, bill)
		if err != nil {
			return nil, err
		}
		resp.Bills = append(resp.Bills, view)
	}
	return connect.NewResponse(resp), nil
}

// UpdateBill changes the name, tip policy or tax of a bill. Unset fields
// keep their value.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	if err := applyBillUpdate(bill, req.Msg); err != nil {
		return nil, connectError(err)
	}
	if err := calculator.Validate(bill); err != nil {
		return nil, connectError(err)
	}
	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, s.fail(ctx, "update bill", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

func applyBillUpdate(bill *models.Bill, msg *api.UpdateBillRequest) error {
	if msg.Name != nil {
		name := strings.TrimSpace(*msg.Name)
		if name == "" {
			return invalidf("bill name cannot be empty")
		}
		bill.Name = name
	}
	if msg.TipType != nil {
		kind, err := parseTipKind(*msg.TipType)
		if err != nil {
			return err
		}
		bill.TipKind = kind
	}
	if msg.TipValue != nil {
		tip, err := calculator.ParseAmount(*msg.TipValue)
		if err != nil {
			return err
		}
		bill.TipValue = tip
	}
	if msg.TaxAmount != nil {
		tax, err := calculator.ParseAmount(*msg.TaxAmount)
		if err != nil {
			return err
		}
		bill.TaxAmount = tax
	}
	return nil
}

// DeleteBill removes a bill with everything on it.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.DeleteBillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteBill(ctx, bill.ID); err != nil {
		return nil, s.fail(ctx, "delete bill", err)
	}
	s.logger.InfoContext(ctx, "Bill deleted", "bill_id", bill.ID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// GetSummary returns what each participant owes.
func (s *BillService) GetSummary(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.GetSummaryResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(bill)
	if err != nil {
		return nil, s.fail(ctx, "summarize bill", err)
	}
	return connect.NewResponse(&api.GetSummaryResponse{Summary: ToAPISummary(summary)}), nil
}

// Recalculate returns the bill recomputed from a fresh read. Derived values
// are never stored, so this is the same view GetBill produces.
func (s *BillService) Recalculate(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	return s.GetBill(ctx, req)
}

// CloneBill copies a bill into a new one owned by the caller. Splits are
// copied only when asked for.
func (s *BillService) CloneBill(ctx context.Context, req *connect.Request[api.CloneBillRequest]) (*connect.Response[api.BillResponse], error) {
	src, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		name = src.Name + " (copy)"
	}
	clone := cloneBill(src, name, req.Msg.IncludeSplits)
	if err := s.store.CreateBill(ctx, clone); err != nil {
		return nil, s.fail(ctx, "clone bill", err)
	}
	s.logger.InfoContext(ctx, "Bill cloned", "source_id", src.ID, "bill_id", clone.ID, "include_splits", req.Msg.IncludeSplits)

	view, err := s.render(ctx, clone.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

// cloneBill gives the copy fresh IDs and points its splits at the copied
// participants.
func cloneBill(src *models.Bill, name string, includeSplits bool) *models.Bill {
	clone := src.Clone()
	clone.ID = ""
	clone.Name = name
	clone.CreatedAt = 0

	ids := make(map[string]string, len(clone.Participants))
	for i := range clone.Participants {
		p := &clone.Participants[i]
		ids[p.ID] = uuid.NewString()
		p.ID = ids[p.ID]
		p.CreatedAt = 0
	}
	for i := range clone.Items {
		item := &clone.Items[i]
		item.ID = ""
		item.CreatedAt = 0
		if !includeSplits {
			*item = calculator.ClearSplits(*item)
			continue
		}
		for j := range item.Splits {
			item.Splits[j].ParticipantID = ids[item.Splits[j].ParticipantID]
		}
	}
	return clone
}

// ClearBillSplits removes every split on every item.
func (s *BillService) ClearBillSplits(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if err := s.store.ReplaceBillSplits(ctx, calculator.ClearBillSplits(bill)); err != nil {
		return nil, s.fail(ctx, "clear bill splits", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

// ResetBill drops every participant, item and split and zeroes tip and tax.
func (s *BillService) ResetBill(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if err := s.store.ResetBill(ctx, bill.ID); err != nil {
		return nil, s.fail(ctx, "reset bill", err)
	}
	s.logger.InfoContext(ctx, "Bill reset", "bill_id", bill.ID)

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

// SplitAllEqually splits every item equally among all participants.
func (s *BillService) SplitAllEqually(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	split, err := calculator.SplitAllEqually(bill)
	if err != nil {
		return nil, connectError(err)
	}
	if err := s.store.ReplaceBillSplits(ctx, split); err != nil {
		return nil, s.fail(ctx, "split all equally", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}
