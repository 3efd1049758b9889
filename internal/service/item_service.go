package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/calculator"
	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
	"github.com/mmynk/splitbill/pkg/api"
	"github.com/mmynk/splitbill/pkg/api/apiconnect"
)

var _ apiconnect.ItemServiceHandler = (*ItemService)(nil)

// ItemService implements the Connect ItemService.
type ItemService struct {
	base
}

func NewItemService(store storage.Store, opts ...Option) *ItemService {
	return &ItemService{base: newBase(store, opts)}
}

// AddItem appends an unsplit item. Quantity defaults to 1.
func (s *ItemService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	item, err := newItem(&api.NewItem{Name: req.Msg.Name, Price: req.Msg.Price, Quantity: req.Msg.Quantity})
	if err != nil {
		return nil, connectError(err)
	}
	if err := s.store.AddItems(ctx, bill.ID, []*models.Item{item}); err != nil {
		return nil, s.fail(ctx, "add item", err)
	}
	return s.itemResponse(ctx, bill.ID, item.ID)
}

// BulkAddItems appends several items in one write.
func (s *ItemService) BulkAddItems(ctx context.Context, req *connect.Request[api.BulkAddItemsRequest]) (*connect.Response[api.BulkAddItemsResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if len(req.Msg.Items) == 0 {
		return nil, connectError(invalidf("no items given"))
	}

	added := make([]*models.Item, 0, len(req.Msg.Items))
	for _, ni := range req.Msg.Items {
		item, err := newItem(ni)
		if err != nil {
			return nil, connectError(err)
		}
		added = append(added, item)
	}
	if err := s.store.AddItems(ctx, bill.ID, added); err != nil {
		return nil, s.fail(ctx, "add items", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	resp := &api.BulkAddItemsResponse{Bill: view}
	for _, item := range added {
		resp.Items = append(resp.Items, findItem(view, item.ID))
	}
	return connect.NewResponse(resp), nil
}

// UpdateItem changes an item's name, price or quantity. Its splits keep
// their shares, so the amounts follow the new price.
func (s *ItemService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.ItemResponse], error) {
	bill, item, err := s.ownedItem(ctx, req.Msg.BillID, req.Msg.ItemID)
	if err != nil {
		return nil, err
	}

	if req.Msg.Name != nil {
		name := strings.TrimSpace(*req.Msg.Name)
		if name == "" {
			return nil, connectError(invalidf("item name cannot be empty"))
		}
		item.Name = name
	}
	if req.Msg.Price != nil {
		price, err := calculator.ParseAmount(*req.Msg.Price)
		if err != nil {
			return nil, connectError(err)
		}
		item.Price = price
	}
	if req.Msg.Quantity != nil {
		if *req.Msg.Quantity < 1 {
			return nil, connectError(invalidf("quantity of %q must be at least 1", item.Name))
		}
		item.Quantity = *req.Msg.Quantity
	}
	if err := s.store.UpdateItem(ctx, &item); err != nil {
		return nil, s.fail(ctx, "update item", err)
	}
	return s.itemResponse(ctx, bill.ID, item.ID)
}

// DeleteItem removes an item and its splits.
func (s *ItemService) DeleteItem(ctx context.Context, req *connect.Request[api.ItemRef]) (*connect.Response[api.BillResponse], error) {
	bill, item, err := s.ownedItem(ctx, req.Msg.BillID, req.Msg.ItemID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteItem(ctx, bill.ID, item.ID); err != nil {
		return nil, s.fail(ctx, "delete item", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

// DeleteAllItems removes every item on the bill.
func (s *ItemService) DeleteAllItems(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.store.DeleteAllItems(ctx, bill.ID)
	if err != nil {
		return nil, s.fail(ctx, "delete items", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.DeleteAllResponse{Deleted: deleted, Bill: view}), nil
}

// SplitItemEqually replaces the item's splits with equal shares for the
// listed participants, or for everyone when none are listed.
func (s *ItemService) SplitItemEqually(ctx context.Context, req *connect.Request[api.SplitItemEquallyRequest]) (*connect.Response[api.ItemResponse], error) {
	bill, item, err := s.ownedItem(ctx, req.Msg.BillID, req.Msg.ItemID)
	if err != nil {
		return nil, err
	}

	var sel calculator.Selection = calculator.AllParticipants{}
	if len(req.Msg.ParticipantIDs) > 0 {
		sel = calculator.Subset(req.Msg.ParticipantIDs)
	}
	split, err := calculator.SplitEqually(item, bill.Participants, sel)
	if err != nil {
		return nil, connectError(err)
	}
	if err := s.store.ReplaceSplits(ctx, split); err != nil {
		return nil, s.fail(ctx, "split item", err)
	}
	return s.itemResponse(ctx, bill.ID, item.ID)
}

// AssignShares replaces the item's splits with explicit shares. Every
// share is checked before anything is written.
func (s *ItemService) AssignShares(ctx context.Context, req *connect.Request[api.AssignSharesRequest]) (*connect.Response[api.ItemResponse], error) {
	bill, item, err := s.ownedItem(ctx, req.Msg.BillID, req.Msg.ItemID)
	if err != nil {
		return nil, err
	}

	assignments := make([]calculator.Assignment, 0, len(req.Msg.Assignments))
	for _, a := range req.Msg.Assignments {
		if a == nil {
			return nil, connectError(invalidf("empty assignment"))
		}
		share, err := calculator.ParseShare(a.Share)
		if err != nil {
			return nil, connectError(err)
		}
		assignments = append(assignments, calculator.Assignment{ParticipantID: a.ParticipantID, Share: share})
	}

	assigned, err := calculator.AssignShares(item, bill.Participants, assignments)
	if err != nil {
		return nil, connectError(err)
	}
	if err := s.store.ReplaceSplits(ctx, assigned); err != nil {
		return nil, s.fail(ctx, "assign shares", err)
	}
	return s.itemResponse(ctx, bill.ID, item.ID)
}

// ClearItemSplits removes every split on one item and reports how many there were.
func (s *ItemService) ClearItemSplits(ctx context.Context, req *connect.Request[api.ItemRef]) (*connect.Response[api.ClearItemSplitsResponse], error) {
	bill, item, err := s.ownedItem(ctx, req.Msg.BillID, req.Msg.ItemID)
	if err != nil {
		return nil, err
	}
	deleted := len(item.Splits)
	if err := s.store.ReplaceSplits(ctx, calculator.ClearSplits(item)); err != nil {
		return nil, s.fail(ctx, "clear item splits", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ClearItemSplitsResponse{
		Deleted: deleted,
		Item:    findItem(view, item.ID),
		Bill:    view,
	}), nil
}

func (s *ItemService) ownedItem(ctx context.Context, billID, itemID string) (*models.Bill, models.Item, error) {
	bill, err := s.ownedBill(ctx, billID)
	if err != nil {
		return nil, models.Item{}, err
	}
	item, ok := bill.Item(itemID)
	if !ok {
		return nil, models.Item{}, notFound("item", itemID)
	}
	return bill, item, nil
}

func (s *ItemService) itemResponse(ctx context.Context, billID, itemID string) (*connect.Response[api.ItemResponse], error) {
	view, err := s.render(ctx, billID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ItemResponse{Item: findItem(view, itemID), Bill: view}), nil
}
