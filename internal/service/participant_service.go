package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
	"github.com/mmynk/splitbill/pkg/api"
	"github.com/mmynk/splitbill/pkg/api/apiconnect"
)

var _ apiconnect.ParticipantServiceHandler = (*ParticipantService)(nil)

// ParticipantService implements the Connect ParticipantService.
type ParticipantService struct {
	base
}

func NewParticipantService(store storage.Store, opts ...Option) *ParticipantService {
	return &ParticipantService{base: newBase(store, opts)}
}

// AddParticipant appends one participant. Without a color it gets the
// palette color for its position.
func (s *ParticipantService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.ParticipantResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	p, err := newParticipant(&api.NewParticipant{Name: req.Msg.Name, Color: req.Msg.Color}, len(bill.Participants))
	if err != nil {
		return nil, connectError(err)
	}
	if err := s.store.AddParticipants(ctx, bill.ID, []*models.Participant{p}); err != nil {
		return nil, s.fail(ctx, "add participant", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ParticipantResponse{
		Participant: findParticipant(view, p.ID),
		Bill:        view,
	}), nil
}

// BulkAddParticipants appends several participants in one write.
func (s *ParticipantService) BulkAddParticipants(ctx context.Context, req *connect.Request[api.BulkAddParticipantsRequest]) (*connect.Response[api.BulkAddParticipantsResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if len(req.Msg.Participants) == 0 {
		return nil, connectError(invalidf("no participants given"))
	}

	added := make([]*models.Participant, 0, len(req.Msg.Participants))
	for i, np := range req.Msg.Participants {
		p, err := newParticipant(np, len(bill.Participants)+i)
		if err != nil {
			return nil, connectError(err)
		}
		added = append(added, p)
	}
	if err := s.store.AddParticipants(ctx, bill.ID, added); err != nil {
		return nil, s.fail(ctx, "add participants", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	resp := &api.BulkAddParticipantsResponse{Bill: view}
	for _, p := range added {
		resp.Participants = append(resp.Participants, findParticipant(view, p.ID))
	}
	return connect.NewResponse(resp), nil
}

// UpdateParticipant renames or recolors a participant.
func (s *ParticipantService) UpdateParticipant(ctx context.Context, req *connect.Request[api.UpdateParticipantRequest]) (*connect.Response[api.ParticipantResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	p, ok := bill.Participant(req.Msg.ParticipantID)
	if !ok {
		return nil, notFound("participant", req.Msg.ParticipantID)
	}

	if req.Msg.Name != nil {
		name := strings.TrimSpace(*req.Msg.Name)
		if name == "" {
			return nil, connectError(invalidf("participant name cannot be empty"))
		}
		p.Name = name
	}
	if req.Msg.Color != nil {
		color := strings.TrimSpace(*req.Msg.Color)
		if color == "" {
			return nil, connectError(invalidf("participant color cannot be empty"))
		}
		p.Color = color
	}
	if err := s.store.UpdateParticipant(ctx, &p); err != nil {
		return nil, s.fail(ctx, "update participant", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.ParticipantResponse{
		Participant: findParticipant(view, p.ID),
		Bill:        view,
	}), nil
}

// DeleteParticipant removes a participant and exactly their splits. The
// cost they carried becomes unassigned.
func (s *ParticipantService) DeleteParticipant(ctx context.Context, req *connect.Request[api.ParticipantRef]) (*connect.Response[api.BillResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if _, ok := bill.Participant(req.Msg.ParticipantID); !ok {
		return nil, notFound("participant", req.Msg.ParticipantID)
	}
	if err := s.store.DeleteParticipant(ctx, bill.ID, req.Msg.ParticipantID); err != nil {
		return nil, s.fail(ctx, "delete participant", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.BillResponse{Bill: view}), nil
}

// DeleteAllParticipants removes every participant and so every split.
func (s *ParticipantService) DeleteAllParticipants(ctx context.Context, req *connect.Request[api.BillRef]) (*connect.Response[api.DeleteAllResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	deleted, err := s.store.DeleteAllParticipants(ctx, bill.ID)
	if err != nil {
		return nil, s.fail(ctx, "delete participants", err)
	}

	view, err := s.render(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.DeleteAllResponse{Deleted: deleted, Bill: view}), nil
}

// GetParticipantSplits returns one participant's line of the summary.
func (s *ParticipantService) GetParticipantSplits(ctx context.Context, req *connect.Request[api.ParticipantRef]) (*connect.Response[api.GetParticipantSplitsResponse], error) {
	bill, err := s.ownedBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summarize(bill)
	if err != nil {
		return nil, s.fail(ctx, "summarize bill", err)
	}
	split, ok := summary.Participant(req.Msg.ParticipantID)
	if !ok {
		return nil, notFound("participant", req.Msg.ParticipantID)
	}
	return connect.NewResponse(&api.GetParticipantSplitsResponse{Split: toAPIParticipantSummary(split)}), nil
}

