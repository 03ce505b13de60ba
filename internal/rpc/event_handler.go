// Package rpc exposes the event service over the Connect protocol with JSON
// bodies.
package rpc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/eventsdesk/internal/costs"
	"github.com/mmynk/eventsdesk/internal/middleware"
	"github.com/mmynk/eventsdesk/internal/service"
)

const EventServiceName = "eventsdesk.v1.EventService"

const (
	RegisterParticipantProcedure          = "/" + EventServiceName + "/RegisterParticipant"
	AssociateEventToParticipantProcedure  = "/" + EventServiceName + "/AssociateEventToParticipant"
	AssociateEventToParticipantsProcedure = "/" + EventServiceName + "/AssociateEventToParticipants"
	AttachLogisticsProcedure              = "/" + EventServiceName + "/AttachLogistics"
	ListReservedLogisticsProcedure        = "/" + EventServiceName + "/ListReservedLogistics"
	GetEventProcedure                     = "/" + EventServiceName + "/GetEvent"
	GetParticipantProcedure               = "/" + EventServiceName + "/GetParticipant"
	RecomputeCostsProcedure               = "/" + EventServiceName + "/RecomputeCosts"
)

// CostRecomputer triggers an out-of-schedule cost recompute.
type CostRecomputer interface {
	RecomputeCosts(ctx context.Context) (costs.Report, error)
}

// EventHandler implements the EventService RPCs.
type EventHandler struct {
	svc    *service.EventService
	costs  CostRecomputer
	logger *slog.Logger
}

// NewEventHandler creates a handler backed by the given service and aggregator.
func NewEventHandler(svc *service.EventService, recomputer CostRecomputer, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		svc:    svc,
		costs:  recomputer,
		logger: logger,
	}
}

// NewEventServiceHandler builds an HTTP handler serving every EventService
// procedure, and returns the path to mount it on.
func NewEventServiceHandler(h *EventHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	mux := http.NewServeMux()
	mux.Handle(RegisterParticipantProcedure, connect.NewUnaryHandler(RegisterParticipantProcedure, h.RegisterParticipant, opts...))
	mux.Handle(AssociateEventToParticipantProcedure, connect.NewUnaryHandler(AssociateEventToParticipantProcedure, h.AssociateEventToParticipant, opts...))
	mux.Handle(AssociateEventToParticipantsProcedure, connect.NewUnaryHandler(AssociateEventToParticipantsProcedure, h.AssociateEventToParticipants, opts...))
	mux.Handle(AttachLogisticsProcedure, connect.NewUnaryHandler(AttachLogisticsProcedure, h.AttachLogistics, opts...))
	mux.Handle(ListReservedLogisticsProcedure, connect.NewUnaryHandler(ListReservedLogisticsProcedure, h.ListReservedLogistics, opts...))
	mux.Handle(GetEventProcedure, connect.NewUnaryHandler(GetEventProcedure, h.GetEvent, opts...))
	mux.Handle(GetParticipantProcedure, connect.NewUnaryHandler(GetParticipantProcedure, h.GetParticipant, opts...))
	mux.Handle(RecomputeCostsProcedure, connect.NewUnaryHandler(RecomputeCostsProcedure, h.RecomputeCosts, opts...))

	return "/" + EventServiceName + "/", mux
}

// RegisterParticipant registers a new participant.
func (h *EventHandler) RegisterParticipant(ctx context.Context, req *connect.Request[RegisterParticipantRequest]) (*connect.Response[RegisterParticipantResponse], error) {
	if req.Msg.Participant == nil {
		return nil, invalidArgument(errors.New("participant is required"))
	}
	h.logger.Info("RegisterParticipant request received",
		"surname", req.Msg.Participant.Surname,
		"role", req.Msg.Participant.Role,
	)

	participant, err := h.svc.RegisterParticipant(ctx, participantToModel(req.Msg.Participant))
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&RegisterParticipantResponse{
		Participant: participantFromModel(participant),
	}), nil
}

// AssociateEventToParticipant associates an event with one participant by ID.
func (h *EventHandler) AssociateEventToParticipant(ctx context.Context, req *connect.Request[AssociateEventToParticipantRequest]) (*connect.Response[EventResponse], error) {
	if req.Msg.Event == nil {
		return nil, invalidArgument(errors.New("event is required"))
	}
	h.logger.Info("AssociateEventToParticipant request received",
		"participant_id", req.Msg.ParticipantID,
		"description", req.Msg.Event.Description,
	)

	event, err := eventToModel(req.Msg.Event)
	if err != nil {
		return nil, invalidArgument(err)
	}
	// Only the participant named by ID is associated here.
	event.Participants = nil

	saved, err := h.svc.AssociateEventToParticipant(ctx, event, req.Msg.ParticipantID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&EventResponse{Event: eventFromModel(saved)}), nil
}

// AssociateEventToParticipants associates an event with every participant it embeds.
func (h *EventHandler) AssociateEventToParticipants(ctx context.Context, req *connect.Request[AssociateEventToParticipantsRequest]) (*connect.Response[EventResponse], error) {
	if req.Msg.Event == nil {
		return nil, invalidArgument(errors.New("event is required"))
	}
	h.logger.Info("AssociateEventToParticipants request received",
		"description", req.Msg.Event.Description,
		"participants_count", len(req.Msg.Event.Participants),
	)

	event, err := eventToModel(req.Msg.Event)
	if err != nil {
		return nil, invalidArgument(err)
	}

	saved, err := h.svc.AssociateEventToParticipants(ctx, event)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&EventResponse{Event: eventFromModel(saved)}), nil
}

// AttachLogistics attaches a logistics item to the event with the given description.
func (h *EventHandler) AttachLogistics(ctx context.Context, req *connect.Request[AttachLogisticsRequest]) (*connect.Response[AttachLogisticsResponse], error) {
	if req.Msg.Logistics == nil {
		return nil, invalidArgument(errors.New("logistics is required"))
	}
	h.logger.Info("AttachLogistics request received",
		"event_description", req.Msg.EventDescription,
		"reserved", req.Msg.Logistics.Reserved,
	)

	saved, err := h.svc.AttachLogistics(ctx, logisticsToModel(req.Msg.Logistics), req.Msg.EventDescription)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&AttachLogisticsResponse{Logistics: logisticsFromModel(*saved)}), nil
}

// ListReservedLogistics returns reserved logistics of events starting within the range.
func (h *EventHandler) ListReservedLogistics(ctx context.Context, req *connect.Request[ListReservedLogisticsRequest]) (*connect.Response[ListReservedLogisticsResponse], error) {
	h.logger.Info("ListReservedLogistics request received",
		"start_date", req.Msg.StartDate,
		"end_date", req.Msg.EndDate,
	)

	start, err := parseDate("start_date", req.Msg.StartDate)
	if err != nil {
		return nil, invalidArgument(err)
	}
	end, err := parseDate("end_date", req.Msg.EndDate)
	if err != nil {
		return nil, invalidArgument(err)
	}

	items, err := h.svc.ListReservedLogistics(ctx, start, end)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]Logistics, len(items))
	for i, item := range items {
		out[i] = logisticsFromModel(item)
	}

	return connect.NewResponse(&ListReservedLogisticsResponse{Logistics: out}), nil
}

// GetEvent retrieves an event by ID.
func (h *EventHandler) GetEvent(ctx context.Context, req *connect.Request[GetEventRequest]) (*connect.Response[EventResponse], error) {
	event, err := h.svc.GetEvent(ctx, req.Msg.EventID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&EventResponse{Event: eventFromModel(event)}), nil
}

// GetParticipant retrieves a participant by ID.
func (h *EventHandler) GetParticipant(ctx context.Context, req *connect.Request[GetParticipantRequest]) (*connect.Response[GetParticipantResponse], error) {
	participant, err := h.svc.GetParticipant(ctx, req.Msg.ParticipantID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetParticipantResponse{Participant: participantFromModel(participant)}), nil
}

// RecomputeCosts runs the cost aggregator immediately.
func (h *EventHandler) RecomputeCosts(ctx context.Context, req *connect.Request[RecomputeCostsRequest]) (*connect.Response[RecomputeCostsResponse], error) {
	h.logger.Info("RecomputeCosts requested", "operator", middleware.GetOperator(ctx))

	report, err := h.costs.RecomputeCosts(ctx)
	if err != nil && report.Updated == 0 {
		return nil, toConnectError(err)
	}
	if err != nil {
		h.logger.Warn("RecomputeCosts finished with failures", "run_id", report.RunID, "error", err)
	}

	return connect.NewResponse(&RecomputeCostsResponse{
		RunID:   report.RunID,
		Matched: report.Matched,
		Updated: report.Updated,
		Failed:  report.Failed,
	}), nil
}
