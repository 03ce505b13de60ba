package rpc

import (
	"context"

	"connectrpc.com/connect"
)

// EventServiceClient is a Connect client for EventService.
type EventServiceClient struct {
	registerParticipant          *connect.Client[RegisterParticipantRequest, RegisterParticipantResponse]
	associateEventToParticipant  *connect.Client[AssociateEventToParticipantRequest, EventResponse]
	associateEventToParticipants *connect.Client[AssociateEventToParticipantsRequest, EventResponse]
	attachLogistics              *connect.Client[AttachLogisticsRequest, AttachLogisticsResponse]
	listReservedLogistics        *connect.Client[ListReservedLogisticsRequest, ListReservedLogisticsResponse]
	getEvent                     *connect.Client[GetEventRequest, EventResponse]
	getParticipant               *connect.Client[GetParticipantRequest, GetParticipantResponse]
	recomputeCosts               *connect.Client[RecomputeCostsRequest, RecomputeCostsResponse]
}

// NewEventServiceClient creates a client for the service at baseURL.
func NewEventServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *EventServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &EventServiceClient{
		registerParticipant:          connect.NewClient[RegisterParticipantRequest, RegisterParticipantResponse](httpClient, baseURL+RegisterParticipantProcedure, opts...),
		associateEventToParticipant:  connect.NewClient[AssociateEventToParticipantRequest, EventResponse](httpClient, baseURL+AssociateEventToParticipantProcedure, opts...),
		associateEventToParticipants: connect.NewClient[AssociateEventToParticipantsRequest, EventResponse](httpClient, baseURL+AssociateEventToParticipantsProcedure, opts...),
		attachLogistics:              connect.NewClient[AttachLogisticsRequest, AttachLogisticsResponse](httpClient, baseURL+AttachLogisticsProcedure, opts...),
		listReservedLogistics:        connect.NewClient[ListReservedLogisticsRequest, ListReservedLogisticsResponse](httpClient, baseURL+ListReservedLogisticsProcedure, opts...),
		getEvent:                     connect.NewClient[GetEventRequest, EventResponse](httpClient, baseURL+GetEventProcedure, opts...),
		getParticipant:               connect.NewClient[GetParticipantRequest, GetParticipantResponse](httpClient, baseURL+GetParticipantProcedure, opts...),
		recomputeCosts:               connect.NewClient[RecomputeCostsRequest, RecomputeCostsResponse](httpClient, baseURL+RecomputeCostsProcedure, opts...),
	}
}

func (c *EventServiceClient) RegisterParticipant(ctx context.Context, req *connect.Request[RegisterParticipantRequest]) (*connect.Response[RegisterParticipantResponse], error) {
	return c.registerParticipant.CallUnary(ctx, req)
}

func (c *EventServiceClient) AssociateEventToParticipant(ctx context.Context, req *connect.Request[AssociateEventToParticipantRequest]) (*connect.Response[EventResponse], error) {
	return c.associateEventToParticipant.CallUnary(ctx, req)
}

func (c *EventServiceClient) AssociateEventToParticipants(ctx context.Context, req *connect.Request[AssociateEventToParticipantsRequest]) (*connect.Response[EventResponse], error) {
	return c.associateEventToParticipants.CallUnary(ctx, req)
}

func (c *EventServiceClient) AttachLogistics(ctx context.Context, req *connect.Request[AttachLogisticsRequest]) (*connect.Response[AttachLogisticsResponse], error) {
	return c.attachLogistics.CallUnary(ctx, req)
}

func (c *EventServiceClient) ListReservedLogistics(ctx context.Context, req *connect.Request[ListReservedLogisticsRequest]) (*connect.Response[ListReservedLogisticsResponse], error) {
	return c.listReservedLogistics.CallUnary(ctx, req)
}

func (c *EventServiceClient) GetEvent(ctx context.Context, req *connect.Request[GetEventRequest]) (*connect.Response[EventResponse], error) {
	return c.getEvent.CallUnary(ctx, req)
}

func (c *EventServiceClient) GetParticipant(ctx context.Context, req *connect.Request[GetParticipantRequest]) (*connect.Response[GetParticipantResponse], error) {
	return c.getParticipant.CallUnary(ctx, req)
}

func (c *EventServiceClient) RecomputeCosts(ctx context.Context, req *connect.Request[RecomputeCostsRequest]) (*connect.Response[RecomputeCostsResponse], error) {
	return c.recomputeCosts.CallUnary(ctx, req)
}

// AuthServiceClient is a Connect client for AuthService.
type AuthServiceClient struct {
	login *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient creates a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &AuthServiceClient{
		login: connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+LoginProcedure, opts...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
