package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// VerificationServiceName is the fully-qualified name of the VerificationService service.
const VerificationServiceName = "gearcheck.v1.VerificationService"

// Fully-qualified names of the VerificationService procedures.
const (
	VerificationServiceListPeopleProcedure       = "/gearcheck.v1.VerificationService/ListPeople"
	VerificationServiceStartSessionProcedure     = "/gearcheck.v1.VerificationService/StartSession"
	VerificationServiceSelectPersonProcedure     = "/gearcheck.v1.VerificationService/SelectPerson"
	VerificationServiceSetItemStateProcedure     = "/gearcheck.v1.VerificationService/SetItemState"
	VerificationServiceSaveVerificationProcedure = "/gearcheck.v1.VerificationService/SaveVerification"
	VerificationServiceResetSessionProcedure     = "/gearcheck.v1.VerificationService/ResetSession"
	VerificationServiceEndSessionProcedure       = "/gearcheck.v1.VerificationService/EndSession"
)

// VerificationServiceHandler is implemented by the verification form backend.
type VerificationServiceHandler interface {
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[SessionResponse], error)
	SelectPerson(context.Context, *connect.Request[SelectPersonRequest]) (*connect.Response[SessionResponse], error)
	SetItemState(context.Context, *connect.Request[SetItemStateRequest]) (*connect.Response[SessionResponse], error)
	SaveVerification(context.Context, *connect.Request[SaveVerificationRequest]) (*connect.Response[SaveVerificationResponse], error)
	ResetSession(context.Context, *connect.Request[ResetSessionRequest]) (*connect.Response[SessionResponse], error)
	EndSession(context.Context, *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error)
}

// NewVerificationServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. The JSON codec is always installed.
func NewVerificationServiceHandler(svc VerificationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(VerificationServiceListPeopleProcedure, connect.NewUnaryHandler(VerificationServiceListPeopleProcedure, svc.ListPeople, opts...))
	mux.Handle(VerificationServiceStartSessionProcedure, connect.NewUnaryHandler(VerificationServiceStartSessionProcedure, svc.StartSession, opts...))
	mux.Handle(VerificationServiceSelectPersonProcedure, connect.NewUnaryHandler(VerificationServiceSelectPersonProcedure, svc.SelectPerson, opts...))
	mux.Handle(VerificationServiceSetItemStateProcedure, connect.NewUnaryHandler(VerificationServiceSetItemStateProcedure, svc.SetItemState, opts...))
	mux.Handle(VerificationServiceSaveVerificationProcedure, connect.NewUnaryHandler(VerificationServiceSaveVerificationProcedure, svc.SaveVerification, opts...))
	mux.Handle(VerificationServiceResetSessionProcedure, connect.NewUnaryHandler(VerificationServiceResetSessionProcedure, svc.ResetSession, opts...))
	mux.Handle(VerificationServiceEndSessionProcedure, connect.NewUnaryHandler(VerificationServiceEndSessionProcedure, svc.EndSession, opts...))
	return "/" + VerificationServiceName + "/", mux
}

// VerificationServiceClient is a client for the gearcheck.v1.VerificationService service.
type VerificationServiceClient struct {
	listPeople       *connect.Client[ListPeopleRequest, ListPeopleResponse]
	startSession     *connect.Client[StartSessionRequest, SessionResponse]
	selectPerson     *connect.Client[SelectPersonRequest, SessionResponse]
	setItemState     *connect.Client[SetItemStateRequest, SessionResponse]
	saveVerification *connect.Client[SaveVerificationRequest, SaveVerificationResponse]
	resetSession     *connect.Client[ResetSessionRequest, SessionResponse]
	endSession       *connect.Client[EndSessionRequest, EndSessionResponse]
}

// NewVerificationServiceClient constructs a client for the
// gearcheck.v1.VerificationService service. baseURL is the server root,
// e.g. http://localhost:8080.
func NewVerificationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *VerificationServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &VerificationServiceClient{
		listPeople:       connect.NewClient[ListPeopleRequest, ListPeopleResponse](httpClient, baseURL+VerificationServiceListPeopleProcedure, opts...),
		startSession:     connect.NewClient[StartSessionRequest, SessionResponse](httpClient, baseURL+VerificationServiceStartSessionProcedure, opts...),
		selectPerson:     connect.NewClient[SelectPersonRequest, SessionResponse](httpClient, baseURL+VerificationServiceSelectPersonProcedure, opts...),
		setItemState:     connect.NewClient[SetItemStateRequest, SessionResponse](httpClient, baseURL+VerificationServiceSetItemStateProcedure, opts...),
		saveVerification: connect.NewClient[SaveVerificationRequest, SaveVerificationResponse](httpClient, baseURL+VerificationServiceSaveVerificationProcedure, opts...),
		resetSession:     connect.NewClient[ResetSessionRequest, SessionResponse](httpClient, baseURL+VerificationServiceResetSessionProcedure, opts...),
		endSession:       connect.NewClient[EndSessionRequest, EndSessionResponse](httpClient, baseURL+VerificationServiceEndSessionProcedure, opts...),
	}
}

// ListPeople calls gearcheck.v1.VerificationService.ListPeople.
func (c *VerificationServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

// StartSession calls gearcheck.v1.VerificationService.StartSession.
func (c *VerificationServiceClient) StartSession(ctx context.Context, req *connect.Request[StartSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

// SelectPerson calls gearcheck.v1.VerificationService.SelectPerson.
func (c *VerificationServiceClient) SelectPerson(ctx context.Context, req *connect.Request[SelectPersonRequest]) (*connect.Response[SessionResponse], error) {
	return c.selectPerson.CallUnary(ctx, req)
}

// SetItemState calls gearcheck.v1.VerificationService.SetItemState.
func (c *VerificationServiceClient) SetItemState(ctx context.Context, req *connect.Request[SetItemStateRequest]) (*connect.Response[SessionResponse], error) {
	return c.setItemState.CallUnary(ctx, req)
}

// SaveVerification calls gearcheck.v1.VerificationService.SaveVerification.
func (c *VerificationServiceClient) SaveVerification(ctx context.Context, req *connect.Request[SaveVerificationRequest]) (*connect.Response[SaveVerificationResponse], error) {
	return c.saveVerification.CallUnary(ctx, req)
}

// ResetSession calls gearcheck.v1.VerificationService.ResetSession.
func (c *VerificationServiceClient) ResetSession(ctx context.Context, req *connect.Request[ResetSessionRequest]) (*connect.Response[SessionResponse], error) {
	return c.resetSession.CallUnary(ctx, req)
}

// EndSession calls gearcheck.v1.VerificationService.EndSession.
func (c *VerificationServiceClient) EndSession(ctx context.Context, req *connect.Request[EndSessionRequest]) (*connect.Response[EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}
