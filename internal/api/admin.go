package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AdminServiceName is the fully-qualified name of the AdminService service.
const AdminServiceName = "gearcheck.v1.AdminService"

// Fully-qualified names of the AdminService procedures.
const (
	AdminServiceLoginProcedure             = "/gearcheck.v1.AdminService/Login"
	AdminServiceGetSummaryProcedure        = "/gearcheck.v1.AdminService/GetSummary"
	AdminServiceGetBackupDiffProcedure     = "/gearcheck.v1.AdminService/GetBackupDiff"
	AdminServiceAddPersonProcedure         = "/gearcheck.v1.AdminService/AddPerson"
	AdminServiceRemovePersonProcedure      = "/gearcheck.v1.AdminService/RemovePerson"
	AdminServiceEditPersonProcedure        = "/gearcheck.v1.AdminService/EditPerson"
	AdminServiceListVerificationsProcedure = "/gearcheck.v1.AdminService/ListVerifications"
)

// AdminServiceHandler is implemented by the admin backend. Every procedure
// except Login expects an admin token.
type AdminServiceHandler interface {
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetSummary(context.Context, *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error)
	GetBackupDiff(context.Context, *connect.Request[GetBackupDiffRequest]) (*connect.Response[GetBackupDiffResponse], error)
	AddPerson(context.Context, *connect.Request[AddPersonRequest]) (*connect.Response[MutationResponse], error)
	RemovePerson(context.Context, *connect.Request[RemovePersonRequest]) (*connect.Response[MutationResponse], error)
	EditPerson(context.Context, *connect.Request[EditPersonRequest]) (*connect.Response[MutationResponse], error)
	ListVerifications(context.Context, *connect.Request[ListVerificationsRequest]) (*connect.Response[ListVerificationsResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. The JSON codec is always installed.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(AdminServiceLoginProcedure, connect.NewUnaryHandler(AdminServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AdminServiceGetSummaryProcedure, connect.NewUnaryHandler(AdminServiceGetSummaryProcedure, svc.GetSummary, opts...))
	mux.Handle(AdminServiceGetBackupDiffProcedure, connect.NewUnaryHandler(AdminServiceGetBackupDiffProcedure, svc.GetBackupDiff, opts...))
	mux.Handle(AdminServiceAddPersonProcedure, connect.NewUnaryHandler(AdminServiceAddPersonProcedure, svc.AddPerson, opts...))
	mux.Handle(AdminServiceRemovePersonProcedure, connect.NewUnaryHandler(AdminServiceRemovePersonProcedure, svc.RemovePerson, opts...))
	mux.Handle(AdminServiceEditPersonProcedure, connect.NewUnaryHandler(AdminServiceEditPersonProcedure, svc.EditPerson, opts...))
	mux.Handle(AdminServiceListVerificationsProcedure, connect.NewUnaryHandler(AdminServiceListVerificationsProcedure, svc.ListVerifications, opts...))
	return "/" + AdminServiceName + "/", mux
}

// AdminServiceClient is a client for the gearcheck.v1.AdminService service.
type AdminServiceClient struct {
	login             *connect.Client[LoginRequest, LoginResponse]
	getSummary        *connect.Client[GetSummaryRequest, GetSummaryResponse]
	getBackupDiff     *connect.Client[GetBackupDiffRequest, GetBackupDiffResponse]
	addPerson         *connect.Client[AddPersonRequest, MutationResponse]
	removePerson      *connect.Client[RemovePersonRequest, MutationResponse]
	editPerson        *connect.Client[EditPersonRequest, MutationResponse]
	listVerifications *connect.Client[ListVerificationsRequest, ListVerificationsResponse]
}

// NewAdminServiceClient constructs a client for the gearcheck.v1.AdminService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AdminServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &AdminServiceClient{
		login:             connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AdminServiceLoginProcedure, opts...),
		getSummary:        connect.NewClient[GetSummaryRequest, GetSummaryResponse](httpClient, baseURL+AdminServiceGetSummaryProcedure, opts...),
		getBackupDiff:     connect.NewClient[GetBackupDiffRequest, GetBackupDiffResponse](httpClient, baseURL+AdminServiceGetBackupDiffProcedure, opts...),
		addPerson:         connect.NewClient[AddPersonRequest, MutationResponse](httpClient, baseURL+AdminServiceAddPersonProcedure, opts...),
		removePerson:      connect.NewClient[RemovePersonRequest, MutationResponse](httpClient, baseURL+AdminServiceRemovePersonProcedure, opts...),
		editPerson:        connect.NewClient[EditPersonRequest, MutationResponse](httpClient, baseURL+AdminServiceEditPersonProcedure, opts...),
		listVerifications: connect.NewClient[ListVerificationsRequest, ListVerificationsResponse](httpClient, baseURL+AdminServiceListVerificationsProcedure, opts...),
	}
}

// Login calls gearcheck.v1.AdminService.Login.
func (c *AdminServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// GetSummary calls gearcheck.v1.AdminService.GetSummary.
func (c *AdminServiceClient) GetSummary(ctx context.Context, req *connect.Request[GetSummaryRequest]) (*connect.Response[GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// GetBackupDiff calls gearcheck.v1.AdminService.GetBackupDiff.
func (c *AdminServiceClient) GetBackupDiff(ctx context.Context, req *connect.Request[GetBackupDiffRequest]) (*connect.Response[GetBackupDiffResponse], error) {
	return c.getBackupDiff.CallUnary(ctx, req)
}

// AddPerson calls gearcheck.v1.AdminService.AddPerson.
func (c *AdminServiceClient) AddPerson(ctx context.Context, req *connect.Request[AddPersonRequest]) (*connect.Response[MutationResponse], error) {
	return c.addPerson.CallUnary(ctx, req)
}

// RemovePerson calls gearcheck.v1.AdminService.RemovePerson.
func (c *AdminServiceClient) RemovePerson(ctx context.Context, req *connect.Request[RemovePersonRequest]) (*connect.Response[MutationResponse], error) {
	return c.removePerson.CallUnary(ctx, req)
}

// EditPerson calls gearcheck.v1.AdminService.EditPerson.
func (c *AdminServiceClient) EditPerson(ctx context.Context, req *connect.Request[EditPersonRequest]) (*connect.Response[MutationResponse], error) {
	return c.editPerson.CallUnary(ctx, req)
}

// ListVerifications calls gearcheck.v1.AdminService.ListVerifications.
func (c *AdminServiceClient) ListVerifications(ctx context.Context, req *connect.Request[ListVerificationsRequest]) (*connect.Response[ListVerificationsResponse], error) {
	return c.listVerifications.CallUnary(ctx, req)
}
