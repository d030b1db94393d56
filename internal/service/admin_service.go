package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gearcheck/internal/admin"
	"github.com/mmynk/gearcheck/internal/api"
	"github.com/mmynk/gearcheck/internal/auth"
	"github.com/mmynk/gearcheck/internal/middleware"
	"github.com/mmynk/gearcheck/internal/roster"
)

// defaultListLimit caps ListVerifications when the request sets no limit.
const defaultListLimit = 100

// Ensure AdminService implements api.AdminServiceHandler
var _ api.AdminServiceHandler = (*AdminService)(nil)

// AdminService implements the Connect AdminService. Token checks happen in
// middleware.RequireAdmin; Login is the only public procedure.
type AdminService struct {
	manager       *admin.Manager
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAdminService creates an AdminService.
func NewAdminService(manager *admin.Manager, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AdminService {
	return &AdminService{
		manager:       manager,
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// requireAdmin rejects calls whose context carries no validated admin role.
func requireAdmin(ctx context.Context, op string) error {
	if !middleware.IsAdmin(ctx) {
		slog.Warn(op+" rejected: no admin role", "role", middleware.GetRole(ctx))
		return connect.NewError(connect.CodeUnauthenticated, errors.New("admin token required"))
	}
	return nil
}

// Login exchanges the admin password for a token.
func (s *AdminService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	slog.Info("Login request received")

	if err := s.authenticator.Authenticate(ctx, req.Msg.Password); err != nil {
		return nil, connectError("Login", err)
	}

	token, expires, err := s.jwtManager.Generate()
	if err != nil {
		return nil, connectError("Login", err)
	}

	slog.Info("Admin logged in", "expires_at", expires)

	return connect.NewResponse(&api.LoginResponse{Token: token, ExpiresAt: expires}), nil
}

// GetSummary returns per-item, per-person and per-team tallies.
func (s *AdminService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	slog.Info("GetSummary request received")

	if err := requireAdmin(ctx, "GetSummary"); err != nil {
		return nil, err
	}

	sum, err := s.manager.Summary(ctx)
	if err != nil {
		return nil, connectError("GetSummary", err)
	}

	slog.Info("GetSummary successful", "people", sum.People, "items", len(sum.Items), "coverage", sum.Totals.Coverage)

	return connect.NewResponse(SummaryResponse(sum)), nil
}

// GetBackupDiff compares the live table with the backup snapshot.
func (s *AdminService) GetBackupDiff(ctx context.Context, req *connect.Request[api.GetBackupDiffRequest]) (*connect.Response[api.GetBackupDiffResponse], error) {
	slog.Info("GetBackupDiff request received")

	if err := requireAdmin(ctx, "GetBackupDiff"); err != nil {
		return nil, err
	}

	res, err := s.manager.Diff(ctx)
	if err != nil {
		return nil, connectError("GetBackupDiff", err)
	}
	if !res.HasBackup {
		slog.Info("GetBackupDiff: no backup yet")
		return connect.NewResponse(DiffResponse(res)), nil
	}

	slog.Info("GetBackupDiff successful",
		"added", len(res.Diff.Added),
		"removed", len(res.Diff.Removed),
		"changes", len(res.Diff.Changes),
	)

	return connect.NewResponse(DiffResponse(res)), nil
}

// AddPerson appends a person row and writes the table.
func (s *AdminService) AddPerson(ctx context.Context, req *connect.Request[api.AddPersonRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("AddPerson request received", "name", req.Msg.Name, "team", req.Msg.Team)

	if err := requireAdmin(ctx, "AddPerson"); err != nil {
		return nil, err
	}

	location, err := s.manager.AddUser(ctx, req.Msg.Name, roster.Identity{
		Team:        req.Msg.Team,
		StorageCell: req.Msg.StorageCell,
	})
	if err != nil {
		return nil, connectError("AddPerson", err, "name", req.Msg.Name)
	}

	slog.Info("Person added", "name", req.Msg.Name, "location", location, "role", middleware.GetRole(ctx))

	return connect.NewResponse(&api.MutationResponse{Location: location}), nil
}

// RemovePerson deletes every row of a person and writes the table.
func (s *AdminService) RemovePerson(ctx context.Context, req *connect.Request[api.RemovePersonRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("RemovePerson request received", "name", req.Msg.Name)

	if err := requireAdmin(ctx, "RemovePerson"); err != nil {
		return nil, err
	}

	location, err := s.manager.RemoveUser(ctx, req.Msg.Name)
	if err != nil {
		return nil, connectError("RemovePerson", err, "name", req.Msg.Name)
	}

	slog.Info("Person removed", "name", req.Msg.Name, "location", location, "role", middleware.GetRole(ctx))

	return connect.NewResponse(&api.MutationResponse{Location: location}), nil
}

// EditPerson updates team and storage cell of a person and writes the table.
func (s *AdminService) EditPerson(ctx context.Context, req *connect.Request[api.EditPersonRequest]) (*connect.Response[api.MutationResponse], error) {
	slog.Info("EditPerson request received", "name", req.Msg.Name)

	if err := requireAdmin(ctx, "EditPerson"); err != nil {
		return nil, err
	}

	location, err := s.manager.EditUser(ctx, req.Msg.Name, roster.Identity{
		Team:        req.Msg.Team,
		StorageCell: req.Msg.StorageCell,
	})
	if err != nil {
		return nil, connectError("EditPerson", err, "name", req.Msg.Name)
	}

	slog.Info("Person edited", "name", req.Msg.Name, "location", location, "role", middleware.GetRole(ctx))

	return connect.NewResponse(&api.MutationResponse{Location: location}), nil
}

// ListVerifications returns logged verification saves, newest first.
func (s *AdminService) ListVerifications(ctx context.Context, req *connect.Request[api.ListVerificationsRequest]) (*connect.Response[api.ListVerificationsResponse], error) {
	slog.Info("ListVerifications request received", "person", req.Msg.Person, "limit", req.Msg.Limit)

	if err := requireAdmin(ctx, "ListVerifications"); err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	records, err := s.manager.ListVerifications(ctx, req.Msg.Person, limit)
	if err != nil {
		return nil, connectError("ListVerifications", err)
	}

	slog.Info("ListVerifications successful", "count", len(records))

	return connect.NewResponse(VerificationsResponse(records)), nil
}
