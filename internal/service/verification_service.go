package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gearcheck/internal/api"
	"github.com/mmynk/gearcheck/internal/metrics"
	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/storage"
	"github.com/mmynk/gearcheck/internal/verify"
)

var errInvalidState = errors.New("invalid item state")

// TableStore is the part of storage.TableStore the verification form needs.
type TableStore interface {
	Schema() models.Schema
	Load(ctx context.Context) (*storage.LoadResult, error)
	Save(ctx context.Context, t *models.Table, person string) (string, error)
}

// Ensure VerificationService implements api.VerificationServiceHandler
var _ api.VerificationServiceHandler = (*VerificationService)(nil)

// VerificationService implements the Connect VerificationService
type VerificationService struct {
	store    TableStore
	sessions *verify.Registry
	log      storage.VerificationLog
	metrics  *metrics.Metrics
}

// NewVerificationService creates a VerificationService. log and m may be nil.
func NewVerificationService(store TableStore, sessions *verify.Registry, log storage.VerificationLog, m *metrics.Metrics) *VerificationService {
	return &VerificationService{
		store:    store,
		sessions: sessions,
		log:      log,
		metrics:  m,
	}
}

// load reads a fresh table for the request. Every request retries the
// backends, so a failed startup load does not stick.
func (s *VerificationService) load(ctx context.Context, op string) (*storage.LoadResult, error) {
	res, err := s.store.Load(ctx)
	if err != nil {
		return nil, connectError(op, err)
	}
	for _, w := range res.Warnings {
		slog.Warn("Table served after fallback", "op", op, "warning", w)
	}
	return res, nil
}

func (s *VerificationService) session(op, id string) (*verify.Session, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, connectError(op, err, "session_id", id)
	}
	return sess, nil
}

// ListPeople returns the names in the picker and the item columns.
func (s *VerificationService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	slog.Info("ListPeople request received")

	res, err := s.load(ctx, "ListPeople")
	if err != nil {
		return nil, err
	}

	schema := s.store.Schema()
	names := schema.Names(res.Table)
	people := make([]api.PersonSummary, 0, len(names))
	for _, name := range names {
		p, _ := schema.Person(res.Table, name)
		people = append(people, api.PersonSummary{
			Name:        p.Name,
			Team:        p.Team,
			StorageCell: p.StorageCell,
		})
	}

	slog.Info("ListPeople successful", "count", len(people), "source", res.Source)

	return connect.NewResponse(&api.ListPeopleResponse{
		People:   people,
		Items:    nonNil(schema.Items(res.Table)),
		Source:   res.Source,
		Warnings: res.Warnings,
	}), nil
}

// StartSession opens a new verification session with nothing selected.
func (s *VerificationService) StartSession(ctx context.Context, req *connect.Request[api.StartSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	sess := s.sessions.Start()
	slog.Info("Session started", "session_id", sess.ID)

	return connect.NewResponse(&api.SessionResponse{Session: toSession(sess.View())}), nil
}

// SelectPerson loads the person's stored item states into the session,
// discarding unsaved edits.
func (s *VerificationService) SelectPerson(ctx context.Context, req *connect.Request[api.SelectPersonRequest]) (*connect.Response[api.SessionResponse], error) {
	slog.Info("SelectPerson request received", "session_id", req.Msg.SessionID, "name", req.Msg.Name)

	sess, err := s.session("SelectPerson", req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	res, err := s.load(ctx, "SelectPerson")
	if err != nil {
		return nil, err
	}
	if err := sess.Select(res.Table, s.store.Schema(), req.Msg.Name); err != nil {
		return nil, connectError("SelectPerson", err, "name", req.Msg.Name)
	}

	return connect.NewResponse(&api.SessionResponse{Session: toSession(sess.View())}), nil
}

// SetItemState changes one item's working state.
func (s *VerificationService) SetItemState(ctx context.Context, req *connect.Request[api.SetItemStateRequest]) (*connect.Response[api.SessionResponse], error) {
	slog.Debug("SetItemState request received",
		"session_id", req.Msg.SessionID,
		"item", req.Msg.Item,
		"state", req.Msg.State,
	)

	sess, err := s.session("SetItemState", req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	state, err := models.ParseItemState(req.Msg.State)
	if err != nil {
		return nil, connectError("SetItemState", fmt.Errorf("%w: %v", errInvalidState, err))
	}
	if err := sess.SetItem(req.Msg.Item, state); err != nil {
		return nil, connectError("SetItemState", err, "item", req.Msg.Item)
	}

	return connect.NewResponse(&api.SessionResponse{Session: toSession(sess.View())}), nil
}

// SaveVerification writes the session's working states and notes. A failed
// write is not an RPC error: it is reported in the result and the session
// keeps its edits for a retry.
func (s *VerificationService) SaveVerification(ctx context.Context, req *connect.Request[api.SaveVerificationRequest]) (*connect.Response[api.SaveVerificationResponse], error) {
	slog.Info("SaveVerification request received", "session_id", req.Msg.SessionID)

	sess, err := s.session("SaveVerification", req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	res, err := s.load(ctx, "SaveVerification")
	if err != nil {
		return nil, err
	}

	out, err := sess.Save(ctx, s.store, res.Table, req.Msg.Notes)
	if err != nil {
		return nil, connectError("SaveVerification", err)
	}
	s.metrics.Regressions(len(out.Regressions))

	if out.Succeeded() {
		slog.Info("Verification saved",
			"person", out.Person,
			"location", out.Location,
			"regressions", len(out.Regressions),
		)
	} else {
		slog.Warn("Verification not saved", "person", out.Person, "error", out.Err)
	}
	if len(out.Regressions) > 0 {
		slog.Warn("Items regressed to absent", "person", out.Person, "items", out.Regressions)
	}

	if s.log != nil {
		if err := s.log.RecordVerification(ctx, out.Record()); err != nil {
			slog.Warn("Verification log write failed", "person", out.Person, "error", err)
		}
	}

	return connect.NewResponse(&api.SaveVerificationResponse{
		Session: toSession(sess.View()),
		Result:  toSaveResult(out),
	}), nil
}

// ResetSession clears the selection and all working state.
func (s *VerificationService) ResetSession(ctx context.Context, req *connect.Request[api.ResetSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	slog.Info("ResetSession request received", "session_id", req.Msg.SessionID)

	sess, err := s.session("ResetSession", req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Reset()

	return connect.NewResponse(&api.SessionResponse{Session: toSession(sess.View())}), nil
}

// EndSession discards a session. Unknown ids are not an error, so closing
// the form twice is harmless.
func (s *VerificationService) EndSession(ctx context.Context, req *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	s.sessions.Delete(req.Msg.SessionID)

	slog.Info("Session ended", "session_id", req.Msg.SessionID, "active_sessions", s.sessions.Len())

	return connect.NewResponse(&api.EndSessionResponse{}), nil
}
