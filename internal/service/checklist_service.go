package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/rigbudget/internal/currency"
	"github.com/mmynk/rigbudget/internal/metrics"
	"github.com/mmynk/rigbudget/internal/middleware"
	"github.com/mmynk/rigbudget/internal/storage"
	"github.com/mmynk/rigbudget/pkg/api"
)

var _ api.ChecklistServiceHandler = (*ChecklistService)(nil)

var (
	errNoChecklist   = errors.New("no checklist saved for this user")
	errWrongUser     = errors.New("checklist belongs to another user")
	errMissingRecord = errors.New("checklist is required")
)

// ChecklistService implements the ChecklistService RPC interface. Every
// procedure acts on the authenticated caller's single record.
type ChecklistService struct {
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewChecklistService creates a ChecklistService. m may be nil.
func NewChecklistService(store storage.Store, m *metrics.Metrics) *ChecklistService {
	return &ChecklistService{store: store, metrics: m, now: time.Now}
}

// GetChecklist returns the caller's record, or NotFound if none was saved yet.
func (s *ChecklistService) GetChecklist(ctx context.Context, req *connect.Request[api.GetChecklistRequest]) (*connect.Response[api.GetChecklistResponse], error) {
	userID, err := s.caller(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.GetChecklist(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		s.metrics.ObserveLoad(metrics.LoadMissing)
		return nil, connect.NewError(connect.CodeNotFound, errNoChecklist)
	}
	if err != nil {
		s.metrics.ObserveLoad(metrics.LoadError)
		slog.Error("Failed to load checklist", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.ObserveLoad(metrics.LoadFound)
	return connect.NewResponse(&api.GetChecklistResponse{Checklist: api.FromRecord(rec)}), nil
}

// SaveChecklist replaces the caller's record. The server sets UpdatedAt.
func (s *ChecklistService) SaveChecklist(ctx context.Context, req *connect.Request[api.SaveChecklistRequest]) (*connect.Response[api.SaveChecklistResponse], error) {
	if req.Msg.Checklist == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMissingRecord)
	}
	userID, err := s.caller(ctx, req.Msg.Checklist.UserID)
	if err != nil {
		return nil, err
	}

	rec := api.ToRecord(req.Msg.Checklist)
	rec.UserID = userID
	if err := validateRecord(rec.TotalBudget, rec.Currency); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	rec.UpdatedAt = s.now().UTC()

	err = s.store.UpsertChecklist(ctx, &rec)
	s.metrics.ObserveSave(metrics.SaveFull, err)
	if err != nil {
		slog.Error("Failed to save checklist", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Debug("Checklist saved", "user_id", userID, "updated_at", rec.UpdatedAt)
	return connect.NewResponse(&api.SaveChecklistResponse{UpdatedAt: rec.UpdatedAt}), nil
}

// SaveBudget writes only the caller's total budget.
func (s *ChecklistService) SaveBudget(ctx context.Context, req *connect.Request[api.SaveBudgetRequest]) (*connect.Response[api.SaveBudgetResponse], error) {
	userID, err := s.caller(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.TotalBudget < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("budget must not be negative: %d", req.Msg.TotalBudget))
	}

	at := s.now().UTC()
	err = s.store.UpsertBudget(ctx, userID, req.Msg.TotalBudget, at)
	s.metrics.ObserveSave(metrics.SaveBudget, err)
	if err != nil {
		slog.Error("Failed to save budget", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.SaveBudgetResponse{UpdatedAt: at}), nil
}

// caller resolves the user a request acts on. requested may be empty; if set
// it must match the token subject.
func (s *ChecklistService) caller(ctx context.Context, requested string) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errors.New("authentication required"))
	}
	if requested != "" && requested != userID {
		slog.Warn("Cross-user checklist access denied", "user_id", userID, "requested", requested)
		return "", connect.NewError(connect.CodePermissionDenied, errWrongUser)
	}
	return userID, nil
}

func validateRecord(budget int64, code string) error {
	if budget < 0 {
		return fmt.Errorf("budget must not be negative: %d", budget)
	}
	if !currency.Supported(code) {
		return fmt.Errorf("unsupported currency %q", code)
	}
	return nil
}
