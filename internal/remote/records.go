package remote

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/rigbudget/internal/models"
	"github.com/mmynk/rigbudget/internal/syncclient"
	"github.com/mmynk/rigbudget/pkg/api"
)

var _ syncclient.RecordStore = (*RecordStore)(nil)

// RecordStore reads and writes checklist records through the checklist service.
type RecordStore struct {
	client *api.ChecklistClient
}

// NewRecordStore creates a RecordStore for the server at baseURL,
// authenticated with the token held in tokens. httpClient may be nil.
func NewRecordStore(httpClient connect.HTTPClient, baseURL string, tokens syncclient.LocalStorage) *RecordStore {
	return &RecordStore{
		client: api.NewChecklistClient(httpClientOrDefault(httpClient), baseURL, api.WithBearerToken(tokenSource(tokens))),
	}
}

func (s *RecordStore) Get(ctx context.Context, userID string) (*models.ChecklistRecord, error) {
	resp, err := s.client.GetChecklist(ctx, &api.GetChecklistRequest{UserID: userID})
	if connect.CodeOf(err) == connect.CodeNotFound {
		return nil, syncclient.ErrRecordNotFound
	}
	if err != nil {
		return nil, wrap(err)
	}
	rec := api.ToRecord(resp.Checklist)
	return &rec, nil
}

func (s *RecordStore) Upsert(ctx context.Context, rec *models.ChecklistRecord) (time.Time, error) {
	resp, err := s.client.SaveChecklist(ctx, &api.SaveChecklistRequest{Checklist: api.FromRecord(rec)})
	if err != nil {
		return time.Time{}, wrap(err)
	}
	return resp.UpdatedAt, nil
}

func (s *RecordStore) UpsertBudget(ctx context.Context, userID string, budget int64) (time.Time, error) {
	resp, err := s.client.SaveBudget(ctx, &api.SaveBudgetRequest{UserID: userID, TotalBudget: budget})
	if err != nil {
		return time.Time{}, wrap(err)
	}
	return resp.UpdatedAt, nil
}
