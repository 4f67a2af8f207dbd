package syncclient

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/rigbudget/internal/models"
)

// ErrRecordNotFound is returned by a RecordStore when the user has no
// record yet. It is a normal outcome, not a failure.
var ErrRecordNotFound = errors.New("checklist record not found")

// AuthProvider is the external authentication service. Errors it returns are
// shown to the user verbatim.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (*models.Identity, error)
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	SignOut(ctx context.Context) error
	// CurrentUser returns nil and no error when there is no session.
	CurrentUser(ctx context.Context) (*models.Identity, error)
}

// RecordStore is the remote keyed document store holding one record per user.
type RecordStore interface {
	// Get returns ErrRecordNotFound when the user has no record.
	Get(ctx context.Context, userID string) (*models.ChecklistRecord, error)
	// Upsert writes the full record and returns the server's update time.
	Upsert(ctx context.Context, rec *models.ChecklistRecord) (time.Time, error)
	// UpsertBudget replaces only the budget field.
	UpsertBudget(ctx context.Context, userID string, budget int64) (time.Time, error)
}

// LocalStorage is device-local key/value storage with no server counterpart.
type LocalStorage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}
