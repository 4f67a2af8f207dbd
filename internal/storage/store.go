// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/rigbudget/internal/models"
)

// ErrNotFound is returned when the requested user or checklist does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for user and checklist storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. The email must not be registered yet.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns ErrNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrNotFound if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetChecklist retrieves the checklist record for a user.
	// Returns ErrNotFound if the user has never saved one.
	GetChecklist(ctx context.Context, userID string) (*models.ChecklistRecord, error)

	// UpsertChecklist inserts or fully replaces the record keyed by rec.UserID.
	// rec.UpdatedAt is written as given.
	UpsertChecklist(ctx context.Context, rec *models.ChecklistRecord) error

	// UpsertBudget writes only total_budget and updated_at. A missing row is
	// created with default values for every other column.
	UpsertBudget(ctx context.Context, userID string, budget int64, at time.Time) error

	// Close releases any resources held by the store.
	Close() error
}
