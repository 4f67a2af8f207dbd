package syncclient

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/rigbudget/internal/checklist"
	"github.com/mmynk/rigbudget/internal/currency"
	"github.com/mmynk/rigbudget/internal/localstore"
	"github.com/mmynk/rigbudget/internal/models"
)

// DefaultSaveDelay is the quiet period before a debounced save fires.
const DefaultSaveDelay = time.Second

// ErrNoSession is returned by operations that need an authenticated user.
var ErrNoSession = errors.New("not signed in")

// State is the client's position in the session lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Mode selects between signing in to an existing account and creating one.
type Mode int

const (
	ModeSignIn Mode = iota
	ModeSignUp
)

func (m Mode) String() string {
	if m == ModeSignUp {
		return "sign-up"
	}
	return "sign-in"
}

// Credentials are an email/password pair.
type Credentials struct {
	Email    string
	Password string
}

// Session is the per-user context created on authentication and destroyed
// on sign-out.
type Session struct {
	User      models.Identity
	StartedAt time.Time
}

// Options tunes a Client. Zero values select the defaults.
type Options struct {
	SaveDelay time.Duration
	Clock     Clock
	Logger    *slog.Logger
	// Local keeps the currency preference while no user is signed in.
	Local LocalStorage
}

// Client mediates between a checklist.Store, the auth provider and the
// remote record store.
type Client struct {
	store    *checklist.Store
	auth     AuthProvider
	records  RecordStore
	local    LocalStorage
	clock    Clock
	logger   *slog.Logger
	debounce *debouncer

	mu        sync.Mutex
	state     State
	session   *Session
	lastSaved time.Time

	inflight sync.WaitGroup
}

// New creates a client and subscribes it to store mutations.
func New(store *checklist.Store, auth AuthProvider, records RecordStore, opts Options) *Client {
	if opts.SaveDelay <= 0 {
		opts.SaveDelay = DefaultSaveDelay
	}
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Client{
		store:   store,
		auth:    auth,
		records: records,
		local:   opts.Local,
		clock:   opts.Clock,
		logger:  opts.Logger,
	}
	c.debounce = newDebouncer(opts.Clock, opts.SaveDelay, c.saveInBackground)
	store.Subscribe(c.onChange)
	return c
}

// Store returns the store the client keeps in sync.
func (c *Client) Store() *checklist.Store { return c.store }

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Session returns a copy of the active session, or nil.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	sess := *c.session
	return &sess
}

// LastSaved returns the time of the last successful save in this session.
func (c *Client) LastSaved() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaved, !c.lastSaved.IsZero()
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Authenticate signs the user in or up. On success the user's record is
// loaded into the store and the client becomes Ready. On failure the
// provider's error is returned unchanged.
//
// A session that is already live is ended first: its pending edits are
// saved for that user and the store is wiped, so a failed attempt leaves the
// client Unauthenticated with no per-user data.
func (c *Client) Authenticate(ctx context.Context, creds Credentials, mode Mode) (*models.Identity, error) {
	if prev := c.endSession(ctx); prev != "" {
		c.logger.Info("Ended session before re-authenticating", "user_id", prev)
	}
	c.setState(StateAuthenticating)

	var (
		user *models.Identity
		err  error
	)
	if mode == ModeSignUp {
		user, err = c.auth.SignUp(ctx, creds.Email, creds.Password)
	} else {
		user, err = c.auth.SignIn(ctx, creds.Email, creds.Password)
	}
	if err == nil && user == nil {
		user = c.CurrentUser(ctx)
		if user == nil {
			err = ErrNoSession
		}
	}
	if err != nil {
		c.setState(StateUnauthenticated)
		c.logger.Warn("Authentication failed", "mode", mode.String(), "email", creds.Email, "error", err)
		return nil, err
	}

	c.logger.Info("Authenticated", "mode", mode.String(), "user_id", user.ID)
	c.startSession(ctx, *user)
	return user, nil
}

// Resume picks up an existing provider session, if any. Without one, the
// locally stored currency preference is applied to the store.
func (c *Client) Resume(ctx context.Context) *models.Identity {
	c.endSession(ctx)
	user := c.CurrentUser(ctx)
	if user == nil {
		c.restoreLocalCurrency()
		return nil
	}
	c.startSession(ctx, *user)
	return user
}

func (c *Client) startSession(ctx context.Context, user models.Identity) {
	c.debounce.Cancel()
	c.mu.Lock()
	c.session = &Session{User: user, StartedAt: c.clock.Now()}
	c.state = StateLoading
	c.lastSaved = time.Time{}
	c.mu.Unlock()

	rec := c.Load(ctx, user.ID)
	c.store.Hydrate(rec)
	c.setState(StateReady)
}

// CurrentUser returns the signed-in identity or nil. Provider errors are
// logged and treated as no user.
func (c *Client) CurrentUser(ctx context.Context) *models.Identity {
	user, err := c.auth.CurrentUser(ctx)
	if err != nil {
		c.logger.Warn("Failed to get current user", "error", err)
		return nil
	}
	return user
}

// SignOut flushes any pending save, ends the provider session and wipes the
// store so no per-user data lingers.
func (c *Client) SignOut(ctx context.Context) error {
	_ = c.Flush(ctx)

	if err := c.auth.SignOut(ctx); err != nil {
		c.logger.Error("Failed to sign out", "error", err)
		return err
	}

	userID := c.endSession(ctx)
	c.logger.Info("Signed out", "user_id", userID)
	return nil
}

// endSession flushes the live session's pending save, drops the session and
// wipes the store. It returns the ended user's ID, or "" when there was no
// session.
func (c *Client) endSession(ctx context.Context) string {
	if c.Session() == nil {
		return ""
	}
	_ = c.Flush(ctx)
	c.debounce.Cancel()

	c.mu.Lock()
	userID := ""
	if c.session != nil {
		userID = c.session.User.ID
	}
	c.session = nil
	c.state = StateUnauthenticated
	c.lastSaved = time.Time{}
	c.mu.Unlock()

	c.store.Clear()
	return userID
}

// Load fetches the user's record. A missing record or a failed fetch both
// yield the default record; the latter is logged. Load never schedules a save.
func (c *Client) Load(ctx context.Context, userID string) models.ChecklistRecord {
	rec, err := c.records.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		c.logger.Debug("No checklist yet, using defaults", "user_id", userID)
		return models.NewChecklistRecord(userID)
	case err != nil:
		c.logger.Error("Failed to load checklist", "user_id", userID, "error", err)
		return models.NewChecklistRecord(userID)
	case rec == nil:
		return models.NewChecklistRecord(userID)
	}

	out := rec.Clone()
	out.UserID = userID
	if out.TotalBudget <= 0 {
		out.TotalBudget = models.DefaultBudget
	}
	if !currency.Supported(out.Currency) {
		out.Currency = models.DefaultCurrency
	}
	return out
}

// Save stamps rec and upserts it. Errors are logged and returned but never
// retried; callers on the autosave path ignore them.
func (c *Client) Save(ctx context.Context, rec models.ChecklistRecord) error {
	if rec.UserID == "" {
		if sess := c.Session(); sess != nil {
			rec.UserID = sess.User.ID
		}
	}
	if rec.UserID == "" {
		c.logger.Warn("Skipping save without a session")
		return ErrNoSession
	}
	rec.UpdatedAt = c.clock.Now()

	updatedAt, err := c.records.Upsert(ctx, &rec)
	if err != nil {
		c.logger.Error("Failed to save checklist", "user_id", rec.UserID, "error", err)
		return err
	}
	if updatedAt.IsZero() {
		updatedAt = rec.UpdatedAt
	}

	c.mu.Lock()
	c.lastSaved = updatedAt
	c.mu.Unlock()
	c.logger.Debug("Checklist saved", "user_id", rec.UserID, "updated_at", updatedAt)
	return nil
}

// SaveBudget sets the budget from raw input and persists only that field.
// A debounced save already pending for other edits is left in place.
func (c *Client) SaveBudget(ctx context.Context, raw string) (int64, error) {
	sess := c.Session()
	if sess == nil || c.State() != StateReady {
		return 0, ErrNoSession
	}

	pending := c.debounce.Pending()
	c.store.SetBudget(raw)
	if !pending {
		c.debounce.Cancel()
	}

	budget := c.store.Budget()
	updatedAt, err := c.records.UpsertBudget(ctx, sess.User.ID, budget)
	if err != nil {
		c.logger.Error("Failed to save budget", "user_id", sess.User.ID, "error", err)
		return budget, err
	}

	c.mu.Lock()
	c.lastSaved = updatedAt
	c.mu.Unlock()
	return budget, nil
}

// Flush saves immediately if a debounced save is pending.
func (c *Client) Flush(ctx context.Context) error {
	if !c.debounce.Cancel() || c.State() != StateReady {
		return nil
	}
	return c.Save(ctx, c.store.Snapshot())
}

// Wait blocks until background saves have finished.
func (c *Client) Wait() {
	c.inflight.Wait()
}

func (c *Client) onChange(op checklist.Op) {
	state := c.State()
	if op == checklist.OpSetCurrency && state == StateUnauthenticated {
		c.rememberCurrency()
	}
	if state != StateReady {
		return
	}

	if op == checklist.OpReset {
		c.debounce.Cancel()
		c.saveInBackground()
		return
	}
	c.debounce.Trigger()
}

// saveInBackground snapshots the store now and saves it without blocking.
func (c *Client) saveInBackground() {
	c.mu.Lock()
	if c.session == nil || c.state != StateReady {
		c.mu.Unlock()
		return
	}
	sess := *c.session
	c.mu.Unlock()

	rec := c.store.Snapshot()
	rec.UserID = sess.User.ID

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		_ = c.Save(context.Background(), rec)
	}()
}

func (c *Client) rememberCurrency() {
	if c.local == nil {
		return
	}
	if err := c.local.Set(localstore.KeyCurrency, c.store.Currency()); err != nil {
		c.logger.Warn("Failed to store currency preference", "error", err)
	}
}

func (c *Client) restoreLocalCurrency() {
	if c.local == nil {
		return
	}
	if code, ok := c.local.Get(localstore.KeyCurrency); ok {
		c.store.SetCurrency(code)
	}
}
