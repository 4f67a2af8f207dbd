package syncclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/rigbudget/internal/checklist"
	"github.com/mmynk/rigbudget/internal/localstore"
	"github.com/mmynk/rigbudget/internal/models"
	"github.com/mmynk/rigbudget/pkg/logging"
)

var epoch = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

type harness struct {
	store   *checklist.Store
	auth    *fakeAuth
	records *fakeRecords
	local   *memLocal
	clock   *fakeClock
	client  *Client
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		store:   checklist.New(),
		auth:    &fakeAuth{},
		records: newFakeRecords(),
		local:   newMemLocal(),
		clock:   newFakeClock(epoch),
	}
	h.client = New(h.store, h.auth, h.records, Options{
		Clock:  h.clock,
		Logger: logging.Discard(),
		Local:  h.local,
	})
	return h
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	_, err := h.client.Authenticate(context.Background(), Credentials{Email: "a@example.com", Password: "password1"}, ModeSignIn)
	require.NoError(t, err)
	require.Equal(t, StateReady, h.client.State())
}

// advance moves the fake clock and waits for any saves it started.
func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.client.Wait()
}

func TestDebounceBurstProducesOneSave(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	h.store.ToggleItem("cpu") // t=0
	h.advance(200 * time.Millisecond)
	h.store.SetPrice("cpu", "300") // t=200ms
	h.advance(700 * time.Millisecond)
	h.store.SetPartName("cpu", "Ryzen 7") // t=900ms

	h.advance(999 * time.Millisecond) // t=1899ms
	assert.Empty(t, h.records.Saves(), "no save inside the quiet period")

	h.advance(time.Millisecond) // t=1900ms
	saves := h.records.Saves()
	require.Len(t, saves, 1)

	saved := saves[0]
	assert.Equal(t, epoch.Add(1900*time.Millisecond), saved.UpdatedAt)
	assert.Equal(t, "user-1", saved.UserID)
	assert.True(t, saved.Checklist["cpu"])
	assert.Equal(t, 300.0, saved.Prices["cpu"])
	assert.Equal(t, "Ryzen 7", saved.PartNames["cpu"])

	h.advance(10 * time.Second)
	assert.Len(t, h.records.Saves(), 1, "nothing further fires")

	last, ok := h.client.LastSaved()
	assert.True(t, ok)
	assert.Equal(t, epoch.Add(1900*time.Millisecond), last)
}

func TestDebounceSeparateBurstsSaveSeparately(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	h.store.ToggleItem("gpu")
	h.advance(time.Second)
	h.store.ToggleItem("psu")
	h.advance(time.Second)

	saves := h.records.Saves()
	require.Len(t, saves, 2)
	assert.False(t, saves[0].Checklist["psu"])
	assert.True(t, saves[1].Checklist["psu"])
	assert.Zero(t, h.clock.Pending(), "rescheduling replaces the timer instead of stacking")
}

func TestResetSavesImmediately(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	h.store.ToggleItem("cpu")
	h.store.Reset()
	h.client.Wait()

	saves := h.records.Saves()
	require.Len(t, saves, 1)
	assert.False(t, saves[0].Checklist["cpu"])

	h.advance(5 * time.Second)
	assert.Len(t, h.records.Saves(), 1, "reset cancels the pending debounced save")
}

func TestLoadMissingRecordReturnsDefaultsWithoutSaving(t *testing.T) {
	h := newHarness(t)

	rec := h.client.Load(context.Background(), "nobody")
	assert.Equal(t, models.NewChecklistRecord("nobody"), rec)

	h.signIn(t)
	h.advance(10 * time.Second)
	assert.Empty(t, h.records.Saves())
	assert.Equal(t, models.DefaultBudget, h.store.Budget())
}

func TestLoadErrorReturnsDefaults(t *testing.T) {
	h := newHarness(t)
	h.records.getErr = errBoom

	rec := h.client.Load(context.Background(), "user-1")
	assert.Equal(t, models.NewChecklistRecord("user-1"), rec)

	h.signIn(t)
	assert.Equal(t, StateReady, h.client.State(), "load failure does not block")
}

func TestLoadNormalizesRecord(t *testing.T) {
	h := newHarness(t)
	h.records.recs["user-1"] = models.ChecklistRecord{
		UserID:      "user-1",
		Checklist:   map[string]bool{"gpu": true},
		TotalBudget: 0,
		Currency:    "???",
	}

	rec := h.client.Load(context.Background(), "user-1")
	assert.Equal(t, models.DefaultBudget, rec.TotalBudget)
	assert.Equal(t, models.DefaultCurrency, rec.Currency)
	assert.True(t, rec.Checklist["gpu"])
}

func TestAuthenticateHydratesStore(t *testing.T) {
	h := newHarness(t)
	stored := models.NewChecklistRecord("user-1")
	stored.Checklist["gpu"] = true
	stored.Prices["gpu"] = 55000
	stored.TotalBudget = 120000
	stored.Currency = "USD"
	h.records.recs["user-1"] = stored

	h.signIn(t)

	assert.True(t, h.store.Checked("gpu"))
	assert.Equal(t, 55000.0, h.store.Price("gpu"))
	assert.Equal(t, int64(120000), h.store.Budget())
	assert.Equal(t, "USD", h.store.Currency())
	require.NotNil(t, h.client.Session())
	assert.Equal(t, "user-1", h.client.Session().User.ID)
	assert.Equal(t, epoch, h.client.Session().StartedAt)
}

func TestAuthenticateSignUp(t *testing.T) {
	h := newHarness(t)

	user, err := h.client.Authenticate(context.Background(), Credentials{Email: "new@example.com", Password: "password1"}, ModeSignUp)
	require.NoError(t, err)
	assert.Equal(t, "user-new", user.ID)
	assert.Equal(t, StateReady, h.client.State())
}

func TestAuthenticateFailureSurfacesProviderError(t *testing.T) {
	h := newHarness(t)
	providerErr := errors.New("Invalid login credentials")
	h.auth.signInErr = providerErr

	user, err := h.client.Authenticate(context.Background(), Credentials{Email: "a@example.com", Password: "x"}, ModeSignIn)
	assert.Nil(t, user)
	assert.Same(t, providerErr, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
	assert.Equal(t, StateUnauthenticated, h.client.State())
	assert.Nil(t, h.client.Session())
}

func TestReauthenticateSavesPendingEditsForPreviousUser(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.store.ToggleItem("cpu")
	h.store.SetPrice("cpu", "999")

	h.records.onGet = func() {
		h.clock.Advance(time.Second) // debounce window elapses mid-load
	}
	user, err := h.client.Authenticate(context.Background(), Credentials{Email: "new@example.com", Password: "password1"}, ModeSignUp)
	require.NoError(t, err)
	require.Equal(t, "user-new", user.ID)
	h.advance(5 * time.Second)

	saves := h.records.Saves()
	require.Len(t, saves, 1, "only the previous user's pending edits are saved")
	assert.Equal(t, "user-1", saves[0].UserID)
	assert.True(t, saves[0].Checklist["cpu"])
	assert.Equal(t, 999.0, saves[0].Prices["cpu"])

	_, ok := h.records.recs["user-new"]
	assert.False(t, ok, "the new user's record is untouched")
	assert.False(t, h.store.Checked("cpu"), "the new session starts from the new user's record")
	assert.Equal(t, StateReady, h.client.State())
}

func TestFailedReauthenticateEndsPreviousSession(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.store.ToggleItem("cpu")
	h.auth.signInErr = errBoom

	_, err := h.client.Authenticate(context.Background(), Credentials{Email: "a@example.com", Password: "wrong"}, ModeSignIn)
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, StateUnauthenticated, h.client.State())
	assert.Nil(t, h.client.Session())
	assert.Equal(t, checklist.New().Snapshot(), h.store.Snapshot(), "no per-user data lingers")
	require.Len(t, h.records.Saves(), 1, "pending edits were saved before the session ended")
	assert.Equal(t, "user-1", h.records.Saves()[0].UserID)

	h.auth.signInErr = nil
	h.signIn(t)
	h.store.ToggleItem("gpu")
	h.advance(2 * time.Second)

	saves := h.records.Saves()
	require.Len(t, saves, 2)
	assert.True(t, saves[1].Checklist["gpu"])
}

func TestMutationsBeforeReadyDoNotSave(t *testing.T) {
	h := newHarness(t)

	h.store.ToggleItem("cpu")
	h.advance(5 * time.Second)
	assert.Empty(t, h.records.Saves(), "unauthenticated edits are not saved")

	stored := models.NewChecklistRecord("user-1")
	stored.Checklist["ram"] = true
	h.records.recs["user-1"] = stored
	h.records.onGet = func() {
		h.store.ToggleItem("gpu") // edit while loading
	}

	h.signIn(t)
	h.advance(5 * time.Second)

	assert.Empty(t, h.records.Saves(), "edits during load must not overwrite remote state")
	assert.True(t, h.store.Checked("ram"))
	assert.False(t, h.store.Checked("gpu"), "hydration replaces pre-load edits")
}

func TestSaveFailureIsLoggedNotRetried(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.records.upsertErr = errBoom

	h.store.ToggleItem("cpu")
	h.advance(time.Second)
	h.advance(time.Minute)

	assert.Len(t, h.records.Saves(), 1)
	_, ok := h.client.LastSaved()
	assert.False(t, ok, "last saved does not advance on failure")
	assert.True(t, h.store.Checked("cpu"), "local state stays correct")
}

func TestSaveWithoutSession(t *testing.T) {
	h := newHarness(t)
	err := h.client.Save(context.Background(), h.store.Snapshot())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, h.records.Saves())
}

func TestCurrentUserNeverFails(t *testing.T) {
	h := newHarness(t)
	assert.Nil(t, h.client.CurrentUser(context.Background()))

	h.auth.user = &models.Identity{ID: "user-1"}
	assert.Equal(t, "user-1", h.client.CurrentUser(context.Background()).ID)

	h.auth.currentErr = errBoom
	assert.Nil(t, h.client.CurrentUser(context.Background()))
}

func TestSignOutFlushesAndClears(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.store.SetBudget("90000")
	h.store.SetCurrency("EUR")
	h.store.AddOtherComponent("Fans")
	h.store.ToggleItem("cpu")

	require.NoError(t, h.client.SignOut(context.Background()))

	saves := h.records.Saves()
	require.Len(t, saves, 1, "pending edits are flushed before the session ends")
	assert.True(t, saves[0].Checklist["cpu"])

	assert.True(t, h.auth.signedOut)
	assert.Equal(t, StateUnauthenticated, h.client.State())
	assert.Nil(t, h.client.Session())
	assert.Equal(t, checklist.New().Snapshot(), h.store.Snapshot())

	h.store.ToggleItem("gpu")
	h.advance(5 * time.Second)
	assert.Len(t, h.records.Saves(), 1, "no saves after sign-out")
}

func TestSignOutFailureKeepsSession(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.store.ToggleItem("cpu")
	h.auth.signOutErr = errBoom

	err := h.client.SignOut(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, StateReady, h.client.State())
	assert.True(t, h.store.Checked("cpu"))
}

func TestCurrencyWhileSignedOutGoesToLocalStorage(t *testing.T) {
	h := newHarness(t)

	h.store.SetCurrency("GBP")
	v, ok := h.local.Get(localstore.KeyCurrency)
	assert.True(t, ok)
	assert.Equal(t, "GBP", v)

	h.signIn(t)
	h.store.SetCurrency("JPY")
	v, _ = h.local.Get(localstore.KeyCurrency)
	assert.Equal(t, "GBP", v, "signed-in currency is stored remotely only")
}

func TestResumeWithoutUserRestoresLocalCurrency(t *testing.T) {
	h := newHarness(t)
	h.local.values[localstore.KeyCurrency] = "USD"

	user := h.client.Resume(context.Background())
	assert.Nil(t, user)
	assert.Equal(t, "USD", h.store.Currency())
	assert.Equal(t, StateUnauthenticated, h.client.State())
}

func TestResumeWithUserLoads(t *testing.T) {
	h := newHarness(t)
	h.auth.user = &models.Identity{ID: "user-1", Email: "a@example.com"}
	stored := models.NewChecklistRecord("user-1")
	stored.Checklist["case"] = true
	h.records.recs["user-1"] = stored

	user := h.client.Resume(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, StateReady, h.client.State())
	assert.True(t, h.store.Checked("case"))
}

func TestSaveBudgetPartialUpsert(t *testing.T) {
	h := newHarness(t)

	_, err := h.client.SaveBudget(context.Background(), "5000")
	assert.ErrorIs(t, err, ErrNoSession)

	h.signIn(t)
	budget, err := h.client.SaveBudget(context.Background(), "150000")
	require.NoError(t, err)
	assert.Equal(t, int64(150000), budget)
	assert.Equal(t, []int64{150000}, h.records.budgets)

	h.advance(5 * time.Second)
	assert.Empty(t, h.records.Saves(), "partial save replaces the debounced full save")
}

func TestSaveBudgetKeepsOtherPendingEdits(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	h.store.ToggleItem("cpu")
	_, err := h.client.SaveBudget(context.Background(), "70000")
	require.NoError(t, err)

	h.advance(time.Second)
	saves := h.records.Saves()
	require.Len(t, saves, 1)
	assert.True(t, saves[0].Checklist["cpu"])
	assert.Equal(t, int64(70000), saves[0].TotalBudget)
}

func TestFlush(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	require.NoError(t, h.client.Flush(context.Background()))
	assert.Empty(t, h.records.Saves(), "nothing pending, nothing saved")

	h.store.ToggleItem("ram")
	require.NoError(t, h.client.Flush(context.Background()))
	require.Len(t, h.records.Saves(), 1)

	h.advance(5 * time.Second)
	assert.Len(t, h.records.Saves(), 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticating", StateAuthenticating.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.Equal(t, "sign-in", ModeSignIn.String())
	assert.Equal(t, "sign-up", ModeSignUp.String())
}
