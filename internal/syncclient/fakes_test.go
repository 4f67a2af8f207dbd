package syncclient

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/mmynk/rigbudget/internal/models"
)

// fakeClock is a manually advanced Clock. Timer callbacks run synchronously
// inside Advance, in due order.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d, firing every timer that falls due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.at.After(target) {
				due = append(due, t)
			}
		}
		if len(due) == 0 {
			break
		}
		sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
		next := due[0]
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.fn()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

// Pending returns the number of live timers.
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakeAuth struct {
	mu         sync.Mutex
	user       *models.Identity
	signInErr  error
	signUpErr  error
	signOutErr error
	currentErr error
	signedOut  bool
}

func (a *fakeAuth) SignUp(_ context.Context, email, _ string) (*models.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.signUpErr != nil {
		return nil, a.signUpErr
	}
	a.user = &models.Identity{ID: "user-new", Email: email}
	u := *a.user
	return &u, nil
}

func (a *fakeAuth) SignIn(_ context.Context, email, _ string) (*models.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.signInErr != nil {
		return nil, a.signInErr
	}
	a.user = &models.Identity{ID: "user-1", Email: email}
	u := *a.user
	return &u, nil
}

func (a *fakeAuth) SignOut(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.signOutErr != nil {
		return a.signOutErr
	}
	a.user = nil
	a.signedOut = true
	return nil
}

func (a *fakeAuth) CurrentUser(context.Context) (*models.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.currentErr != nil {
		return nil, a.currentErr
	}
	if a.user == nil {
		return nil, nil
	}
	u := *a.user
	return &u, nil
}

type fakeRecords struct {
	mu        sync.Mutex
	recs      map[string]models.ChecklistRecord
	saves     []models.ChecklistRecord
	budgets   []int64
	getErr    error
	upsertErr error
	onGet     func()
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{recs: map[string]models.ChecklistRecord{}}
}

func (r *fakeRecords) Get(_ context.Context, userID string) (*models.ChecklistRecord, error) {
	if r.onGet != nil {
		r.onGet()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	rec, ok := r.recs[userID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	out := rec.Clone()
	return &out, nil
}

func (r *fakeRecords) Upsert(_ context.Context, rec *models.ChecklistRecord) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, rec.Clone())
	if r.upsertErr != nil {
		return time.Time{}, r.upsertErr
	}
	r.recs[rec.UserID] = rec.Clone()
	return rec.UpdatedAt, nil
}

func (r *fakeRecords) UpsertBudget(_ context.Context, userID string, budget int64) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets = append(r.budgets, budget)
	if r.upsertErr != nil {
		return time.Time{}, r.upsertErr
	}
	rec, ok := r.recs[userID]
	if !ok {
		rec = models.NewChecklistRecord(userID)
	}
	rec.TotalBudget = budget
	r.recs[userID] = rec
	return time.Unix(1700000000, 0), nil
}

func (r *fakeRecords) Saves() []models.ChecklistRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ChecklistRecord, len(r.saves))
	copy(out, r.saves)
	return out
}

type memLocal struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMemLocal() *memLocal {
	return &memLocal{values: map[string]string{}}
}

func (m *memLocal) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *memLocal) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

var errBoom = errors.New("boom")
