// Package checklist holds the in-memory state of a PC build checklist and
// every operation that mutates it.
//
// Mutations never fail: unknown slot or component IDs are ignored and
// unparseable numbers coerce to zero. Every mutation that changes state is
// reported to subscribers so a sync layer can persist it.
package checklist

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/rigbudget/internal/currency"
	"github.com/mmynk/rigbudget/internal/models"
)

// Op identifies the kind of mutation reported to subscribers.
type Op string

const (
	OpToggleItem       Op = "toggle_item"
	OpSetPrice         Op = "set_price"
	OpSetPartName      Op = "set_part_name"
	OpSetBudget        Op = "set_budget"
	OpSetCurrency      Op = "set_currency"
	OpAddOther         Op = "add_other"
	OpRemoveOther      Op = "remove_other"
	OpToggleOther      Op = "toggle_other"
	OpSetOtherPrice    Op = "set_other_price"
	OpSetOtherPartName Op = "set_other_part_name"
	OpReset            Op = "reset"
)

// Store is the canonical in-memory view of one checklist record.
// It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	checklist map[string]bool
	prices    map[string]float64
	partNames map[string]string
	others    []models.OtherComponent
	budget    int64
	currency  string

	listenersMu sync.RWMutex
	listeners   []func(Op)

	newID func() string
}

// New returns a store holding the default record.
func New() *Store {
	s := &Store{newID: func() string { return uuid.New().String() }}
	s.load(models.NewChecklistRecord(""))
	return s
}

// Subscribe registers fn to be called after every state-changing mutation.
// fn runs on the mutating goroutine, after the store lock is released.
func (s *Store) Subscribe(fn func(Op)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(op Op) {
	s.listenersMu.RLock()
	listeners := s.listeners
	s.listenersMu.RUnlock()
	for _, fn := range listeners {
		fn(op)
	}
}

// ToggleItem flips the acquired flag of a fixed slot.
func (s *Store) ToggleItem(slotID string) {
	if !models.IsSlot(slotID) {
		return
	}
	s.mu.Lock()
	s.checklist[slotID] = !s.checklist[slotID]
	s.mu.Unlock()
	s.notify(OpToggleItem)
}

// SetPrice parses raw as a number and stores it as the slot's price.
func (s *Store) SetPrice(slotID, raw string) {
	if !models.IsSlot(slotID) {
		return
	}
	s.mu.Lock()
	s.prices[slotID] = ParsePrice(raw)
	s.mu.Unlock()
	s.notify(OpSetPrice)
}

// SetPartName stores text verbatim as the slot's part name.
func (s *Store) SetPartName(slotID, text string) {
	if !models.IsSlot(slotID) {
		return
	}
	s.mu.Lock()
	s.partNames[slotID] = text
	s.mu.Unlock()
	s.notify(OpSetPartName)
}

// SetBudget parses raw as an integer budget.
func (s *Store) SetBudget(raw string) {
	s.mu.Lock()
	s.budget = ParseBudget(raw)
	s.mu.Unlock()
	s.notify(OpSetBudget)
}

// SetCurrency switches the display currency. Unsupported codes are ignored.
func (s *Store) SetCurrency(code string) {
	if !currency.Supported(code) {
		return
	}
	s.mu.Lock()
	s.currency = code
	s.mu.Unlock()
	s.notify(OpSetCurrency)
}

// AddOtherComponent appends a new user-added entry and returns its ID.
// A name that is blank after trimming is ignored and "" is returned.
func (s *Store) AddOtherComponent(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	id := s.newID()
	s.mu.Lock()
	s.others = append(s.others, models.OtherComponent{ID: id, Name: name})
	s.mu.Unlock()
	s.notify(OpAddOther)
	return id
}

// RemoveOtherComponent deletes the entry with the given ID.
func (s *Store) RemoveOtherComponent(id string) {
	s.mu.Lock()
	i := s.otherIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.others = append(s.others[:i], s.others[i+1:]...)
	s.mu.Unlock()
	s.notify(OpRemoveOther)
}

// ToggleOtherComponent flips the checked flag of a user-added entry.
func (s *Store) ToggleOtherComponent(id string) {
	s.updateOther(id, OpToggleOther, func(c *models.OtherComponent) { c.Checked = !c.Checked })
}

// SetOtherComponentPrice parses raw and stores it as the entry's price.
func (s *Store) SetOtherComponentPrice(id, raw string) {
	price := ParsePrice(raw)
	s.updateOther(id, OpSetOtherPrice, func(c *models.OtherComponent) { c.Price = price })
}

// SetOtherComponentPartName stores text verbatim as the entry's part name.
func (s *Store) SetOtherComponentPartName(id, text string) {
	s.updateOther(id, OpSetOtherPartName, func(c *models.OtherComponent) { c.PartName = text })
}

func (s *Store) updateOther(id string, op Op, fn func(*models.OtherComponent)) {
	s.mu.Lock()
	i := s.otherIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	fn(&s.others[i])
	s.mu.Unlock()
	s.notify(op)
}

// otherIndex must be called with s.mu held.
func (s *Store) otherIndex(id string) int {
	for i := range s.others {
		if s.others[i].ID == id {
			return i
		}
	}
	return -1
}

// Reset unchecks every slot, clears prices and part names, and drops all
// user-added entries. Budget and currency are kept.
func (s *Store) Reset() {
	s.mu.Lock()
	budget, cur := s.budget, s.currency
	s.load(models.NewChecklistRecord(""))
	s.budget, s.currency = budget, cur
	s.mu.Unlock()
	s.notify(OpReset)
}

// Clear wipes the store back to the default record, budget and currency
// included. It is used when a session ends and does not notify subscribers.
func (s *Store) Clear() {
	s.mu.Lock()
	s.load(models.NewChecklistRecord(""))
	s.mu.Unlock()
}

// Hydrate replaces the store's state with rec. Slot keys outside the slot
// table are dropped and missing ones take their defaults. Subscribers are not
// notified: hydration mirrors remote state and must not echo it back.
func (s *Store) Hydrate(rec models.ChecklistRecord) {
	s.mu.Lock()
	s.load(rec)
	s.mu.Unlock()
}

// load must be called with s.mu held.
func (s *Store) load(rec models.ChecklistRecord) {
	s.checklist = make(map[string]bool, len(models.Slots))
	s.prices = make(map[string]float64, len(models.Slots))
	s.partNames = make(map[string]string, len(models.Slots))
	for _, slot := range models.Slots {
		s.checklist[slot.ID] = rec.Checklist[slot.ID]
		s.prices[slot.ID] = sanitizePrice(rec.Prices[slot.ID])
		s.partNames[slot.ID] = rec.PartNames[slot.ID]
	}
	s.others = make([]models.OtherComponent, 0, len(rec.OtherComponents))
	for _, c := range rec.OtherComponents {
		c.Price = sanitizePrice(c.Price)
		s.others = append(s.others, c)
	}
	s.budget = rec.TotalBudget
	s.currency = rec.Currency
	if !currency.Supported(s.currency) {
		s.currency = currency.Default
	}
}

// Snapshot returns a deep copy of the current state as a record. UserID and
// UpdatedAt are left zero for the caller to fill in.
func (s *Store) Snapshot() models.ChecklistRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := models.ChecklistRecord{
		Checklist:       make(map[string]bool, len(s.checklist)),
		Prices:          make(map[string]float64, len(s.prices)),
		PartNames:       make(map[string]string, len(s.partNames)),
		TotalBudget:     s.budget,
		Currency:        s.currency,
		OtherComponents: make([]models.OtherComponent, len(s.others)),
	}
	for k, v := range s.checklist {
		rec.Checklist[k] = v
	}
	for k, v := range s.prices {
		rec.Prices[k] = v
	}
	for k, v := range s.partNames {
		rec.PartNames[k] = v
	}
	copy(rec.OtherComponents, s.others)
	return rec
}

// Checked reports whether a fixed slot is marked acquired.
func (s *Store) Checked(slotID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checklist[slotID]
}

// Price returns a fixed slot's price.
func (s *Store) Price(slotID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prices[slotID]
}

// PartName returns a fixed slot's part name.
func (s *Store) PartName(slotID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partNames[slotID]
}

// OtherComponents returns a copy of the user-added entries in order.
func (s *Store) OtherComponents() []models.OtherComponent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.OtherComponent, len(s.others))
	copy(out, s.others)
	return out
}

// Budget returns the total budget.
func (s *Store) Budget() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budget
}

// Currency returns the display currency code.
func (s *Store) Currency() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currency
}

// numericPrefix matches the longest leading decimal number, so "450abc"
// reads as 450 the way a browser number field's parseFloat would.
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

func parseLeadingFloat(raw string) (float64, bool) {
	m := numericPrefix.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParsePrice converts user input to a price, reading its leading number.
// Input without one, and anything not finite and non-negative, becomes 0.
func ParsePrice(raw string) float64 {
	v, ok := parseLeadingFloat(raw)
	if !ok {
		return 0
	}
	return sanitizePrice(v)
}

// ParseBudget converts user input to an integer budget, truncating any
// fractional part. Input without a leading number, or a negative one,
// becomes 0.
func ParseBudget(raw string) int64 {
	v, ok := parseLeadingFloat(raw)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > math.MaxInt64 {
		return 0
	}
	return int64(v)
}

func sanitizePrice(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// sum adds prices exactly so totals do not drift.
func sum(prices []float64) float64 {
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(decimal.NewFromFloat(p))
	}
	return total.InexactFloat64()
}
