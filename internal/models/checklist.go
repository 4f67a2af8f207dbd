package models

import "time"

const (
	// DefaultBudget is the budget a new record starts with.
	DefaultBudget int64 = 100000

	// DefaultCurrency is the currency code a new record starts with.
	DefaultCurrency = "INR"
)

// ChecklistRecord is the persisted state of one user's build checklist.
// There is exactly one record per user ID.
type ChecklistRecord struct {
	UserID string `json:"userId"`

	// Checklist maps slot IDs to the acquired flag.
	Checklist map[string]bool `json:"checklist"`

	// Prices maps slot IDs to a non-negative price; 0 means not entered.
	Prices map[string]float64 `json:"prices"`

	// PartNames maps slot IDs to a free-text part name; "" means not entered.
	PartNames map[string]string `json:"partNames"`

	TotalBudget int64  `json:"totalBudget"`
	Currency    string `json:"currency"`

	// OtherComponents are user-added entries, in insertion order.
	OtherComponents []OtherComponent `json:"otherComponents"`

	// UpdatedAt is set by the server on every write.
	UpdatedAt time.Time `json:"updatedAt"`
}

// OtherComponent is a user-added checklist entry.
type OtherComponent struct {
	// ID is an opaque token, unique within the list and stable across edits.
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Checked  bool    `json:"checked"`
	Price    float64 `json:"price"`
	PartName string  `json:"partName"`
}

// NewChecklistRecord returns the default-initialized record for a user: every
// slot unchecked with no price or part name, the default budget and currency,
// and no extra components.
func NewChecklistRecord(userID string) ChecklistRecord {
	rec := ChecklistRecord{
		UserID:          userID,
		Checklist:       make(map[string]bool, len(Slots)),
		Prices:          make(map[string]float64, len(Slots)),
		PartNames:       make(map[string]string, len(Slots)),
		TotalBudget:     DefaultBudget,
		Currency:        DefaultCurrency,
		OtherComponents: []OtherComponent{},
	}
	for _, s := range Slots {
		rec.Checklist[s.ID] = false
		rec.Prices[s.ID] = 0
		rec.PartNames[s.ID] = ""
	}
	return rec
}

// Clone returns a deep copy of the record.
func (r ChecklistRecord) Clone() ChecklistRecord {
	out := r
	out.Checklist = make(map[string]bool, len(r.Checklist))
	for k, v := range r.Checklist {
		out.Checklist[k] = v
	}
	out.Prices = make(map[string]float64, len(r.Prices))
	for k, v := range r.Prices {
		out.Prices[k] = v
	}
	out.PartNames = make(map[string]string, len(r.PartNames))
	for k, v := range r.PartNames {
		out.PartNames[k] = v
	}
	out.OtherComponents = make([]OtherComponent, len(r.OtherComponents))
	copy(out.OtherComponents, r.OtherComponents)
	return out
}
