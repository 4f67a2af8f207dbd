package checklist

import (
	"math"

	"github.com/mmynk/rigbudget/internal/models"
)

// Summary is the set of values derived from the store's state. Nothing in
// it is stored; it is recomputed on every call.
type Summary struct {
	CompletedCount     int
	TotalCount         int
	ProgressPercentage int
	TotalBudget        int64
	TotalSpent         float64
	RemainingBudget    float64

	// BudgetPercentage is not clamped: above 100 means overspent.
	BudgetPercentage int

	// BudgetBarWidth is BudgetPercentage clamped to [0, 100] for progress bars.
	BudgetBarWidth int

	Currency string
}

// Summary computes every derived value under a single read lock.
func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	completed := 0
	var spent []float64
	for _, slot := range models.Slots {
		if s.checklist[slot.ID] {
			completed++
			spent = append(spent, s.prices[slot.ID])
		}
	}
	for _, c := range s.others {
		if c.Checked {
			spent = append(spent, c.Price)
		}
	}

	total := len(models.Slots)
	totalSpent := sum(spent)
	budgetPct := percentage(totalSpent, float64(s.budget))

	return Summary{
		CompletedCount:     completed,
		TotalCount:         total,
		ProgressPercentage: percentage(float64(completed), float64(total)),
		TotalBudget:        s.budget,
		TotalSpent:         totalSpent,
		RemainingBudget:    float64(s.budget) - totalSpent,
		BudgetPercentage:   budgetPct,
		BudgetBarWidth:     clampPercent(budgetPct),
		Currency:           s.currency,
	}
}

// CompletedCount returns the number of acquired fixed slots.
func (s *Store) CompletedCount() int { return s.Summary().CompletedCount }

// TotalCount returns the number of fixed slots.
func (s *Store) TotalCount() int { return len(models.Slots) }

// ProgressPercentage returns round(100 * completed / total).
func (s *Store) ProgressPercentage() int { return s.Summary().ProgressPercentage }

// TotalSpent sums the prices of checked slots and checked extra components.
func (s *Store) TotalSpent() float64 { return s.Summary().TotalSpent }

// RemainingBudget returns the budget minus TotalSpent; negative when overspent.
func (s *Store) RemainingBudget() float64 { return s.Summary().RemainingBudget }

// BudgetPercentage returns round(100 * spent / budget), unclamped.
func (s *Store) BudgetPercentage() int { return s.Summary().BudgetPercentage }

// BudgetBarWidth returns BudgetPercentage clamped for progress-bar rendering.
func (s *Store) BudgetBarWidth() int { return s.Summary().BudgetBarWidth }

// percentage returns 0 when whole is not positive.
func percentage(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(100 * part / whole))
}

func clampPercent(p int) int {
	return max(0, min(p, 100))
}
