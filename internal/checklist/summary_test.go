package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalSpentCountsOnlyChecked(t *testing.T) {
	s := newTestStore()
	s.SetPrice("cpu", "300")
	s.SetPrice("gpu", "700")
	s.SetPrice("ram", "120") // unchecked, ignored
	s.ToggleItem("cpu")
	s.ToggleItem("gpu")

	fans := s.AddOtherComponent("Fans")
	s.SetOtherComponentPrice(fans, "40.5")
	s.ToggleOtherComponent(fans)

	strip := s.AddOtherComponent("RGB Strip")
	s.SetOtherComponentPrice(strip, "25") // unchecked, ignored

	assert.Equal(t, 1040.5, s.TotalSpent())

	s.SetPrice("ram", "9999")
	assert.Equal(t, 1040.5, s.TotalSpent(), "unchecked price changes do not move the total")
}

func TestTotalSpentIsExact(t *testing.T) {
	s := New()
	s.SetPrice("cpu", "0.1")
	s.SetPrice("gpu", "0.2")
	s.ToggleItem("cpu")
	s.ToggleItem("gpu")

	assert.Equal(t, 0.3, s.TotalSpent())
}

func TestProgress(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.CompletedCount())
	assert.Equal(t, 8, s.TotalCount())
	assert.Equal(t, 0, s.ProgressPercentage())

	s.ToggleItem("cpu")
	s.ToggleItem("gpu")
	s.ToggleItem("ram")
	assert.Equal(t, 3, s.CompletedCount())
	assert.Equal(t, 38, s.ProgressPercentage()) // 37.5 rounds up
}

func TestBudgetPercentageUnclampedBarClamped(t *testing.T) {
	s := New()
	s.SetBudget("1000")
	s.SetPrice("gpu", "1500")
	s.ToggleItem("gpu")

	sum := s.Summary()
	assert.Equal(t, 150, sum.BudgetPercentage)
	assert.Equal(t, 100, sum.BudgetBarWidth)
	assert.Equal(t, -500.0, sum.RemainingBudget)
	assert.Equal(t, 150, s.BudgetPercentage())
	assert.Equal(t, 100, s.BudgetBarWidth())
	assert.Equal(t, -500.0, s.RemainingBudget())
}

func TestBudgetPercentageZeroBudget(t *testing.T) {
	s := New()
	s.SetBudget("0")
	s.SetPrice("cpu", "10")
	s.ToggleItem("cpu")

	assert.Equal(t, 0, s.BudgetPercentage())
	assert.Equal(t, -10.0, s.RemainingBudget())
}

func TestPercentageHelpers(t *testing.T) {
	assert.Equal(t, 50, percentage(1, 2))
	assert.Equal(t, 0, percentage(1, 0))
	assert.Equal(t, 0, clampPercent(-3))
	assert.Equal(t, 42, clampPercent(42))
	assert.Equal(t, 100, clampPercent(250))
}
