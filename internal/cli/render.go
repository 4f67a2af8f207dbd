package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmynk/rigbudget/internal/checklist"
	"github.com/mmynk/rigbudget/internal/currency"
	"github.com/mmynk/rigbudget/internal/models"
)

const barCells = 20

// Spend above warnPercent of the budget is flagged; above 100 is over budget.
const warnPercent = 80

// RenderChecklist writes the slot table and the extra components.
func RenderChecklist(w io.Writer, s *checklist.Store) {
	code := s.Currency()

	fmt.Fprintln(w, models.CategoryCore)
	for i, slot := range models.Slots {
		fmt.Fprintf(w, "  %d. %s %-15s %-24s %s\n",
			i+1,
			checkbox(s.Checked(slot.ID)),
			slot.Label,
			orDash(s.PartName(slot.ID)),
			priceCell(s.Price(slot.ID), code),
		)
	}

	others := s.OtherComponents()
	fmt.Fprintln(w, "Other Components")
	if len(others) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, c := range others {
		fmt.Fprintf(w, "  %d. %s %-15s %-24s %s\n",
			i+1,
			checkbox(c.Checked),
			c.Name,
			orDash(c.PartName),
			priceCell(c.Price, code),
		)
	}
}

// RenderSummary writes progress, spend and the budget bar.
func RenderSummary(w io.Writer, sum checklist.Summary) {
	code := sum.Currency
	fmt.Fprintf(w, "Progress   %d/%d items (%d%%)\n", sum.CompletedCount, sum.TotalCount, sum.ProgressPercentage)
	fmt.Fprintf(w, "Budget     %s\n", currency.Format(float64(sum.TotalBudget), code))
	fmt.Fprintf(w, "Spent      %s\n", currency.Format(sum.TotalSpent, code))
	fmt.Fprintf(w, "Remaining  %s\n", currency.Format(sum.RemainingBudget, code))

	line := fmt.Sprintf("Used       %s %d%%", budgetBar(sum.BudgetBarWidth), sum.BudgetPercentage)
	if note := usageNote(sum.BudgetPercentage); note != "" {
		line += "  " + note
	}
	fmt.Fprintln(w, line)
}

func budgetBar(width int) string {
	filled := width * barCells / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barCells-filled) + "]"
}

func usageNote(pct int) string {
	switch {
	case pct > 100:
		return "OVER BUDGET"
	case pct > warnPercent:
		return "nearing budget"
	default:
		return ""
	}
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func priceCell(price float64, code string) string {
	if price == 0 {
		return "-"
	}
	return currency.Format(price, code)
}
