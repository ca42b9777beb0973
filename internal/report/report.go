// Package report renders month summaries into fixed-layout PDF documents.
//
// The section order is part of the content contract: Title, Income, Fixed
// Expenses, Budget vs Actual, Spending Items, Summary. Rendering is
// deterministic for identical input, so a closed month's snapshot can be
// reproduced byte-for-byte from the same summary.
package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"monthwise/internal/models"
)

// Row heights in millimeters on an A4 page.
const (
	titleHeight  = 10.0
	headerHeight = 8.0
	lineHeight   = 6.0
	itemHeight   = 5.0

	pageUsable = 272.0 // 297mm A4 minus top and bottom margins

	// summaryReserve is the vertical space held back for the Summary section
	// so it always fits below the item list.
	summaryReserve = headerHeight + 2*lineHeight
)

// PDFRenderer builds the month-close report artifact.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render serializes a summary into a single-page PDF. Spending items that
// would overflow the page's vertical capacity are dropped, never paginated:
// the report is a fixed-size artifact and the newest items win.
func (r *PDFRenderer) Render(summary *models.MonthSummary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithBottomMargin(10).
		WithCreationDate(time.Unix(0, 0).UTC()).
		Build()

	m := maroto.New(cfg)
	used := 0.0

	addRow := func(height float64, value string, p props.Text) {
		m.AddRow(height, text.NewCol(12, value, p))
		used += height
	}

	title := fmt.Sprintf("Financial Summary - %d/%d", summary.Month.Month, summary.Month.Year)
	addRow(titleHeight, title, props.Text{Size: 16, Style: fontstyle.Bold})

	addRow(headerHeight, "INCOME", props.Text{Size: 12, Style: fontstyle.Bold})
	for _, entry := range summary.IncomeEntries {
		addRow(lineHeight, fmt.Sprintf("  %s - $%.2f", entry.Label, entry.Amount), props.Text{Size: 10})
	}
	addRow(lineHeight, fmt.Sprintf("Total Income: $%.2f", summary.TotalIncome),
		props.Text{Size: 10, Style: fontstyle.Bold})

	addRow(headerHeight, "FIXED EXPENSES", props.Text{Size: 12, Style: fontstyle.Bold})
	for _, expense := range summary.FixedExpenses {
		addRow(lineHeight, fmt.Sprintf("  %s - $%.2f", expense.Label, expense.Amount), props.Text{Size: 10})
	}
	addRow(lineHeight, fmt.Sprintf("Total Fixed: $%.2f", summary.TotalFixed),
		props.Text{Size: 10, Style: fontstyle.Bold})

	addRow(headerHeight, "BUDGET VS ACTUAL", props.Text{Size: 12, Style: fontstyle.Bold})
	for _, budget := range summary.Budgets {
		addRow(lineHeight, budgetLine(budget), props.Text{Size: 10})
	}

	addRow(headerHeight, "SPENDING ITEMS", props.Text{Size: 12, Style: fontstyle.Bold})
	for _, item := range summary.Items {
		if used+itemHeight > pageUsable-summaryReserve {
			break
		}
		line := fmt.Sprintf("  %s - %s - $%.2f (%s)",
			item.SpentOn.Format("2006-01-02"), item.Description, item.Amount, item.CategoryLabel)
		addRow(itemHeight, line, props.Text{Size: 9})
	}

	addRow(headerHeight, "SUMMARY", props.Text{Size: 12, Style: fontstyle.Bold})
	addRow(lineHeight, fmt.Sprintf("Total Spent: $%.2f", summary.TotalSpent), props.Text{Size: 10})
	addRow(lineHeight, remainingLine(summary.Remaining), props.Text{Size: 10, Style: fontstyle.Bold})

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// budgetLine formats one Budget vs Actual entry, annotated with overspend or
// remaining allocation.
func budgetLine(budget models.BudgetLine) string {
	var status string
	if budget.SpentAmount > budget.AllocatedAmount {
		status = fmt.Sprintf("OVER by $%.2f", budget.SpentAmount-budget.AllocatedAmount)
	} else {
		status = fmt.Sprintf("$%.2f remaining", budget.AllocatedAmount-budget.SpentAmount)
	}
	return fmt.Sprintf("  %s: $%.2f / $%.2f (%s)",
		budget.CategoryLabel, budget.SpentAmount, budget.AllocatedAmount, status)
}

// remainingLine labels a non-negative balance "Remaining" and a negative one
// "Deficit", showing the absolute value.
func remainingLine(remaining float64) string {
	if remaining >= 0 {
		return fmt.Sprintf("Remaining: $%.2f", remaining)
	}
	return fmt.Sprintf("Deficit: -$%.2f", -remaining)
}

// ItemCapacity reports how many item lines fit for a summary with the given
// number of income, fixed-expense, and budget lines. Exposed for tests.
func ItemCapacity(incomeLines, fixedLines, budgetLines int) int {
	used := titleHeight +
		headerHeight + float64(incomeLines)*lineHeight + lineHeight +
		headerHeight + float64(fixedLines)*lineHeight + lineHeight +
		headerHeight + float64(budgetLines)*lineHeight +
		headerHeight
	return int((pageUsable - summaryReserve - used) / itemHeight)
}
