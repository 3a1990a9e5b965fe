package twin

import (
	"fmt"
	"strings"

	"github.com/hyperjump/omoide/internal/models"
)

// Budgeter assembles retrieved entries into a bounded context string.
// Blocks are included whole, in rank order, until the next block would
// overflow the character budget.
type Budgeter struct {
	budget int
}

// NewBudgeter creates a budgeter with the given character budget.
func NewBudgeter(budget int) *Budgeter {
	return &Budgeter{budget: budget}
}

// Build formats the scored entries into dated memory blocks and returns the
// joined context together with the number of blocks included.
func (b *Budgeter) Build(results []models.ScoredEntry) (string, int) {
	var sb strings.Builder
	count := 0
	for _, r := range results {
		block := formatBlock(r.Entry)
		if sb.Len()+len(block) > b.budget {
			break
		}
		sb.WriteString(block)
		count++
	}
	return sb.String(), count
}

func formatBlock(entry *models.Entry) string {
	return fmt.Sprintf("[Memory from %s]\n%s\n\n", entry.Date.Format("2006-01-02"), strings.TrimSpace(entry.Content))
}
