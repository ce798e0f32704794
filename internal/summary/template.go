package summary

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	notEnoughValue = "tidak cukup"
	maxPriority    = 5
	maxHealthy     = 2
)

// TemplateComposer writes the report without any external service. Output
// is deterministic for a given input, so repeated requests over the same
// window produce byte-identical reports.
type TemplateComposer struct{}

func NewTemplateComposer() *TemplateComposer {
	return &TemplateComposer{}
}

func (t *TemplateComposer) Summarize(_ context.Context, digests []SubmissionDigest, startDate, endDate string) (string, error) {
	staff := make(map[string]struct{})
	for _, d := range digests {
		name := strings.TrimSpace(d.Staff)
		if name == "" {
			name = strings.TrimSpace(d.Timestamp)
		}
		if name != "" {
			staff[name] = struct{}{}
		}
	}

	latest := latestItems(digests)
	priorities, healthy := splitByLevel(latest)

	var b strings.Builder
	fmt.Fprintf(&b, "Stock Opname Report for %s to %s\n\n", startDate, endDate)
	fmt.Fprintf(&b, "Reports submitted: %d, by %d staff member(s).\n\n", len(digests), len(staff))

	if len(priorities) > 0 {
		b.WriteString("Priority items to reorder:\n")
		for _, it := range priorities {
			fmt.Fprintf(&b, "- %s: %s\n", it.name, it.value)
		}
		b.WriteString("\n")
	}

	if len(healthy) > 0 {
		b.WriteString("Well stocked:\n")
		for _, it := range healthy {
			fmt.Fprintf(&b, "- %s: %s\n", it.name, it.value)
		}
		b.WriteString("\n")
	}

	b.WriteString("Overall, stock levels are being monitored well. Let's restock the priority items.")

	return b.String(), nil
}

type observedItem struct {
	name  string
	value string
	qty   float64
	num   bool
}

// latestItems picks the last digest's observations; the caller passes
// digests in submission order, so the final one reflects the freshest count.
func latestItems(digests []SubmissionDigest) []observedItem {
	if len(digests) == 0 {
		return nil
	}

	latest := digests[len(digests)-1]
	items := make([]observedItem, 0, len(latest.Items))
	for name, value := range latest.Items {
		it := observedItem{name: name, value: value}
		if qty, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			it.qty, it.num = qty, true
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool {
		// numeric first, ascending by quantity; text observations by name
		if items[i].num != items[j].num {
			return items[i].num
		}
		if items[i].num && items[i].qty != items[j].qty {
			return items[i].qty < items[j].qty
		}
		return items[i].name < items[j].name
	})

	return items
}

func splitByLevel(items []observedItem) (priorities, healthy []observedItem) {
	for _, it := range items {
		if len(priorities) == maxPriority {
			break
		}
		if it.num || strings.EqualFold(strings.TrimSpace(it.value), notEnoughValue) {
			priorities = append(priorities, it)
		}
	}

	// highest numeric counts close the report on a good note
	for i := len(items) - 1; i >= 0 && len(healthy) < maxHealthy; i-- {
		if items[i].num && !contains(priorities, items[i].name) {
			healthy = append(healthy, items[i])
		}
	}

	return priorities, healthy
}

func contains(items []observedItem, name string) bool {
	for _, it := range items {
		if it.name == name {
			return true
		}
	}

	return false
}
