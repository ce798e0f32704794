package opname

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sarkop/opname/internal/domain"
)

// DefaultFallbackVendor buckets items with no vendor assigned.
const DefaultFallbackVendor = "Tanpa Vendor"

// NeedsRestock selects the items included in the vendor broadcast.
func NeedsRestock(item domain.CurrentStockItem) bool {
	return item.CurrentQty <= item.MinRestock
}

// NeedsAttention is the broader predicate gating the supplier-contact detail
// view. It is intentionally distinct from NeedsRestock; the two views have
// always used different cuts and unifying them would change both.
func NeedsAttention(item domain.CurrentStockItem) bool {
	return item.CurrentQty < item.ParQty || item.Condition != domain.ConditionNormal
}

// SortByUrgency returns a copy ordered bahaya, low, normal. The sort is
// stable so same-condition items keep their source order.
func SortByUrgency(items []domain.CurrentStockItem) []domain.CurrentStockItem {
	sorted := make([]domain.CurrentStockItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Condition.Rank() < sorted[j].Condition.Rank()
	})

	return sorted
}

// VendorGroup is one vendor's bucket of items, in insertion order of the
// grouped input.
type VendorGroup struct {
	Vendor string
	Items  []domain.CurrentStockItem
}

// GroupByVendor buckets items by vendor, substituting fallback for an empty
// vendor field. Group order follows first appearance in the input.
func GroupByVendor(items []domain.CurrentStockItem, fallback string) []VendorGroup {
	if fallback == "" {
		fallback = DefaultFallbackVendor
	}

	index := make(map[string]int)
	var groups []VendorGroup
	for _, item := range items {
		vendor := item.Vendor
		if vendor == "" {
			vendor = fallback
		}
		i, ok := index[vendor]
		if !ok {
			i = len(groups)
			index[vendor] = i
			groups = append(groups, VendorGroup{Vendor: vendor})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}

// WhatsAppSuppliers keeps only contacts reachable over WhatsApp; the media
// match is case-insensitive.
func WhatsAppSuppliers(suppliers []domain.SupplierContact) []domain.SupplierContact {
	var out []domain.SupplierContact
	for _, s := range suppliers {
		if strings.EqualFold(strings.TrimSpace(s.Media), "whatsapp") {
			out = append(out, s)
		}
	}

	return out
}

// GreetingName resolves the name a message addresses: the alias of the
// matching supplier contact when one exists, otherwise the vendor itself.
func GreetingName(vendor string, suppliers []domain.SupplierContact) string {
	for _, s := range suppliers {
		if s.Name == vendor && s.Alias != "" {
			return s.Alias
		}
	}

	return vendor
}

// ComposeBroadcastMessage renders the restock request used by the quick
// all-vendor broadcast. Lines carry the current quantity.
func ComposeBroadcastMessage(greeting string, items []domain.CurrentStockItem) string {
	lines := make([]string, 0, len(items))
	for _, i := range items {
		lines = append(lines, strings.TrimSpace(fmt.Sprintf("- %s: %s %s", i.Item, trimFloat(i.CurrentQty), i.Unit)))
	}

	return composeMessage(greeting, lines)
}

// ComposeDetailMessage renders the per-supplier request of the contact
// detail view. Lines carry the restock quantity instead of the current one;
// the two line formats are different on purpose.
func ComposeDetailMessage(greeting string, items []domain.CurrentStockItem) string {
	lines := make([]string, 0, len(items))
	for _, i := range items {
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", i.Item, trimFloat(i.MinRestock), i.Unit))
	}

	return composeMessage(greeting, lines)
}

func composeMessage(greeting string, lines []string) string {
	return fmt.Sprintf(
		"Halo %s,\n\nKami dari Sarkop membutuhkan barang yang perlu direstock:\n\n%s\n\nMohon segera informasikan apabila ada barang yang tidak tersedia. Terima kasih.",
		greeting, strings.Join(lines, "\n"),
	)
}

// trimFloat renders quantities without a trailing ".0" for whole numbers.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildVendorMessages composes the broadcast view: urgency-sorted items
// below their restock threshold, grouped by vendor, one message per vendor,
// vendors ordered by descending item count (ties keep grouping order).
func BuildVendorMessages(items []domain.CurrentStockItem, suppliers []domain.SupplierContact, fallback string) []domain.VendorMessage {
	var needs []domain.CurrentStockItem
	for _, item := range SortByUrgency(items) {
		if NeedsRestock(item) {
			needs = append(needs, item)
		}
	}

	whatsapp := WhatsAppSuppliers(suppliers)

	groups := GroupByVendor(needs, fallback)
	messages := make([]domain.VendorMessage, 0, len(groups))
	for _, g := range groups {
		messages = append(messages, domain.VendorMessage{
			Vendor:  g.Vendor,
			Items:   g.Items,
			Message: ComposeBroadcastMessage(GreetingName(g.Vendor, whatsapp), g.Items),
		})
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return len(messages[i].Items) > len(messages[j].Items)
	})

	return messages
}

// BuildSupplierMessage composes the detail-view request for one vendor out
// of the needs-attention item set: that vendor's group, urgency-sorted.
func BuildSupplierMessage(vendor string, attention []domain.CurrentStockItem, suppliers []domain.SupplierContact, fallback string) (domain.VendorMessage, bool) {
	for _, g := range GroupByVendor(attention, fallback) {
		if g.Vendor != vendor {
			continue
		}
		items := SortByUrgency(g.Items)

		return domain.VendorMessage{
			Vendor:  vendor,
			Items:   items,
			Message: ComposeDetailMessage(GreetingName(vendor, suppliers), items),
		}, true
	}

	return domain.VendorMessage{}, false
}
