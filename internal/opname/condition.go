package opname

import (
	"strconv"
	"strings"

	"github.com/sarkop/opname/internal/domain"
)

// dangerRatio is the fraction of par quantity at or below which an item is
// in danger condition. Fixed by the restock policy, not configurable.
const dangerRatio = 0.5

// EvaluateCondition maps quantities to the tri-state restock condition.
// The danger check takes precedence over the low check even when both hold,
// and a zero or missing par quantity disables the danger branch entirely.
// This is the single source of truth for condition; values present in raw
// input are ignored and recomputed.
func EvaluateCondition(parQty, currentQty, minRestock float64) domain.Condition {
	if parQty > 0 && currentQty <= parQty*dangerRatio {
		return domain.ConditionDanger
	}
	if currentQty <= minRestock {
		return domain.ConditionLow
	}

	return domain.ConditionNormal
}

// ParseQty parses a free-text observed quantity. Non-numeric input resolves
// to 0 rather than an error, and negative values clamp to 0: quantities are
// non-negative by the data model.
func ParseQty(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}
