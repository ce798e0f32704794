package domain

// Condition is the tri-state restock condition of a stock item.
type Condition string

const (
	ConditionDanger Condition = "bahaya"
	ConditionLow    Condition = "low"
	ConditionNormal Condition = "-"
)

var conditionRanks = map[Condition]int{
	ConditionDanger: 0,
	ConditionLow:    1,
	ConditionNormal: 2,
}

// Rank returns the urgency order of a condition: bahaya before low before
// normal. Unknown values sort last.
func (c Condition) Rank() int {
	if rank, ok := conditionRanks[c]; ok {
		return rank
	}

	return len(conditionRanks)
}

// Label returns a human-readable label, mapping the "-" sentinel to
// "normal" for display.
func (c Condition) Label() string {
	if c == ConditionNormal {
		return "normal"
	}

	return string(c)
}
