package opname_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarkop/opname/internal/domain"
	"github.com/sarkop/opname/internal/opname"
)

func TestEvaluateCondition(t *testing.T) {
	cases := []struct {
		name                 string
		par, current, minRst float64
		want                 domain.Condition
	}{
		{"danger at half of par", 10, 5, 4, domain.ConditionDanger}, // 5 <= 10*0.5, <= is inclusive
		{"danger below half of par", 10, 3, 4, domain.ConditionDanger},
		{"low just above half of par", 10, 5.5, 6, domain.ConditionLow},
		{"low at min restock", 20, 11, 11, domain.ConditionLow},
		{"normal", 20, 15, 4, domain.ConditionNormal},
		{"zero par disables danger", 0, 0, 4, domain.ConditionLow},
		{"zero par, above min restock", 0, 9, 4, domain.ConditionNormal},
		{"danger precedence when both hold", 10, 4, 100, domain.ConditionDanger},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, opname.EvaluateCondition(tc.par, tc.current, tc.minRst))
		})
	}
}

func TestEvaluateCondition_Deterministic(t *testing.T) {
	first := opname.EvaluateCondition(10, 5, 4)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, opname.EvaluateCondition(10, 5, 4))
	}
}

func TestParseQty(t *testing.T) {
	assert.Equal(t, 10.0, opname.ParseQty("10"))
	assert.Equal(t, 2.5, opname.ParseQty(" 2.5 "))
	assert.Equal(t, 0.0, opname.ParseQty("Tidak cukup"))
	assert.Equal(t, 0.0, opname.ParseQty(""))
	assert.Equal(t, 0.0, opname.ParseQty("-3")) // quantities are non-negative
}

func TestConditionRankAndLabel(t *testing.T) {
	assert.Less(t, domain.ConditionDanger.Rank(), domain.ConditionLow.Rank())
	assert.Less(t, domain.ConditionLow.Rank(), domain.ConditionNormal.Rank())
	assert.Equal(t, "normal", domain.ConditionNormal.Label())
	assert.Equal(t, "bahaya", domain.ConditionDanger.Label())
}
