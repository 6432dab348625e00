package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeightsSumTo100(t *testing.T) {
	sum := 0
	for _, c := range Criteria {
		sum += c.Weight()
	}
	assert.Equal(t, 100, sum)
}

func TestComputeTotal(t *testing.T) {
	all := func(v int) map[Criterion]int {
		m := map[Criterion]int{}
		for _, c := range Criteria {
			m[c] = v
		}
		return m
	}
	assert.Equal(t, 100.0, ComputeTotal(all(100)))
	assert.Equal(t, 0.0, ComputeTotal(all(0)))
	assert.Equal(t, 80.0, ComputeTotal(all(80)))

	// hanya innovative_product (bobot 25) bernilai 90 → 22.5
	assert.Equal(t, 22.5, ComputeTotal(map[Criterion]int{CriterionInnovativeProduct: 90}))
	// background 33 (bobot 5) → 1.65
	assert.Equal(t, 1.65, ComputeTotal(map[Criterion]int{CriterionBackground: 33}))
}

func TestSetScores(t *testing.T) {
	g := &TenantGradingModel{}
	assert.False(t, g.Graded())
	assert.Empty(t, g.Scores())

	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	g.SetScores(map[Criterion]int{CriterionRAB: 50, CriterionResources: 40}, at)

	assert.True(t, g.Graded())
	assert.Equal(t, 50, *g.RAB)
	assert.Equal(t, 40, *g.Resources)
	assert.Equal(t, 0, *g.Background)
	assert.Equal(t, 11.0, *g.TotalScore)
	assert.Len(t, g.Scores(), len(Criteria))
}
