package credit

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSuggestedMultiplier(t *testing.T) {
	tests := []struct {
		level string
		want  float64
	}{
		{"low", 0.95},
		{"medium", 1.00},
		{"high", 1.15},
		{"", 1.00},
		{"LOW", 1.00},
		{"High", 1.00},
		{"critical", 1.00},
		{" low", 1.00},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestedMultiplier(tt.level))
		})
	}
}

func TestDisplayEmphasisIsSeparateFromBilling(t *testing.T) {
	assert.Equal(t, 1.0, DisplayEmphasis("low"))
	assert.Equal(t, 1.3, DisplayEmphasis("medium"))
	assert.Equal(t, 1.7, DisplayEmphasis("high"))
	assert.Equal(t, 1.0, DisplayEmphasis("unknown"))

	assert.NotEqual(t, DisplayEmphasis("high"), SuggestedMultiplier("high"))
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		score int
		label string
		rank  int
	}{
		{850, "Excellent (750+)", 1},
		{750, "Excellent (750+)", 1},
		{749, "Good (700-749)", 2},
		{700, "Good (700-749)", 2},
		{699, "Fair (650-699)", 3},
		{650, "Fair (650-699)", 3},
		{649, "Poor (600-649)", 4},
		{600, "Poor (600-649)", 4},
		{599, "Very Poor (<600)", 5},
		{300, "Very Poor (<600)", 5},
		{0, "Very Poor (<600)", 5},
	}

	for _, tt := range tests {
		b := BucketFor(tt.score)
		assert.Equal(t, tt.label, b.Label, "score %d", tt.score)
		assert.Equal(t, tt.rank, b.Rank, "score %d", tt.score)
	}
}

func TestBuckets_RankOrderIsNotAlphabetical(t *testing.T) {
	labels := make([]string, 0, 5)
	for _, b := range Buckets() {
		labels = append(labels, b.Label)
	}

	assert.Equal(t, []string{
		"Excellent (750+)", "Good (700-749)", "Fair (650-699)", "Poor (600-649)", "Very Poor (<600)",
	}, labels)
	assert.False(t, sort.StringsAreSorted(labels))
}

func TestRiskRank(t *testing.T) {
	assert.Less(t, RiskRank("low"), RiskRank("medium"))
	assert.Less(t, RiskRank("medium"), RiskRank("high"))
	assert.Less(t, RiskRank("high"), RiskRank("severe"))
}

func TestAdjustPremium(t *testing.T) {
	base := decimal.RequireFromString("1200.00")

	assert.Equal(t, "1140", AdjustPremium(base, "low").String())
	assert.Equal(t, "1200", AdjustPremium(base, "medium").String())
	assert.Equal(t, "1380", AdjustPremium(base, "high").String())
	assert.Equal(t, "1200", AdjustPremium(base, "").String())

	assert.Equal(t, "95.01", AdjustPremium(decimal.RequireFromString("100.01"), "low").String())
}

func TestProfileScenarios(t *testing.T) {
	t.Run("excellent low-risk customer", func(t *testing.T) {
		p := Profile{FirstName: "Ada", LastName: "Lovelace", CreditScore: 820, RiskLevel: "low"}
		s := p.Summarize()
		assert.Equal(t, 0.95, s.SuggestedMultiplier)
		assert.Equal(t, "Ada Lovelace", s.Name)
		assert.Equal(t, "Excellent (750+)", BucketFor(p.CreditScore).Label)
	})

	t.Run("poor high-risk customer", func(t *testing.T) {
		p := Profile{CreditScore: 610, RiskLevel: "high"}
		assert.Equal(t, 1.15, p.Summarize().SuggestedMultiplier)
		assert.Equal(t, "Poor (600-649)", BucketFor(p.CreditScore).Label)
	})

	t.Run("inconsistent label is reported as given", func(t *testing.T) {
		p := Profile{CreditScore: 540, RiskLevel: "low"}
		s := p.Summarize()
		assert.Equal(t, "low", s.RiskLevel)
		assert.Equal(t, 540, s.CreditScore)
		assert.Equal(t, 0.95, s.SuggestedMultiplier)
	})
}
