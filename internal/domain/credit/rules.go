package credit

import "github.com/shopspring/decimal"

const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// SuggestedMultiplier is the billing multiplier applied to a base premium.
// Unknown levels, including the empty string and other casings, get 1.00.
func SuggestedMultiplier(riskLevel string) float64 {
	switch riskLevel {
	case RiskLow:
		return 0.95
	case RiskMedium:
		return 1.00
	case RiskHigh:
		return 1.15
	default:
		return 1.00
	}
}

// DisplayEmphasis is the on-screen weighting the risk-review cards use to
// highlight a customer. It is not a billing multiplier and never feeds a premium.
func DisplayEmphasis(riskLevel string) float64 {
	switch riskLevel {
	case RiskMedium:
		return 1.3
	case RiskHigh:
		return 1.7
	default:
		return 1.0
	}
}

// RiskRank orders risk levels low, medium, high, then anything unrecognised.
func RiskRank(riskLevel string) int {
	switch riskLevel {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 4
	}
}

// ScoreBucket is a labelled credit score band used in histograms.
type ScoreBucket struct {
	Label string
	Rank  int
}

var scoreBuckets = []struct {
	min    int
	bucket ScoreBucket
}{
	{750, ScoreBucket{"Excellent (750+)", 1}},
	{700, ScoreBucket{"Good (700-749)", 2}},
	{650, ScoreBucket{"Fair (650-699)", 3}},
	{600, ScoreBucket{"Poor (600-649)", 4}},
}

var veryPoor = ScoreBucket{"Very Poor (<600)", 5}

// BucketFor places a score in its band. Lower bounds are inclusive.
func BucketFor(score int) ScoreBucket {
	for _, b := range scoreBuckets {
		if score >= b.min {
			return b.bucket
		}
	}
	return veryPoor
}

// Buckets lists every band in rank order.
func Buckets() []ScoreBucket {
	out := make([]ScoreBucket, 0, len(scoreBuckets)+1)
	for _, b := range scoreBuckets {
		out = append(out, b.bucket)
	}
	return append(out, veryPoor)
}

// AdjustPremium applies the billing multiplier for riskLevel, rounded to cents.
func AdjustPremium(base decimal.Decimal, riskLevel string) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(SuggestedMultiplier(riskLevel))).Round(2)
}
