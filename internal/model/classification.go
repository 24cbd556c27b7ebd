package model

// ClassificationCode is a single entry of the SIC catalog: an industry
// classification code and its canonical activity description.
type ClassificationCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// MatchCandidate is one catalog entry scored against a business description.
// RawSimilarity is in [0,1] and carries no sector boost.
type MatchCandidate struct {
	Code          string  `json:"code"`
	Description   string  `json:"description"`
	RawSimilarity float64 `json:"raw_similarity"`
}

// AccuracyResult is the outcome of scoring one code against one description.
//
// Evaluable distinguishes "we had enough input to judge" from "no information
// present": an unknown code against a real description is a confidently bad
// match (Accuracy 0, Evaluable true), while an empty description cannot be
// judged at all (Accuracy 0, Evaluable false). Callers must not collapse the
// two into the same numeric zero.
type AccuracyResult struct {
	Code          string  `json:"code"`
	RawSimilarity float64 `json:"raw_similarity"`
	Accuracy      float64 `json:"accuracy"`                // percent, 0..100, boost included
	BoostApplied  float64 `json:"boost_applied,omitempty"` // percentage points added by sector rules
	BoostReason   string  `json:"boost_reason,omitempty"`
	Evaluable     bool    `json:"evaluable"`
}

// Band classifies an accuracy percentage for presentation layers.
type Band string

const (
	BandHigh   Band = "high"   // >= 80
	BandMedium Band = "medium" // 60..79
	BandLow    Band = "low"    // < 60
)

// BandFor returns the accuracy band for a 0..100 score.
func BandFor(accuracy float64) Band {
	switch {
	case accuracy >= 80:
		return BandHigh
	case accuracy >= 60:
		return BandMedium
	default:
		return BandLow
	}
}
