package model

// CompanyRecord is a read-only input row supplied by the data-loading layer.
type CompanyRecord struct {
	ID                  string `json:"id"`
	Name                string `json:"name,omitempty"`
	BusinessDescription string `json:"business_description"`
	CurrentCode         string `json:"current_code,omitempty"`
}

// CompanyScore holds the dual accuracy computed for one company: how well the
// currently assigned code fits the description, and how well the engine's own
// prediction fits.
type CompanyScore struct {
	Company   CompanyRecord   `json:"company"`
	Old       AccuracyResult  `json:"old"`
	Predicted *MatchCandidate `json:"predicted,omitempty"` // nil when no candidate cleared the floor
	New       AccuracyResult  `json:"new"`
}
