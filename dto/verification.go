package dto

// MatchStatus is the per-field comparison outcome. It is a tagged enum
// rather than a nullable boolean so that "no reference data" and
// "compared and disagreed" stay distinguishable.
type MatchStatus string

const (
	// MatchStatusMatch means the extracted value agreed with the reference.
	MatchStatusMatch MatchStatus = "match"
	// MatchStatusMismatch means both sides were compared and disagreed.
	MatchStatusMismatch MatchStatus = "mismatch"
	// MatchStatusNoReference means no reference record was found for the
	// field, so no comparison was possible.
	MatchStatusNoReference MatchStatus = "no_reference"
	// MatchStatusPresenceOnly means the field has no external source of
	// truth and was scored on extraction success alone.
	MatchStatusPresenceOnly MatchStatus = "presence_only"
)

type VerificationStatus string

const (
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
)

// VerificationResult is the outcome of one verification run. A re-run
// produces a brand-new result; nothing is mutated in place.
type VerificationResult struct {
	ID              string                 `json:"id"`
	PerFieldMatch   map[string]MatchStatus `json:"per_field_match"`
	MatchedCount    int                    `json:"matched_count"`
	ComparableCount int                    `json:"comparable_count"`
	RiskScore       float64                `json:"risk_score"`
	Status          VerificationStatus     `json:"status"`
	VerifiedAt      string                 `json:"verified_at"`
}
