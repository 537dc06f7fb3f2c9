package pipeline

import "github.com/saloni/coldreach/internal/types"

// OutcomeKind classifies what happened to one contact.
type OutcomeKind int

const (
	// OutcomeSuccess means the draft was created.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeMissingTemplate means no template matched the contact's role.
	OutcomeMissingTemplate
	// OutcomeMissingResume means no resume matched the contact's role.
	OutcomeMissingResume
	// OutcomeError covers every other per-contact failure.
	OutcomeError
)

// Outcome is the result of processing one contact. Workers produce these
// and the single-threaded aggregation step folds them into the report, so
// no counter is ever touched concurrently.
type Outcome struct {
	Kind    OutcomeKind
	Contact types.Contact

	// Set for missing-resource outcomes.
	Expected   string
	Suggestion string

	// Set for OutcomeError.
	Message string

	// Set for OutcomeSuccess.
	DraftID string
}
