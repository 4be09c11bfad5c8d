package types

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ProposalID identifies a stored proposal. The service may send it as a
// JSON number or a string; it is kept in its textual form.
type ProposalID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *ProposalID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProposalID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("proposal id must be a string or number: %w", err)
	}
	*id = ProposalID(n.String())
	return nil
}

// String returns the identifier as text.
func (id ProposalID) String() string {
	return string(id)
}

// SimilarProposal is a stored proposal close to the candidate.
type SimilarProposal struct {
	ID         ProposalID `json:"id"`
	Title      string     `json:"title"`
	Similarity float64    `json:"similarity" validate:"gte=0,lte=1"` // 0-1, cosine-style closeness
}

// NoveltyResult is the scoring service's answer to a novelty check.
// SimilarProposals arrive ordered by descending similarity and are never re-sorted.
type NoveltyResult struct {
	NoveltyScore          float64           `json:"novelty_score" validate:"gte=0,lte=100"`
	Interpretation        string            `json:"interpretation"`
	TotalProposalsChecked int               `json:"total_proposals_checked" validate:"gte=0"`
	SimilarProposals      []SimilarProposal `json:"similar_proposals" validate:"dive"`
}

// Validate checks the range invariants of the result.
func (r *NoveltyResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// IngestResponse is returned after a document was added to the corpus.
type IngestResponse struct {
	ID      ProposalID `json:"id,omitempty"`
	Title   string     `json:"title,omitempty"`
	Message string     `json:"message"`
}

// ApplicationCheckRequest is the body of an application novelty check.
type ApplicationCheckRequest struct {
	ApplicationNumber string `json:"application_number"`
	ExtractedText     string `json:"extracted_text"`
}

// SimilarApplication is a stored application close to the checked one.
type SimilarApplication struct {
	ApplicationNumber    string  `json:"application_number"`
	SimilarityPercentage float64 `json:"similarity_percentage" validate:"gte=0,lte=100"`
}

// ApplicationCheckResult is the answer to an application novelty check.
// The checked application is stored by the service as part of the call.
type ApplicationCheckResult struct {
	ApplicationNumber     string               `json:"application_number"`
	NoveltyScore          float64              `json:"novelty_score" validate:"gte=0,lte=100"`
	TotalProposalsChecked int                  `json:"total_proposals_checked" validate:"gte=0"`
	SimilarProposals      []SimilarApplication `json:"similar_proposals" validate:"dive"`
}

// Validate checks the range invariants of the result.
func (r *ApplicationCheckResult) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// HealthStatus is the scoring service's health report.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
}
