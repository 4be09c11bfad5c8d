package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoveltyResult_UnmarshalNumericAndStringIDs(t *testing.T) {
	body := `{
		"novelty_score": 61.2,
		"interpretation": "Novel - This proposal has significant unique elements",
		"total_proposals_checked": 7,
		"similar_proposals": [
			{"id": 12, "title": "Solar membrane", "similarity": 0.52},
			{"id": "p-9", "title": "Wind lattice", "similarity": 0.31}
		]
	}`

	var result NoveltyResult
	require.NoError(t, json.Unmarshal([]byte(body), &result))

	assert.InDelta(t, 61.2, result.NoveltyScore, 1e-9)
	assert.Equal(t, 7, result.TotalProposalsChecked)
	require.Len(t, result.SimilarProposals, 2)
	assert.Equal(t, ProposalID("12"), result.SimilarProposals[0].ID)
	assert.Equal(t, "p-9", result.SimilarProposals[1].ID.String())
	assert.NoError(t, result.Validate())
}

func TestProposalID_RejectsNonScalar(t *testing.T) {
	var id ProposalID
	err := json.Unmarshal([]byte(`{"a":1}`), &id)
	assert.Error(t, err)
}

func TestNoveltyResult_ValidateRanges(t *testing.T) {
	tests := []struct {
		name    string
		result  NoveltyResult
		wantErr bool
	}{
		{
			name:   "bounds inclusive",
			result: NoveltyResult{NoveltyScore: 100, SimilarProposals: []SimilarProposal{{ID: "1", Similarity: 1}, {ID: "2", Similarity: 0}}},
		},
		{
			name:    "score above 100",
			result:  NoveltyResult{NoveltyScore: 100.5},
			wantErr: true,
		},
		{
			name:    "negative total",
			result:  NoveltyResult{NoveltyScore: 50, TotalProposalsChecked: -1},
			wantErr: true,
		},
		{
			name:    "similarity above 1",
			result:  NoveltyResult{NoveltyScore: 50, SimilarProposals: []SimilarProposal{{ID: "1", Similarity: 1.2}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCandidateInput_Kinds(t *testing.T) {
	var in CandidateInput = NewTextInput("hello")
	assert.Equal(t, InputText, in.Kind())

	in = NewFileInput("a.pdf", []byte("%PDF"))
	assert.Equal(t, InputFile, in.Kind())

	var missing *FileInput
	assert.Equal(t, int64(0), missing.Size())
	assert.Equal(t, int64(4), NewFileInput("a.pdf", []byte("%PDF")).Size())
}
