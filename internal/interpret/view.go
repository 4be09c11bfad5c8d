package interpret

import (
	"fmt"
	"math"

	"github.com/jonathan/novelty-score/internal/types"
)

// View is a novelty result shaped for display.
type View struct {
	Score                 float64
	ScoreText             string
	Color                 Color
	Band                  string
	Interpretation        string
	TotalProposalsChecked int
	SimilarCount          int
	Rows                  []Row
}

// HasSimilar reports whether the similar-proposals section should be shown.
func (v View) HasSimilar() bool {
	return len(v.Rows) > 0
}

// Row is one similar proposal, in the order the service returned it.
type Row struct {
	ID          string
	Title       string
	Similarity  float64
	PercentText string
	BarWidth    float64 // percent, clamped to [0,100]
	BarColor    Color
	Level       Level
}

// Present derives display values from a result. The result is only read.
func Present(result *types.NoveltyResult) View {
	if result == nil {
		return View{}
	}

	view := View{
		Score:                 result.NoveltyScore,
		ScoreText:             fmt.Sprintf("%.1f", result.NoveltyScore),
		Color:                 ScoreColor(result.NoveltyScore),
		Band:                  ScoreBand(result.NoveltyScore),
		Interpretation:        result.Interpretation,
		TotalProposalsChecked: result.TotalProposalsChecked,
		SimilarCount:          len(result.SimilarProposals),
	}

	if len(result.SimilarProposals) == 0 {
		return view
	}

	levels := Levels(result)
	view.Rows = make([]Row, 0, len(result.SimilarProposals))
	for i, p := range result.SimilarProposals {
		view.Rows = append(view.Rows, Row{
			ID:          p.ID.String(),
			Title:       p.Title,
			Similarity:  p.Similarity,
			PercentText: fmt.Sprintf("%.1f%%", p.Similarity*100),
			BarWidth:    math.Max(0, math.Min(100, p.Similarity*100)),
			BarColor:    SimilarityBarColor(p.Similarity),
			Level:       levels[i],
		})
	}

	return view
}

// Levels returns the match level of each similar proposal, in input order.
func Levels(result *types.NoveltyResult) []Level {
	if result == nil {
		return nil
	}
	levels := make([]Level, len(result.SimilarProposals))
	for i, p := range result.SimilarProposals {
		levels[i] = MatchLevel(p.Similarity)
	}
	return levels
}
