// Package interpret maps raw novelty results to display semantics.
// Every function here is pure and total over its numeric domain.
package interpret

// Color is one of the four score buckets.
type Color string

// Score color buckets, from most to least favorable.
const (
	Green  Color = "green"
	Blue   Color = "blue"
	Orange Color = "orange"
	Red    Color = "red"
)

// Level is the qualitative closeness of a similar proposal.
type Level string

// Match levels.
const (
	High   Level = "High"
	Medium Level = "Medium"
	Low    Level = "Low"
)

// ScoreColor buckets a novelty score. Lower bounds are inclusive:
// >= 80 green, >= 60 blue, >= 40 orange, otherwise red.
// NaN compares false everywhere and lands in red.
func ScoreColor(score float64) Color {
	switch {
	case score >= 80:
		return Green
	case score >= 60:
		return Blue
	case score >= 40:
		return Orange
	default:
		return Red
	}
}

// Hex returns the display color for the bucket.
func (c Color) Hex() string {
	switch c {
	case Green:
		return "#48bb78"
	case Blue:
		return "#4299e1"
	case Orange:
		return "#ed8936"
	default:
		return "#f56565"
	}
}

// Rank orders buckets by favorability; higher is better.
func (c Color) Rank() int {
	switch c {
	case Green:
		return 3
	case Blue:
		return 2
	case Orange:
		return 1
	default:
		return 0
	}
}

// MatchLevel classifies a similarity. Upper bounds are inclusive:
// > 0.7 High, > 0.4 Medium, otherwise Low.
func MatchLevel(similarity float64) Level {
	switch {
	case similarity > 0.7:
		return High
	case similarity > 0.4:
		return Medium
	default:
		return Low
	}
}

// SimilarityBarColor colors a similarity bar as if it were a novelty score,
// so a less similar proposal gets a more favorable color.
func SimilarityBarColor(similarity float64) Color {
	return ScoreColor((1 - similarity) * 100)
}

// Band is one row of the score legend.
type Band struct {
	Min         int
	Max         int
	Label       string
	Description string
}

var bands = []Band{
	{Min: 80, Max: 100, Label: "Highly novel", Description: "Your proposal is very unique"},
	{Min: 60, Max: 79, Label: "Novel", Description: "Significant unique elements present"},
	{Min: 40, Max: 59, Label: "Moderately novel", Description: "Some similarities exist"},
	{Min: 20, Max: 39, Label: "Low novelty", Description: "Quite similar to existing work"},
	{Min: 0, Max: 19, Label: "Very low novelty", Description: "Very similar to existing proposals"},
}

// Legend returns the score bands from highest to lowest.
func Legend() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// ScoreBand returns the legend label for a score.
func ScoreBand(score float64) string {
	for _, b := range bands {
		if score >= float64(b.Min) {
			return b.Label
		}
	}
	return bands[len(bands)-1].Label
}
