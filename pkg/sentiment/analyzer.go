package sentiment

import "github.com/jonreiter/govader"

// Analyzer scores free text with a VADER lexicon model.
// It holds no per-call state and is safe for concurrent use.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates an analyzer with the bundled English lexicon.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		vader: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Score returns the compound polarity of text in [-1, 1].
func (a *Analyzer) Score(text string) float64 {
	return a.vader.PolarityScores(text).Compound
}

// Classify scores text and maps the polarity to a mood label.
func (a *Analyzer) Classify(text string) Mood {
	return FromPolarity(a.Score(text))
}
