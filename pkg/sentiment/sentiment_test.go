package sentiment_test

import (
	"testing"

	"github.com/voxfin/go-voxfin/pkg/sentiment"
)

func TestFromPolarity(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		want     sentiment.Mood
	}{
		{"strongly negative", -0.9, sentiment.MoodAngry},
		{"just below angry threshold", -0.31, sentiment.MoodAngry},
		{"angry boundary is neutral", -0.3, sentiment.MoodNeutral},
		{"zero", 0, sentiment.MoodNeutral},
		{"happy boundary is neutral", 0.3, sentiment.MoodNeutral},
		{"just above happy threshold", 0.31, sentiment.MoodHappy},
		{"strongly positive", 0.9, sentiment.MoodHappy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sentiment.FromPolarity(tt.polarity); got != tt.want {
				t.Errorf("FromPolarity(%v) = %q, want %q", tt.polarity, got, tt.want)
			}
		})
	}
}

func TestAnalyzerClassify(t *testing.T) {
	a := sentiment.NewAnalyzer()

	tests := []struct {
		name string
		text string
		want sentiment.Mood
	}{
		{"hostile", "This is terrible, awful, I hate it", sentiment.MoodAngry},
		{"furious user", "I'm furious about my portfolio", sentiment.MoodAngry},
		{"delighted", "This is wonderful, I love it, great work", sentiment.MoodHappy},
		{"flat", "The market opens at nine thirty", sentiment.MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q (score %v), want %q", tt.text, got, a.Score(tt.text), tt.want)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	a := sentiment.NewAnalyzer()
	for _, text := range []string{"", "good", "bad", "absolutely fantastic", "utterly dreadful"} {
		score := a.Score(text)
		if score < -1 || score > 1 {
			t.Errorf("Score(%q) = %v, outside [-1, 1]", text, score)
		}
	}
}
