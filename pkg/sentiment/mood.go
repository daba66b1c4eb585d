// Package sentiment scores utterance polarity and maps it to a mood label.
//
// Polarity is a scalar in [-1, 1]. The mood drives both the tone of the
// generated reply and the "emotion" field sent back to the client.
package sentiment

// Mood is the coarse emotional label derived from polarity.
// The values are the wire values of the reply "emotion" field.
type Mood string

const (
	MoodNeutral Mood = "neutral"
	MoodHappy   Mood = "happy"
	MoodAngry   Mood = "angry"
)

// Polarity thresholds. Values at exactly the threshold are neutral.
const (
	angryBelow = -0.3
	happyAbove = 0.3
)

// FromPolarity maps a polarity score to a mood label.
func FromPolarity(p float64) Mood {
	switch {
	case p < angryBelow:
		return MoodAngry
	case p > happyAbove:
		return MoodHappy
	default:
		return MoodNeutral
	}
}
