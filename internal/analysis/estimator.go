package analysis

import "strings"

// ExpectedDurationRange is the tolerance band a rendered line should fall in
type ExpectedDurationRange struct {
	MinSeconds float64 `json:"min_seconds"`
	MaxSeconds float64 `json:"max_seconds"`
}

// Contains reports whether d lies inside the band, bounds included
func (r ExpectedDurationRange) Contains(d float64) bool {
	return d >= r.MinSeconds && d <= r.MaxSeconds
}

// Speaking-rate model for synthetic speech
const (
	shortUtteranceWords = 3
	longMonologueWords  = 50

	shortMinSecondsPerWord = 0.3
	shortMaxSecondsPerWord = 2.0
	shortMinFloor          = 0.5
	shortMaxFloor          = 1.5

	fastWordsPerSecond = 3.0 // ~180 wpm
	slowWordsPerSecond = 1.5 // ~90 wpm

	monologuePauseFactor = 1.5
)

// WordCount counts whitespace-delimited words
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Estimate derives the expected duration band for text from its word count.
// Any string is accepted; empty text yields the short-utterance floors.
func Estimate(text string) ExpectedDurationRange {
	w := float64(WordCount(text))

	if w <= shortUtteranceWords {
		return ExpectedDurationRange{
			MinSeconds: max(w*shortMinSecondsPerWord, shortMinFloor),
			MaxSeconds: max(w*shortMaxSecondsPerWord, shortMaxFloor),
		}
	}

	r := ExpectedDurationRange{
		MinSeconds: w / fastWordsPerSecond,
		MaxSeconds: w / slowWordsPerSecond,
	}
	// Long monologues carry proportionally more breath and emphasis pauses
	if w > longMonologueWords {
		r.MaxSeconds *= monologuePauseFactor
	}
	return r
}
