package perception

import (
	"regexp"
	"strings"
)

// Polarity is the sentiment bucket of an utterance.
type Polarity int

const (
	Neutral Polarity = iota
	Positive
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "neutral"
}

// SentimentThreshold is the score magnitude a text must exceed to leave the neutral bucket.
const SentimentThreshold = 0.02

var tokenPattern = regexp.MustCompile(`[a-zA-Z']+`)

var positiveWords = wordSet(`
	good great excellent awesome amazing love like happy satisfied helpful fast
	fantastic superb brilliant wonderful recommend positive smooth convenient
	affordable reasonable polite friendly quick impressive neat clean reliable
`)

var negativeWords = wordSet(`
	bad poor terrible awful hate dislike unhappy unsatisfied slow rude broken
	worst late expensive dirty confusing frustrating unhelpful problem issue
	negative buggy crash delay
`)

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}

// SentimentScore returns (positive hits - negative hits) / token count, or 0
// when text has no tokens.
func SentimentScore(text string) float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return 0
	}
	score := 0
	for _, t := range tokens {
		if _, ok := positiveWords[t]; ok {
			score++
		} else if _, ok := negativeWords[t]; ok {
			score--
		}
	}
	return float64(score) / float64(len(tokens))
}

// ClassifySentiment buckets a score.
func ClassifySentiment(score float64) Polarity {
	switch {
	case score > SentimentThreshold:
		return Positive
	case score < -SentimentThreshold:
		return Negative
	}
	return Neutral
}
