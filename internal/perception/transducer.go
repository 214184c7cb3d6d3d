// Package perception turns raw user text into an intent: normalization,
// the ordered intent corpus, and lexicon sentiment scoring.
package perception

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of an utterance.
type Intent int

const (
	IntentSmalltalk Intent = iota
	IntentGreet
	IntentGoodbye
	IntentSetName
	IntentAskTime
	IntentAskDate
	IntentCalculator
	IntentFAQ
	IntentLoadCSV
	IntentSetNameCommand
	IntentHelp
	IntentReset
	IntentExport
	IntentSummary
	IntentComplaint
)

var intentNames = [...]string{
	IntentSmalltalk:      "smalltalk",
	IntentGreet:          "greet",
	IntentGoodbye:        "goodbye",
	IntentSetName:        "set_name",
	IntentAskTime:        "ask_time",
	IntentAskDate:        "ask_date",
	IntentCalculator:     "calculator",
	IntentFAQ:            "faq",
	IntentLoadCSV:        "load_csv",
	IntentSetNameCommand: "setname_cmd",
	IntentHelp:           "help",
	IntentReset:          "reset",
	IntentExport:         "export",
	IntentSummary:        "summary",
	IntentComplaint:      "complaint",
}

func (i Intent) String() string {
	if i >= 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// =============================================================================
// INTENT CORPUS
// =============================================================================
// Patterns overlap ("/setname hi" also matches greet), so the order of this
// table decides the winner. It is part of the classifier's contract.

// Matcher pairs an intent with the pattern that recognizes it.
type Matcher struct {
	Intent  Intent
	Pattern *regexp.Regexp
}

// DefaultCorpus is the canonical ordered matcher table.
var DefaultCorpus = []Matcher{
	{IntentGreet, regexp.MustCompile(`(?i)\b(hi|hello|hey|assalam|salam)\b`)},
	{IntentGoodbye, regexp.MustCompile(`(?i)\b(bye|goodbye|see you|tata)\b`)},
	{IntentSetName, regexp.MustCompile(`(?i)\bmy name is (.+)`)},
	{IntentAskTime, regexp.MustCompile(`(?i)\b(time|clock|what time)\b`)},
	{IntentAskDate, regexp.MustCompile(`(?i)\b(date|today)\b`)},
	{IntentCalculator, regexp.MustCompile(`(?i)^=|\b(calc|calculate|evaluate)\b`)},
	{IntentFAQ, regexp.MustCompile(`(?i)\b(sunk cost|opportunity cost|npv|irr|capm|beta|perpetuity|4p|stp|swot|kpi|lean|six sigma)\b`)},
	{IntentLoadCSV, regexp.MustCompile(`(?i)^/loadcsv\s+(.+)$`)},
	{IntentSetNameCommand, regexp.MustCompile(`(?i)^/setname\s+(.+)$`)},
	{IntentHelp, regexp.MustCompile(`(?i)^/help$`)},
	{IntentReset, regexp.MustCompile(`(?i)^/reset$`)},
	{IntentExport, regexp.MustCompile(`(?i)^/export_history$`)},
	{IntentSummary, regexp.MustCompile(`(?i)^/summary$`)},
	{IntentComplaint, regexp.MustCompile(`(?i)\b(complain|issue|problem|refund|return|support)\b`)},
}

// helpKeywords is the fallback check applied when no pattern matched.
var helpKeywords = []string{"help", "commands"}

// Match is the classification result. Captures holds the pattern's submatches
// (without the full match); it is nil for fallback intents.
type Match struct {
	Intent   Intent
	Captures []string
}

// Capture returns the i-th captured group, or "" when absent.
func (m Match) Capture(i int) string {
	if i < 0 || i >= len(m.Captures) {
		return ""
	}
	return m.Captures[i]
}

// Classifier maps normalized text to an intent by trying its matchers in order.
type Classifier struct {
	corpus []Matcher
}

// NewClassifier returns a classifier over corpus, or DefaultCorpus when corpus is nil.
func NewClassifier(corpus []Matcher) *Classifier {
	if corpus == nil {
		corpus = DefaultCorpus
	}
	return &Classifier{corpus: corpus}
}

// Classify returns the first matcher that accepts text. Later matchers are
// never consulted.
func (c *Classifier) Classify(text string) Match {
	for _, m := range c.corpus {
		if sub := m.Pattern.FindStringSubmatch(text); sub != nil {
			return Match{Intent: m.Intent, Captures: sub[1:]}
		}
	}
	for _, k := range helpKeywords {
		if strings.Contains(text, k) {
			return Match{Intent: IntentHelp}
		}
	}
	return Match{Intent: IntentSmalltalk}
}
