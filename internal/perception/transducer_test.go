package perception

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Hello   THERE \t friend\n": "hello there friend",
		"":                            "",
		"/LoadCSV   Data.csv":         "/loadcsv data.csv",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in))
	}
}

func TestCommandArgument(t *testing.T) {
	assert.Equal(t, "Data/Sales.csv", CommandArgument("  /LOADCSV   Data/Sales.csv "))
	assert.Equal(t, "Mary Jane", CommandArgument("/setname Mary   Jane"))
	assert.Equal(t, "", CommandArgument("/help"))
}

func TestClassify(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		input    string
		want     Intent
		captures []string
	}{
		{"hello there", IntentGreet, []string{"hello"}},
		{"bye", IntentGoodbye, []string{"bye"}},
		{"see you later", IntentGoodbye, []string{"see you"}},
		{"my name is sam", IntentSetName, []string{"sam"}},
		{"what time is it", IntentAskTime, []string{"what time"}},
		{"what is the date", IntentAskDate, []string{"date"}},
		{"=2+2", IntentCalculator, []string{""}},
		{"calculate 2*(10+5)", IntentCalculator, []string{"calculate"}},
		{"explain sunk cost", IntentFAQ, []string{"sunk cost"}},
		{"/loadcsv data.csv", IntentLoadCSV, []string{"data.csv"}},
		{"/setname alice", IntentSetNameCommand, []string{"alice"}},
		{"/help", IntentHelp, []string{}},
		{"/reset", IntentReset, []string{}},
		{"/export_history", IntentExport, []string{}},
		{"/summary", IntentSummary, []string{}},
		{"i want a refund", IntentComplaint, []string{"refund"}},
		{"show me the commands", IntentHelp, nil},
		{"can you help", IntentHelp, nil},
		{"the weather is nice", IntentSmalltalk, nil},
		{"", IntentSmalltalk, nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := c.Classify(tt.input)
			assert.Equal(t, tt.want, got.Intent, "intent for %q", tt.input)
			assert.Equal(t, tt.captures, got.Captures)
		})
	}
}

// Inputs matching several patterns resolve to the earliest one in the corpus.
func TestClassify_EarliestPatternWins(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		input string
		want  Intent
	}{
		{"hi, my name is sam", IntentGreet},                   // greet < set_name
		{"/setname hi", IntentGreet},                          // greet < setname_cmd
		{"bye, what time is it", IntentGoodbye},               // goodbye < ask_time
		{"what time is it today", IntentAskTime},              // ask_time < ask_date
		{"calculate the npv", IntentCalculator},               // calculator < faq
		{"i have a problem with npv", IntentFAQ},              // faq < complaint
		{"i need support today", IntentAskDate},               // ask_date < complaint
		{"/loadcsv beta.csv", IntentFAQ},                      // faq < load_csv
		{"my name is bob and i have an issue", IntentSetName}, // set_name < complaint
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.input).Intent, tt.input)
	}
}

func TestClassify_OrderIsTheContract(t *testing.T) {
	reversed := make([]Matcher, len(DefaultCorpus))
	for i, m := range DefaultCorpus {
		reversed[len(DefaultCorpus)-1-i] = m
	}
	c := NewClassifier(reversed)
	assert.Equal(t, IntentSetNameCommand, c.Classify("/setname hi").Intent)
}

func TestClassify_Deterministic(t *testing.T) {
	c := NewClassifier(nil)
	inputs := []string{"hello", "i have an issue", "calc 1+1", "random words", "/summary"}
	for _, in := range inputs {
		first := c.Classify(in)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, c.Classify(in))
		}
	}
}

func TestClassify_CustomCorpus(t *testing.T) {
	c := NewClassifier([]Matcher{{IntentSummary, regexp.MustCompile(`recap`)}})
	assert.Equal(t, IntentSummary, c.Classify("give me a recap").Intent)
	assert.Equal(t, IntentSmalltalk, c.Classify("hello").Intent)
}

func TestMatch_Capture(t *testing.T) {
	m := Match{Captures: []string{"a"}}
	assert.Equal(t, "a", m.Capture(0))
	assert.Equal(t, "", m.Capture(1))
	assert.Equal(t, "", Match{}.Capture(0))
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "setname_cmd", IntentSetNameCommand.String())
	assert.Equal(t, "smalltalk", IntentSmalltalk.String())
	assert.Equal(t, "unknown", Intent(99).String())
}

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"this is great", 1.0 / 3},
		{"Terrible, slow service", -2.0 / 3},
		{"I like it but it's broken", 0},
		{"", 0},
		{"12345 !!!", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, SentimentScore(tt.text), 1e-9, tt.text)
	}
}

func TestClassifySentiment(t *testing.T) {
	assert.Equal(t, Positive, ClassifySentiment(SentimentScore("awesome, thanks")))
	assert.Equal(t, Negative, ClassifySentiment(SentimentScore("this is awful")))
	assert.Equal(t, Neutral, ClassifySentiment(SentimentScore("the sky is blue")))

	// exactly at the threshold stays neutral: 1 hit in 50 tokens is 0.02
	atThreshold := strings.Repeat("word ", 49) + "good"
	assert.Equal(t, Neutral, ClassifySentiment(SentimentScore(atThreshold)))
}
