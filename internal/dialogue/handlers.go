package dialogue

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"studybuddy/internal/calc"
	"studybuddy/internal/insights"
	"studybuddy/internal/perception"
	"studybuddy/internal/store"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// calcVerb is the leading verb stripped from calculator input.
var calcVerb = regexp.MustCompile(`(?i)^(calc(ulate)?|evaluate)\s+`)

func (e *Engine) greeting() string {
	if e.mem.HasUserName() {
		return fmt.Sprintf("Hello %s! How can I help today?", e.mem.UserName())
	}
	return e.pick(greetings)
}

// handleSetName keeps only the first word of the captured phrase.
func (e *Engine) handleSetName(phrase string) string {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return e.pick(smalltalk)
	}
	name := titleCase(words[0])
	e.mem.SetUserName(name)
	return fmt.Sprintf("Nice to meet you, %s! I'll remember your name.", name)
}

func (e *Engine) handleSetNameCommand(arg string) string {
	name := titleCase(strings.TrimSpace(arg))
	e.mem.SetUserName(name)
	return fmt.Sprintf("Got it! I'll call you %s.", name)
}

// calcExpression strips the '=' marker and then any leading calc verb.
func calcExpression(raw string) string {
	expr := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "="))
	return calcVerb.ReplaceAllString(expr, "")
}

func (e *Engine) handleCalculator(raw string) (string, bool) {
	expr := calcExpression(raw)
	v, err := calc.Eval(expr)
	if err != nil {
		e.calcLog.Debug("expression rejected", zap.String("expr", expr), zap.Error(err))
		return fmt.Sprintf("Sorry, I couldn't evaluate that. (%v)", err), true
	}
	return "Result: " + calc.Format(v), false
}

func (e *Engine) handleFAQ(norm string) string {
	entry, ok := e.faq.Lookup(norm)
	if !ok {
		return faqMissReply
	}
	return titleCase(entry.Key) + ": " + entry.Answer
}

func (e *Engine) handleLoadCSV(arg string) (string, bool) {
	path := strings.Trim(strings.TrimSpace(arg), `"`)
	ds, report, err := insights.Analyze(path)
	switch {
	case errors.Is(err, insights.ErrNotFound):
		return csvNotFoundReply, true
	case errors.Is(err, insights.ErrEmpty):
		e.dataset = ds
		return fmt.Sprintf("Loaded %s, but it has no rows.", path), false
	case err != nil:
		e.csvLog.Warn("csv load failed", zap.String("path", path), zap.Error(err))
		return fmt.Sprintf("Sorry, I couldn't read that CSV. (%v)", err), true
	}
	e.dataset = ds
	e.csvLog.Debug("csv loaded", zap.String("path", path), zap.Int("rows", report.Rows))
	return report.String(), false
}

func (e *Engine) handleExport() (string, bool) {
	data := store.FormatExport(e.mem.History())
	if err := os.WriteFile(e.exportPath, []byte(data), 0644); err != nil {
		e.logger.Warn("history export failed", zap.String("path", e.exportPath), zap.Error(err))
		return fmt.Sprintf("Sorry, I couldn't export the history. (%v)", err), true
	}
	return fmt.Sprintf("History exported to %s (in the current folder).", e.exportPath), false
}

// handleSummary counts the intents of the user lines among the most recent
// history entries, in first-seen order.
func (e *Engine) handleSummary() string {
	var order []perception.Intent
	counts := make(map[perception.Intent]int)
	for _, h := range e.mem.Recent(summaryWindowSize) {
		if h.Role != store.RoleUser {
			continue
		}
		intent := e.classifier.Classify(perception.Normalize(h.Text)).Intent
		if counts[intent] == 0 {
			order = append(order, intent)
		}
		counts[intent]++
	}

	topics := summaryFallback
	if len(order) > 0 {
		parts := make([]string, len(order))
		for i, intent := range order {
			parts[i] = fmt.Sprintf("%s×%d", intent, counts[intent])
		}
		topics = strings.Join(parts, ", ")
	}
	return fmt.Sprintf("Recent summary: we discussed %s. I also saved your name if you set it.", topics)
}

func (e *Engine) handleSmalltalk(raw string) string {
	switch perception.ClassifySentiment(perception.SentimentScore(raw)) {
	case perception.Positive:
		return e.pick(smalltalk) + positiveSuffix
	case perception.Negative:
		return sympatheticReply
	}
	return e.pick(smalltalk)
}
