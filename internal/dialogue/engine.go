// Package dialogue routes classified utterances to their handlers and owns the
// single pending task of a conversation.
package dialogue

import (
	"math/rand/v2"
	"time"

	"studybuddy/internal/insights"
	"studybuddy/internal/knowledge"
	"studybuddy/internal/logging"
	"studybuddy/internal/perception"
	"studybuddy/internal/store"

	"go.uber.org/zap"
)

// DefaultExportPath is where /export_history writes when no path is configured.
const DefaultExportPath = "chat_history.txt"

// Rand is the randomness the engine needs. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Reply is the outcome of one turn.
type Reply struct {
	Text   string
	Intent perception.Intent
	Failed bool // the request was rejected, e.g. a bad expression
	End    bool // the user said goodbye
}

// Engine processes one turn at a time. It is not safe for concurrent use.
type Engine struct {
	mem        *store.Memory
	classifier *perception.Classifier
	faq        *knowledge.Table
	rng        Rand
	now        func() time.Time
	exportPath string
	sessionID  string
	logger     *zap.Logger // dialogue
	intentLog  *zap.Logger
	calcLog    *zap.Logger
	csvLog     *zap.Logger

	task    Task
	dataset *insights.Dataset
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source used for reply variants and ticket ids.
func WithRand(r Rand) Option { return func(e *Engine) { e.rng = r } }

// WithClock injects the clock used by time and date replies.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// WithExportPath sets the /export_history target.
func WithExportPath(path string) Option { return func(e *Engine) { e.exportPath = path } }

// WithClassifier replaces the default classifier.
func WithClassifier(c *perception.Classifier) Option { return func(e *Engine) { e.classifier = c } }

// WithFAQ replaces the default FAQ table.
func WithFAQ(t *knowledge.Table) Option { return func(e *Engine) { e.faq = t } }

// WithSessionID tags turn logs with id.
func WithSessionID(id string) Option { return func(e *Engine) { e.sessionID = id } }

// WithLogger sets the parent logger. Each concern logs under its own category.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.For(l, logging.CategoryDialogue)
		e.intentLog = logging.For(l, logging.CategoryPerception)
		e.calcLog = logging.For(l, logging.CategoryCalc)
		e.csvLog = logging.For(l, logging.CategoryInsights)
	}
}

// New returns an engine over mem.
func New(mem *store.Memory, opts ...Option) *Engine {
	e := &Engine{
		mem:        mem,
		classifier: perception.NewClassifier(nil),
		faq:        knowledge.Default(),
		rng:        globalRand{},
		now:        time.Now,
		exportPath: DefaultExportPath,
		logger:     zap.NewNop(),
		intentLog:  zap.NewNop(),
		calcLog:    zap.NewNop(),
		csvLog:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Pending returns the active task, or nil when idle.
func (e *Engine) Pending() Task { return e.task }

// Dataset returns the most recently loaded CSV dataset, if any.
func (e *Engine) Dataset() *insights.Dataset { return e.dataset }

// Greet produces the opening line of a session and records it.
func (e *Engine) Greet() Reply {
	return e.reply(perception.IntentGreet, e.greeting())
}

// Handle processes one line of user input. The raw line is recorded before
// anything else. While a task is pending, every non-command line feeds the
// task instead of being classified.
func (e *Engine) Handle(input string) Reply {
	norm := perception.Normalize(input)
	e.mem.Append(store.RoleUser, input)

	if e.task != nil && !perception.IsCommand(norm) {
		e.logger.Debug("turn routed to pending task",
			zap.String("session", e.sessionID),
			zap.Stringer("stage", e.task.Stage()))
		return e.reply(perception.IntentComplaint, e.advanceTask(input))
	}

	m := e.classifier.Classify(norm)
	e.intentLog.Debug("turn classified",
		zap.String("session", e.sessionID),
		zap.Stringer("intent", m.Intent),
		zap.Bool("pending", e.task != nil))

	text, failed := e.dispatch(m, input, norm)
	r := e.reply(m.Intent, text)
	r.Failed = failed
	r.End = m.Intent == perception.IntentGoodbye
	return r
}

// dispatch returns the reply text and whether it reports a failed request.
func (e *Engine) dispatch(m perception.Match, raw, norm string) (string, bool) {
	switch m.Intent {
	case perception.IntentGreet:
		return e.greeting(), false
	case perception.IntentGoodbye:
		return e.pick(goodbyes), false
	case perception.IntentSetName:
		return e.handleSetName(m.Capture(0)), false
	case perception.IntentAskTime:
		return "Current time: " + e.now().Format(store.TimeLayout), false
	case perception.IntentAskDate:
		return "Today is " + e.now().Format("Monday, January 02, 2006") + ".", false
	case perception.IntentCalculator:
		return e.handleCalculator(raw)
	case perception.IntentFAQ:
		return e.handleFAQ(norm), false
	case perception.IntentLoadCSV:
		return e.handleLoadCSV(perception.CommandArgument(raw))
	case perception.IntentSetNameCommand:
		return e.handleSetNameCommand(perception.CommandArgument(raw)), false
	case perception.IntentHelp:
		return helpText, false
	case perception.IntentReset:
		e.mem.Reset()
		return "Memory cleared. Fresh start!", false
	case perception.IntentExport:
		return e.handleExport()
	case perception.IntentSummary:
		return e.handleSummary(), false
	case perception.IntentComplaint:
		return e.handleComplaint(raw), false
	}
	return e.handleSmalltalk(raw), false
}

// reply records text as the assistant's turn.
func (e *Engine) reply(intent perception.Intent, text string) Reply {
	e.mem.Append(store.RoleAssistant, text)
	return Reply{Text: text, Intent: intent}
}

func (e *Engine) pick(variants []string) string {
	return variants[e.rng.IntN(len(variants))]
}
