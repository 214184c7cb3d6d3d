package dialogue

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studybuddy/internal/knowledge"
	"studybuddy/internal/perception"
	"studybuddy/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always picks n modulo the range.
type fixedRand struct{ n int }

func (r fixedRand) IntN(n int) int { return r.n % n }

var _ Rand = rand.New(rand.NewPCG(1, 2))

var testNow = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *store.Memory) {
	t.Helper()
	clock := func() time.Time { return testNow }
	mem := store.Open(store.NewInMemory(), store.WithClock(clock))
	base := []Option{
		WithRand(fixedRand{0}),
		WithClock(clock),
		WithExportPath(filepath.Join(t.TempDir(), "chat_history.txt")),
	}
	return New(mem, append(base, opts...)...), mem
}

func TestComplaintFlow(t *testing.T) {
	e, _ := newTestEngine(t, WithRand(fixedRand{2345}))

	r := e.Handle("I have a problem with my order")
	assert.Equal(t, perception.IntentComplaint, r.Intent)
	assert.Equal(t, "I'm opening a support ticket. What product is this about?", r.Text)
	require.NotNil(t, e.Pending())
	assert.Equal(t, AwaitingProduct, e.Pending().Stage())

	r = e.Handle("Laptop")
	assert.Equal(t, "Got it. Briefly describe the issue.", r.Text)
	assert.Equal(t, AwaitingIssue, e.Pending().Stage())

	r = e.Handle("Screen flickers")
	assert.Equal(t, "Please share your order ID (or say 'none').", r.Text)
	assert.Equal(t, AwaitingOrderID, e.Pending().Stage())

	r = e.Handle("NONE")
	assert.Equal(t, "Thanks! Ticket TKT-12345 created. Product: Laptop. Issue: Screen flickers. "+
		"Order ID: N/A. Our team will follow up.", r.Text)
	assert.Nil(t, e.Pending())
}

func TestComplaintSlotsAreVerbatim(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Handle("I need a refund")
	e.Handle("hi")             // would otherwise be a greeting
	e.Handle("it is too slow") // would otherwise be smalltalk
	r := e.Handle("  AB-1001 ")

	assert.Equal(t, "Thanks! Ticket TKT-10000 created. Product: hi. Issue: it is too slow. "+
		"Order ID: AB-1001. Our team will follow up.", r.Text)
}

func TestCommandsDoNotDisturbPendingTask(t *testing.T) {
	e, _ := newTestEngine(t)

	e.Handle("I want to complain")
	r := e.Handle("/help")
	assert.Equal(t, perception.IntentHelp, r.Intent)
	assert.Equal(t, helpText, r.Text)
	require.NotNil(t, e.Pending())
	assert.Equal(t, AwaitingProduct, e.Pending().Stage())

	r = e.Handle("Phone")
	assert.Equal(t, "Got it. Briefly describe the issue.", r.Text)
}

func TestCompletedTaskReportsExistingTicket(t *testing.T) {
	task := newComplaintTask()
	for _, in := range []string{"Phone", "Battery", "none"} {
		task.advance(in, fixedRand{0})
	}
	require.Equal(t, Completed, task.Stage())
	assert.Equal(t, "Your ticket is already created. Anything else?", task.advance("more", fixedRand{0}))
}

func TestGreet(t *testing.T) {
	e, mem := newTestEngine(t)

	r := e.Greet()
	assert.Equal(t, greetings[0], r.Text)

	mem.SetUserName("Sara")
	r = e.Handle("hello")
	assert.Equal(t, perception.IntentGreet, r.Intent)
	assert.Equal(t, "Hello Sara! How can I help today?", r.Text)
}

func TestSetName(t *testing.T) {
	e, mem := newTestEngine(t)

	r := e.Handle("My name is sara khan")
	assert.Equal(t, "Nice to meet you, Sara! I'll remember your name.", r.Text)
	assert.Equal(t, "Sara", mem.UserName())

	r = e.Handle("/setname mary   JANE")
	assert.Equal(t, "Got it! I'll call you Mary Jane.", r.Text)
	assert.Equal(t, "Mary Jane", mem.UserName())

	// Letters after an apostrophe stay lower-case.
	r = e.Handle("/setname o'brien")
	assert.Equal(t, "Got it! I'll call you O'brien.", r.Text)
}

func TestTimeAndDate(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.Equal(t, "Current time: 2024-03-05 14:07:09", e.Handle("what time is it").Text)
	assert.Equal(t, "Today is Tuesday, March 05, 2024.", e.Handle("what is the date").Text)
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"=2+2", "Result: 4"},
		{"  = 2 ** 10", "Result: 1024"},
		{"calculate 2*(10+5)", "Result: 30"},
		{"Evaluate 7 % -3", "Result: -2"},
		{"=1/4", "Result: 0.25"},
		{"=10/0", "Sorry, I couldn't evaluate that. (division by zero)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, _ := newTestEngine(t)
			r := e.Handle(tt.input)
			assert.Equal(t, perception.IntentCalculator, r.Intent)
			assert.Equal(t, tt.want, r.Text)
		})
	}
}

func TestCalculatorRejectsCode(t *testing.T) {
	e, _ := newTestEngine(t)
	r := e.Handle("=import os")
	assert.True(t, strings.HasPrefix(r.Text, "Sorry, I couldn't evaluate that. ("), r.Text)
	assert.Contains(t, r.Text, "unknown name")
}

func TestCalcExpression(t *testing.T) {
	assert.Equal(t, "2+2", calcExpression("=2+2"))
	assert.Equal(t, "2*3", calcExpression("calc 2*3"))
	assert.Equal(t, "2*3", calcExpression("CALCULATE   2*3"))
	assert.Equal(t, "1-1", calcExpression(" evaluate 1-1 "))
	assert.Equal(t, "2+2", calcExpression("=calc 2+2"))
	assert.Equal(t, "3*3", calcExpression("= Evaluate 3*3"))
}

func TestCalculatorAfterMarkerAndVerb(t *testing.T) {
	e, _ := newTestEngine(t)
	r := e.Handle("=calc 2+2")
	assert.Equal(t, "Result: 4", r.Text)
	assert.False(t, r.Failed)
}

func TestFailedReplies(t *testing.T) {
	e, _ := newTestEngine(t, WithExportPath(filepath.Join(t.TempDir(), "missing-dir", "out.txt")))

	tests := []struct {
		input  string
		failed bool
	}{
		{"=10/0", true},
		{"=1+1", false},
		{"/loadcsv does-not-exist.csv", true},
		{"/export_history", true},
		{"what is npv", false},
		{"the weather", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.failed, e.Handle(tt.input).Failed, tt.input)
	}
}

func TestFAQ(t *testing.T) {
	e, _ := newTestEngine(t)

	r := e.Handle("Explain SUNK cost please")
	assert.Equal(t, perception.IntentFAQ, r.Intent)
	assert.True(t, strings.HasPrefix(r.Text, "Sunk Cost: "), r.Text)

	empty, _ := newTestEngine(t, WithFAQ(knowledge.NewTable(nil)))
	assert.Equal(t, faqMissReply, empty.Handle("what is npv").Text)
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Sales\na,1\nb,2\nc,3\n"), 0644))

	e, _ := newTestEngine(t)
	r := e.Handle("/loadcsv " + path)
	assert.Equal(t, perception.IntentLoadCSV, r.Intent)
	assert.Equal(t, "Loaded "+path+" with 3 rows and 2 columns.\n"+
		"Quick stats for 'Sales': count=3, mean=2.000, median=2.000, stdev=0.816", r.Text)
	require.NotNil(t, e.Dataset())
	assert.Len(t, e.Dataset().Rows, 3)
}

func TestLoadCSVQuotedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("x\n5\n"), 0644))

	e, _ := newTestEngine(t)
	r := e.Handle(`/loadcsv "` + path + `"`)
	assert.True(t, strings.HasPrefix(r.Text, "Loaded "+path+" with 1 rows and 1 columns."), r.Text)
}

func TestLoadCSVErrors(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, csvNotFoundReply, e.Handle("/loadcsv does-not-exist.csv").Text)

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))
	assert.Equal(t, "Loaded "+path+", but it has no rows.", e.Handle("/loadcsv "+path).Text)
}

func TestReset(t *testing.T) {
	e, mem := newTestEngine(t)
	e.Handle("my name is sam")
	e.Handle("hello")

	r := e.Handle("/reset")
	assert.Equal(t, "Memory cleared. Fresh start!", r.Text)
	assert.False(t, mem.HasUserName())

	h := mem.History()
	require.Len(t, h, 1)
	assert.Equal(t, store.RoleAssistant, h[0].Role)
	assert.Equal(t, "Memory cleared. Fresh start!", h[0].Text)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	e, _ := newTestEngine(t, WithExportPath(path))

	e.Handle("hi")
	r := e.Handle("/export_history")
	assert.Equal(t, "History exported to "+path+" (in the current folder).", r.Text)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "[2024-03-05 14:07:09] USER: hi\n" +
		"[2024-03-05 14:07:09] ASSISTANT: " + greetings[0] + "\n" +
		"[2024-03-05 14:07:09] USER: /export_history\n"
	assert.Equal(t, want, string(data))
}

func TestExportFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.txt")
	e, _ := newTestEngine(t, WithExportPath(path))
	r := e.Handle("/export_history")
	assert.True(t, strings.HasPrefix(r.Text, "Sorry, I couldn't export the history."), r.Text)
}

func TestSummary(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Handle("hello")
	e.Handle("=2+2")
	e.Handle("hi")

	r := e.Handle("/summary")
	assert.Equal(t, "Recent summary: we discussed greet×2, calculator×1, summary×1. "+
		"I also saved your name if you set it.", r.Text)
}

func TestSummaryWindow(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Handle("hello")
	for i := 0; i < 10; i++ {
		e.Handle("=1+1")
	}
	// The greeting has fallen out of the last 20 entries.
	r := e.Handle("/summary")
	assert.Equal(t, "Recent summary: we discussed calculator×9, summary×1. "+
		"I also saved your name if you set it.", r.Text)
}

func TestSmalltalkSentiment(t *testing.T) {
	e, _ := newTestEngine(t)

	assert.Equal(t, smalltalk[0]+positiveSuffix, e.Handle("this is great").Text)
	assert.Equal(t, sympatheticReply, e.Handle("the app is slow and rude").Text)
	r := e.Handle("the weather")
	assert.Equal(t, perception.IntentSmalltalk, r.Intent)
	assert.Equal(t, smalltalk[0], r.Text)
}

func TestGoodbyeEndsSession(t *testing.T) {
	e, _ := newTestEngine(t)

	r := e.Handle("hello")
	assert.False(t, r.End)

	r = e.Handle("ok bye")
	assert.True(t, r.End)
	assert.Contains(t, goodbyes, r.Text)
}

func TestEveryTurnIsRecorded(t *testing.T) {
	e, mem := newTestEngine(t)
	e.Greet()
	e.Handle("Hello There")

	h := mem.History()
	require.Len(t, h, 3)
	assert.Equal(t, store.RoleAssistant, h[0].Role)
	assert.Equal(t, store.RoleUser, h[1].Role)
	assert.Equal(t, "Hello There", h[1].Text)
	assert.Equal(t, store.RoleAssistant, h[2].Role)
}
