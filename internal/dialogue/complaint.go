package dialogue

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Stage is the position of a pending task in its slot-filling flow.
type Stage int

const (
	AwaitingProduct Stage = iota
	AwaitingIssue
	AwaitingOrderID
	Completed
)

func (s Stage) String() string {
	switch s {
	case AwaitingProduct:
		return "awaiting_product"
	case AwaitingIssue:
		return "awaiting_issue"
	case AwaitingOrderID:
		return "awaiting_order_id"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Task is a multi-turn flow that consumes user lines until it completes.
// The complaint ticket is the only implementation.
type Task interface {
	Stage() Stage
	advance(input string, rng Rand) string
}

// complaintTask collects product, issue, and order id for a support ticket.
// An empty orderID means the user had none.
type complaintTask struct {
	stage   Stage
	product string
	issue   string
	orderID string
	ticket  string
}

func newComplaintTask() *complaintTask {
	return &complaintTask{stage: AwaitingProduct}
}

func (t *complaintTask) Stage() Stage { return t.stage }

// advance stores input in the next empty slot. Product and issue are kept
// verbatim; the order id is trimmed and "none" in any case means absent.
func (t *complaintTask) advance(input string, rng Rand) string {
	switch t.stage {
	case AwaitingProduct:
		t.product = input
		t.stage = AwaitingIssue
		return "Got it. Briefly describe the issue."
	case AwaitingIssue:
		t.issue = input
		t.stage = AwaitingOrderID
		return "Please share your order ID (or say 'none')."
	case AwaitingOrderID:
		if oid := strings.TrimSpace(input); !strings.EqualFold(oid, "none") {
			t.orderID = oid
		}
		t.ticket = fmt.Sprintf("TKT-%d", 10000+rng.IntN(90000))
		t.stage = Completed
		orderID := t.orderID
		if orderID == "" {
			orderID = "N/A"
		}
		return fmt.Sprintf("Thanks! Ticket %s created. Product: %s. Issue: %s. Order ID: %s. Our team will follow up.",
			t.ticket, t.product, t.issue, orderID)
	case Completed:
		return "Your ticket is already created. Anything else?"
	}
	return "Your ticket is already created. Anything else?"
}

// handleComplaint opens a ticket when idle and otherwise feeds the pending task.
func (e *Engine) handleComplaint(raw string) string {
	if e.task == nil {
		e.task = newComplaintTask()
		e.logger.Info("support ticket opened", zap.String("session", e.sessionID))
		return "I'm opening a support ticket. What product is this about?"
	}
	return e.advanceTask(raw)
}

// advanceTask feeds input to the pending task and returns to idle once it completes.
func (e *Engine) advanceTask(input string) string {
	text := e.task.advance(input, e.rng)
	if e.task.Stage() == Completed {
		if t, ok := e.task.(*complaintTask); ok {
			e.logger.Info("support ticket created",
				zap.String("session", e.sessionID),
				zap.String("ticket", t.ticket))
		}
		e.task = nil
	}
	return text
}
