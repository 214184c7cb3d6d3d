// Package knowledge holds the static business-studies FAQ table.
package knowledge

import "strings"

// Entry is one FAQ topic.
type Entry struct {
	Key    string
	Answer string
}

// Table is an ordered, read-only FAQ table. Lookup honors definition order.
type Table struct {
	entries []Entry
}

// NewTable copies entries into a table.
func NewTable(entries []Entry) *Table {
	return &Table{entries: append([]Entry(nil), entries...)}
}

// Default returns the built-in table (finance, marketing, management).
func Default() *Table { return NewTable(defaultEntries) }

// Lookup returns the first entry whose key appears anywhere in text.
// text is expected to be normalized (lowercase).
func (t *Table) Lookup(text string) (Entry, bool) {
	for _, e := range t.entries {
		if strings.Contains(text, e.Key) {
			return e, true
		}
	}
	return Entry{}, false
}

var defaultEntries = []Entry{
	// Finance & Accounting
	{"sunk cost", "Sunk cost is money already spent and unrecoverable; ignore it when making future decisions."},
	{"opportunity cost", "Opportunity cost is the value of the next best alternative you give up when making a choice."},
	{"npv", "NPV (Net Present Value) = sum of discounted cash flows minus initial investment; choose projects with positive NPV."},
	{"irr", "IRR is the discount rate that makes NPV = 0; select projects with IRR above the required return."},
	{"capm", "CAPM: Expected Return = Rf + Beta * (Rm - Rf)."},
	{"beta", "Beta measures a stock's sensitivity to market movements (beta > 1 more volatile than market)."},
	{"perpetuity", "Perpetuity PV = C / r (first payment one period from now)."},
	// Marketing
	{"4p", "Marketing Mix 4P: Product, Price, Place, Promotion."},
	{"stp", "STP: Segmentation, Targeting, Positioning."},
	{"swot", "SWOT: Strengths, Weaknesses, Opportunities, Threats."},
	// Management & Ops
	{"kpi", "KPI: Key Performance Indicator, a quantifiable measure of performance over time."},
	{"lean", "Lean aims to eliminate waste (muda) and maximize customer value."},
	{"six sigma", "Six Sigma reduces process variation; DMAIC: Define, Measure, Analyze, Improve, Control."},
}
