package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	faq := Default()

	e, ok := faq.Lookup("what is sunk cost?")
	require.True(t, ok)
	assert.Equal(t, "sunk cost", e.Key)

	_, ok = faq.Lookup("tell me about marketing")
	assert.False(t, ok)
}

func TestLookup_FirstKeyInTableOrderWins(t *testing.T) {
	faq := Default()

	// both "beta" and "capm" appear; capm is defined first
	e, ok := faq.Lookup("how does beta fit into capm")
	require.True(t, ok)
	assert.Equal(t, "capm", e.Key)
}

func TestLookup_SubstringContainment(t *testing.T) {
	// "irr" matches inside "irrelevant": lookup is plain containment
	e, ok := Default().Lookup("irrelevant")
	require.True(t, ok)
	assert.Equal(t, "irr", e.Key)
}

func TestNewTable_IsolatedFromCaller(t *testing.T) {
	entries := []Entry{{"alpha", "first"}}
	faq := NewTable(entries)
	entries[0].Key = "mutated"

	e, ok := faq.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", e.Key)
	_, ok = faq.Lookup("mutated")
	assert.False(t, ok)
}

func TestDefault_TableOrder(t *testing.T) {
	require.Len(t, defaultEntries, 13)
	assert.Equal(t, "sunk cost", defaultEntries[0].Key)
	assert.Equal(t, "six sigma", defaultEntries[len(defaultEntries)-1].Key)
}
