package quotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/id"
)

func TestSelection_ToggleRecordSetSemantics(t *testing.T) {
	a, b := id.New(), id.New()

	sel := NewSelection(TypeReplacement)
	assert.True(t, sel.IsEmpty())

	// Toggling accumulates: two records can back one quote
	sel.ToggleRecord(a)
	sel.ToggleRecord(b)
	require.Len(t, sel.ReplacementIDs, 2)
	assert.True(t, sel.HasRecord(a))
	assert.True(t, sel.HasRecord(b))

	// Re-toggling removes only that record
	sel.ToggleRecord(a)
	assert.False(t, sel.HasRecord(a))
	assert.True(t, sel.HasRecord(b))

	sel.ToggleRecord(b)
	assert.True(t, sel.IsEmpty())
}

func TestSelection_ToggleItemSetSemantics(t *testing.T) {
	a, b := id.New(), id.New()

	sel := NewSelection(TypeRepair)
	sel.ToggleItem(a)
	sel.ToggleItem(b)
	assert.True(t, sel.HasItem(a))
	assert.True(t, sel.HasItem(b))

	sel.ToggleItem(a)
	assert.False(t, sel.HasItem(a))
	assert.True(t, sel.HasItem(b))
}

func TestSelection_SetTypeKeepsOtherCategories(t *testing.T) {
	rid := id.New()

	sel := NewSelection(TypeReplacement)
	sel.ToggleRecord(rid)
	require.False(t, sel.IsEmpty())

	// Switching the active type leaves the replacement set intact
	sel.SetType(TypeRepair)
	assert.True(t, sel.IsEmpty(), "no repair items selected yet")
	assert.Len(t, sel.ReplacementIDs, 1)

	// The stale replacement selection surfaces as a validation error
	sel.ToggleItem(id.New())
	assert.Error(t, sel.Validate())

	sel.SetType(TypeReplacement)
	sel.ToggleRecord(rid)
	sel.SetType(TypeRepair)
	assert.NoError(t, sel.Validate())
}

func TestSelection_ToggleIgnoresWrongKind(t *testing.T) {
	sel := NewSelection(TypeRepair)
	sel.ToggleRecord(id.New())
	assert.True(t, sel.IsEmpty())

	sel = NewSelection(TypeInspection)
	sel.ToggleItem(id.New())
	assert.True(t, sel.IsEmpty())
}

func TestSelection_Validate(t *testing.T) {
	sel := NewSelection(TypeInspection)
	assert.Error(t, sel.Validate(), "empty selection must fail")

	sel.ToggleRecord(id.New())
	assert.NoError(t, sel.Validate())

	bad := NewSelection(QuoteType("estimate"))
	assert.Error(t, bad.Validate())
}
