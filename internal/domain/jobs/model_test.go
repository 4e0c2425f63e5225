package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/types"
)

func money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func TestEffectiveCost(t *testing.T) {
	tests := []struct {
		name string
		item JobItem
		want string
	}{
		{
			name: "prefers total cost",
			item: JobItem{UnitCost: money("100"), TotalCost: money("250")},
			want: "250",
		},
		{
			name: "zero total falls back to unit",
			item: JobItem{UnitCost: money("100"), TotalCost: money("0")},
			want: "100",
		},
		{
			name: "nil total falls back to unit",
			item: JobItem{UnitCost: money("75.50")},
			want: "75.50",
		},
		{
			name: "both absent yields zero",
			item: JobItem{},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.item.EffectiveCost()
			assert.True(t, got.Equal(types.MustMoney(tt.want)),
				"cost = %s, want %s", got, tt.want)
		})
	}
}

func TestRecalculateItems(t *testing.T) {
	j := NewJob("Dana Whitfield", "12 Oak St", TypeRepair)
	j.AddItem(ItemPart, "Capacitor", 2, types.MustMoney("45.50"))
	j.AddItem(ItemLabor, "Diagnostic", 1.5, types.MustMoney("120"))

	// Stored totals are never trusted: overwrite one and renumber out of order
	j.Items[0].TotalCost = money("9999")
	j.Items[0].LineNo = 7
	j.RecalculateItems()

	require.Len(t, j.Items, 2)
	assert.Equal(t, 1, j.Items[0].LineNo)
	assert.Equal(t, 2, j.Items[1].LineNo)
	assert.True(t, j.Items[0].TotalCost.Equal(types.MustMoney("91")),
		"line 1 total = %s", j.Items[0].TotalCost)
	assert.True(t, j.Items[1].TotalCost.Equal(types.MustMoney("180")),
		"line 2 total = %s", j.Items[1].TotalCost)
}

func TestJobValidate(t *testing.T) {
	ctx := context.Background()

	j := NewJob("", "12 Oak St", TypeRepair)
	require.Error(t, j.Validate(ctx))

	j = NewJob("Dana Whitfield", "12 Oak St", JobType("plumbing"))
	require.Error(t, j.Validate(ctx))

	j = NewJob("Dana Whitfield", "12 Oak St", TypeMaintenance)
	j.AddItem(ItemFee, "", 1, types.MustMoney("50"))
	require.Error(t, j.Validate(ctx))

	j.Items[0].Name = "Trip fee"
	j.Items[0].Quantity = -1
	require.Error(t, j.Validate(ctx))

	j.Items[0].Quantity = 1
	require.NoError(t, j.Validate(ctx))
}
