package replacements

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/id"
	"fieldserve/internal/core/types"
)

func money(s string) *types.Money {
	m := types.MustMoney(s)
	return &m
}

func TestRecalculate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(r *Replacement)
		want string
	}{
		{
			name: "standard phase with labor and one accessory",
			mod: func(r *Replacement) {
				r.Phase2.Cost = money("500")
				r.Labor = money("100")
				r.Accessories = []CostedItem{{Name: "Curb adapter", Cost: money("50")}}
			},
			// (500+100+50) / 0.6 = 1083.33... rounds to 1083
			want: "1083",
		},
		{
			name: "only the selected phase counts",
			mod: func(r *Replacement) {
				r.Phase1.Cost = money("300")
				r.Phase2.Cost = money("500")
				r.Phase3.Cost = money("900")
				r.SelectedPhase = PhaseEconomy
			},
			// 300 / 0.6 = 500; phase2 and phase3 never enter
			want: "500",
		},
		{
			name: "all scalars and both addon groups",
			mod: func(r *Replacement) {
				r.Phase3.Cost = money("4200")
				r.SelectedPhase = PhasePremium
				r.Labor = money("1500")
				r.RefrigerationRecovery = money("120")
				r.StartUpCosts = money("80")
				r.ThermostatStartup = money("60")
				r.RemovalCost = money("240")
				r.PermitCost = money("250")
				r.Accessories = []CostedItem{{Name: "Economizer", Cost: money("400")}}
				r.AdditionalItems = []CostedItem{{Name: "Duct transition", Cost: money("150")}}
			},
			// 7000 / 0.6 = 11666.66... rounds to 11667
			want: "11667",
		},
		{
			name: "rounds half up",
			mod: func(r *Replacement) {
				// 301 / 0.6 = 501.66... -> 502
				r.Labor = money("301")
			},
			want: "502",
		},
		{
			name: "absent fields count as zero",
			mod: func(r *Replacement) {
				r.Phase2.Cost = money("60")
			},
			want: "100",
		},
		{
			name: "zero direct cost yields zero total",
			mod:  func(r *Replacement) {},
			want: "0",
		},
		{
			name: "unpriced addon lines count as zero",
			mod: func(r *Replacement) {
				r.Phase2.Cost = money("60")
				r.Accessories = []CostedItem{{Name: ""}}
				r.AdditionalItems = []CostedItem{{Name: ""}}
			},
			want: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReplacement(id.New())
			tt.mod(r)
			r.Recalculate()
			assert.True(t, r.TotalCost.Equal(types.MustMoney(tt.want)),
				"total = %s, want %s", r.TotalCost, tt.want)
		})
	}
}

func TestNewReplacementDefaults(t *testing.T) {
	r := NewReplacement(id.New())
	assert.Equal(t, PhaseStandard, r.SelectedPhase)
	assert.Equal(t, "Economy Option", r.Phase1.Description)
	assert.Equal(t, "Standard Option", r.Phase2.Description)
	assert.Equal(t, "Premium Option", r.Phase3.Description)
}

func TestValidate(t *testing.T) {
	r := NewReplacement(id.Nil())
	err := r.Validate(context.Background())
	require.Error(t, err)

	r = NewReplacement(id.New())
	r.SelectedPhase = PhaseKey("phase4")
	err = r.Validate(context.Background())
	require.Error(t, err)

	r = NewReplacement(id.New())
	r.Labor = money("-5")
	err = r.Validate(context.Background())
	require.Error(t, err)

	r.Labor = money("5")
	r.Accessories = []CostedItem{{Name: "Pad", Cost: money("-1")}}
	err = r.Validate(context.Background())
	require.Error(t, err)

	r.Accessories[0].Cost = money("1")
	require.NoError(t, r.Validate(context.Background()))
}
