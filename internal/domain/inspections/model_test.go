package inspections

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldserve/internal/core/id"
)

func TestValidate(t *testing.T) {
	negative := -3
	age := 9

	cases := []struct {
		name    string
		mutate  func(i *Inspection)
		wantErr bool
	}{
		{
			name:    "missing job",
			mutate:  func(i *Inspection) { i.JobID = id.Nil() },
			wantErr: true,
		},
		{
			name:    "negative age",
			mutate:  func(i *Inspection) { i.Age = &negative },
			wantErr: true,
		},
		{
			name: "full equipment survey",
			mutate: func(i *Inspection) {
				i.ModelNumber = "48TC-06"
				i.SerialNumber = "SN-4417"
				i.Age = &age
				i.Tonnage = "5"
				i.UnitType = UnitGas
				i.SystemType = SystemRTU
				i.Comment = "belt worn"
			},
		},
		{
			name:   "bare record",
			mutate: func(i *Inspection) {},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			insp := NewInspection(id.New())
			tc.mutate(insp)

			err := insp.Validate(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	insp := NewInspection(id.New())
	require.False(t, insp.Completed)

	insp.Complete()
	assert.True(t, insp.Completed)
	require.NotNil(t, insp.CompletedAt)
}
