package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilities(t *testing.T) {
	require.Len(t, Capabilities, 18)

	seen := make(map[Capability]bool, len(Capabilities))
	for _, c := range Capabilities {
		assert.True(t, c.Valid(), "capability %s should be valid", c)
		assert.False(t, seen[c], "capability %s listed twice", c)
		seen[c] = true
	}

	assert.False(t, Capability("canDoAnything").Valid())
	assert.False(t, Capability("").Valid())
}

func TestDefaultPermissions(t *testing.T) {
	p := DefaultPermissions()

	for _, c := range Capabilities {
		want := c == CapViewOwnContracts || c == CapViewDashboard
		assert.Equal(t, want, p.Has(c), "default for %s", c)
	}

	assert.Equal(t, []Capability{CapViewOwnContracts, CapViewDashboard}, p.Granted())
}

func TestFullPermissions(t *testing.T) {
	p := FullPermissions()
	assert.Equal(t, Capabilities, p.Granted())
}

func TestPermissionsSet(t *testing.T) {
	p := DefaultPermissions()

	require.NoError(t, p.Set(CapApproveContract, true))
	assert.True(t, p.CanApproveContract)

	require.NoError(t, p.Set(CapViewDashboard, false))
	assert.False(t, p.CanViewDashboard)

	err := p.Set("canApprove", true)
	require.ErrorIs(t, err, ErrUnknownCapability)
}

func TestPermissionsApply(t *testing.T) {
	testCases := []struct {
		name      string
		overrides map[Capability]bool
		wantErr   bool
		want      []Capability
	}{
		{
			name: "no overrides keeps defaults",
			want: []Capability{CapViewOwnContracts, CapViewDashboard},
		},
		{
			name:      "grant and revoke",
			overrides: map[Capability]bool{CapSignContract: true, CapViewDashboard: false},
			want:      []Capability{CapSignContract, CapViewOwnContracts},
		},
		{
			name:      "unknown capability leaves vector untouched",
			overrides: map[Capability]bool{CapSignContract: true, "canFly": true},
			wantErr:   true,
			want:      []Capability{CapViewOwnContracts, CapViewDashboard},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPermissions()

			err := p.Apply(tc.overrides)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownCapability)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tc.want, p.Granted())
		})
	}
}

func TestColorValid(t *testing.T) {
	require.Len(t, Colors, 10)

	for _, c := range Colors {
		assert.True(t, c.Valid())
	}

	assert.True(t, DefaultColor.Valid())
	assert.False(t, Color("magenta").Valid())
	assert.False(t, Color("Gray").Valid())
	assert.False(t, Color("").Valid())
}
