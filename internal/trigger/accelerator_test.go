package trigger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccelerator(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ctrl+alt+h", "ctrl+alt+h"},
		{"Alt+Ctrl+H", "ctrl+alt+h"},
		{"shift + windows + f9", "shift+win+f9"},
		{"control+control+1", "ctrl+1"},
		{"super+esc", "win+escape"},
		{"option+return", "alt+enter"},
		{"f12", "f12"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			acc, err := ParseAccelerator(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, acc.String())
		})
	}
}

func TestParseAcceleratorErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"ctrl+alt",
		"ctrl++h",
		"ctrl+h+j",
		"ctrl+f13",
		"ctrl+f01",
		"ctrl+pageup",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAccelerator(in)
			assert.Error(t, err)
		})
	}
}

func TestParseAcceleratorFields(t *testing.T) {
	acc, err := ParseAccelerator("win+shift+ctrl+space")
	require.NoError(t, err)
	assert.Equal(t, []string{ModCtrl, ModShift, ModWin}, acc.Modifiers)
	assert.Equal(t, "space", acc.Key)
}
