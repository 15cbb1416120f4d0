package housekeeping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutostartCommand(t *testing.T) {
	tests := []struct {
		exe    string
		silent bool
		want   string
	}{
		{`C:\Tools\skihide.exe`, false, `C:\Tools\skihide.exe`},
		{`C:\Tools\skihide.exe`, true, `C:\Tools\skihide.exe --silent`},
		{`C:\Program Files\SkiHide\skihide.exe`, true, `"C:\Program Files\SkiHide\skihide.exe" --silent`},
		{`"C:\Program Files\SkiHide\skihide.exe"`, false, `"C:\Program Files\SkiHide\skihide.exe"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AutostartCommand(tt.exe, tt.silent), tt.exe)
	}
}
