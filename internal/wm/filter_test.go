package wm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func normal(h Handle, title string) Candidate {
	return Candidate{
		Handle:  h,
		Title:   title,
		PID:     100,
		Visible: true,
		Width:   800,
		Height:  600,
	}
}

func TestFilterEligible(t *testing.T) {
	f := NewFilter(DefaultExcludeTitles, 7)

	tests := []struct {
		name   string
		mutate func(*Candidate)
		want   bool
	}{
		{"plain window", func(c *Candidate) {}, true},
		{"invisible", func(c *Candidate) { c.Visible = false }, false},
		{"blank title", func(c *Candidate) { c.Title = "   " }, false},
		{"blacklisted title", func(c *Candidate) { c.Title = "Program Manager" }, false},
		{"own process", func(c *Candidate) { c.PID = 7 }, false},
		{"child window", func(c *Candidate) { c.Child = true }, false},
		{"tool window", func(c *Candidate) { c.ToolWindow = true }, false},
		{"no-activate window", func(c *Candidate) { c.NoActivate = true }, false},
		{"owned popup", func(c *Candidate) { c.Owned = true }, false},
		{"too narrow", func(c *Candidate) { c.Width = MinWidth - 1 }, false},
		{"too short", func(c *Candidate) { c.Height = MinHeight - 1 }, false},
		{"tiny but minimized", func(c *Candidate) { c.Width, c.Height, c.Minimized = 0, 0, true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := normal(0x10, "Editor")
			tt.mutate(&c)
			assert.Equal(t, tt.want, f.Eligible(c))
		})
	}
}

func TestFilterApplyKeepsOrder(t *testing.T) {
	f := NewFilter([]string{"Steam"}, 0)
	hidden := normal(0x3, "Popup")
	hidden.Visible = false

	got := f.Apply([]Candidate{
		normal(0x1, "Browser"),
		normal(0x2, "Steam"),
		hidden,
		normal(0x4, "Terminal"),
	})

	assert.Equal(t, []Window{
		{Handle: 0x1, Title: "Browser", PID: 100},
		{Handle: 0x4, Title: "Terminal", PID: 100},
	}, got)
}
