package wm

import "strings"

// Minimum on-screen size of a non-minimized window worth listing.
const (
	MinWidth  = 100
	MinHeight = 50
)

// DefaultExcludeTitles are shell, overlay and launcher windows that are
// never offered for hiding.
var DefaultExcludeTitles = []string{
	"Program Manager",
	"Windows 输入体验",
	"设置",
	"ASUSMascot",
	"AsHotplugCtrl",
	"NVIDIA GeForce Overlay",
	"NVIDIA Share",
	"NVIDIA Overlay",
	"Steam",
	"Discord",
	"Microsoft Text Input Application",
	"Windows Shell Experience Host",
	"SearchUI",
	"StartMenuExperienceHost",
	"SystemTray",
	"Desktop Window",
	"Armoury Crate",
}

// Candidate is what a backend knows about a top-level window before
// deciding whether to list it.
type Candidate struct {
	Handle     Handle
	Title      string
	PID        int
	Visible    bool
	Child      bool
	ToolWindow bool
	NoActivate bool
	Owned      bool
	Minimized  bool
	Width      int
	Height     int
}

// Filter decides which windows are offered for hiding.
type Filter struct {
	excluded map[string]struct{}
	ownPID   int
}

func NewFilter(excludeTitles []string, ownPID int) *Filter {
	f := &Filter{
		excluded: make(map[string]struct{}, len(excludeTitles)),
		ownPID:   ownPID,
	}
	for _, t := range excludeTitles {
		f.excluded[t] = struct{}{}
	}
	return f
}

// Eligible applies the listing rules to a single candidate.
func (f *Filter) Eligible(c Candidate) bool {
	if !c.Visible {
		return false
	}
	if strings.TrimSpace(c.Title) == "" {
		return false
	}
	if _, skip := f.excluded[c.Title]; skip {
		return false
	}
	if f.ownPID != 0 && c.PID == f.ownPID {
		return false
	}
	if c.Child || c.ToolWindow || c.NoActivate || c.Owned {
		return false
	}
	if !c.Minimized && (c.Width < MinWidth || c.Height < MinHeight) {
		return false
	}
	return true
}

// Apply keeps the eligible candidates, in order.
func (f *Filter) Apply(candidates []Candidate) []Window {
	out := make([]Window, 0, len(candidates))
	for _, c := range candidates {
		if f.Eligible(c) {
			out = append(out, Window{Handle: c.Handle, Title: c.Title, PID: c.PID})
		}
	}
	return out
}
