package trigger

import (
	"fmt"
	"sort"
	"strings"
)

// Modifier names in canonical order.
const (
	ModCtrl  = "ctrl"
	ModAlt   = "alt"
	ModShift = "shift"
	ModWin   = "win"
)

var modifierOrder = map[string]int{ModCtrl: 0, ModAlt: 1, ModShift: 2, ModWin: 3}

var modifierAliases = map[string]string{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"win":     ModWin,
	"windows": ModWin,
	"super":   ModWin,
	"cmd":     ModWin,
	"meta":    ModWin,
}

var keyAliases = map[string]string{
	"esc":    "escape",
	"return": "enter",
	"del":    "delete",
	"spc":    "space",
}

// Accelerator is a parsed hotkey such as "ctrl+alt+h".
type Accelerator struct {
	Modifiers []string
	Key       string
}

// ParseAccelerator accepts "+"-joined names, case-insensitive, in any order.
// Exactly one non-modifier key is required.
func ParseAccelerator(s string) (Accelerator, error) {
	var acc Accelerator
	if strings.TrimSpace(s) == "" {
		return acc, fmt.Errorf("empty hotkey")
	}

	seen := map[string]bool{}
	for _, part := range strings.Split(s, "+") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			return acc, fmt.Errorf("hotkey %q: empty key name", s)
		}
		if mod, ok := modifierAliases[name]; ok {
			if !seen[mod] {
				seen[mod] = true
				acc.Modifiers = append(acc.Modifiers, mod)
			}
			continue
		}
		if acc.Key != "" {
			return acc, fmt.Errorf("hotkey %q: more than one key (%s, %s)", s, acc.Key, name)
		}
		if alias, ok := keyAliases[name]; ok {
			name = alias
		}
		if !IsKnownKey(name) {
			return acc, fmt.Errorf("hotkey %q: unknown key %q", s, name)
		}
		acc.Key = name
	}

	if acc.Key == "" {
		return acc, fmt.Errorf("hotkey %q: modifiers need a key", s)
	}

	sort.Slice(acc.Modifiers, func(i, j int) bool {
		return modifierOrder[acc.Modifiers[i]] < modifierOrder[acc.Modifiers[j]]
	})
	return acc, nil
}

func (a Accelerator) String() string {
	return strings.Join(append(append([]string{}, a.Modifiers...), a.Key), "+")
}

// IsKnownKey reports whether name is a key the hotkey backends can bind.
func IsKnownKey(name string) bool {
	if len(name) == 1 {
		c := name[0]
		return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
	}
	if strings.HasPrefix(name, "f") {
		var n int
		if _, err := fmt.Sscanf(name, "f%d", &n); err == nil && fmt.Sprintf("f%d", n) == name {
			return n >= 1 && n <= 12
		}
	}
	switch name {
	case "space", "enter", "escape", "tab", "delete", "up", "down", "left", "right":
		return true
	}
	return false
}
