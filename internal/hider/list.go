package hider

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"skihide/internal/wm"
)

// MergeHidden appends windows SkiHide keeps hidden to a fresh enumeration.
// Hidden windows are not visible, so the enumerator drops them, but they
// must stay selectable to be restored.
func MergeHidden(listed []wm.Window, hidden map[wm.Handle]string) []wm.Window {
	out := make([]wm.Window, 0, len(listed)+len(hidden))
	seen := make(map[wm.Handle]bool, len(listed))
	for _, w := range listed {
		seen[w.Handle] = true
		out = append(out, w)
	}

	var extra []wm.Window
	for h, title := range hidden {
		if !seen[h] {
			extra = append(extra, wm.Window{Handle: h, Title: title})
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Handle < extra[j].Handle })
	return append(out, extra...)
}

type titles []wm.Window

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// FilterWindows fuzzy-matches query against window titles. Prefix matches
// rank first, then by score. An empty query keeps the input order.
func FilterWindows(windows []wm.Window, query string) []wm.Window {
	query = strings.TrimSpace(query)
	if query == "" {
		return windows
	}

	matches := fuzzy.FindFrom(query, titles(windows))
	lower := strings.ToLower(query)
	sort.SliceStable(matches, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(matches[i].Str), lower)
		pj := strings.HasPrefix(strings.ToLower(matches[j].Str), lower)
		if pi != pj {
			return pi
		}
		return matches[i].Score > matches[j].Score
	})

	out := make([]wm.Window, 0, len(matches))
	for _, m := range matches {
		out = append(out, windows[m.Index])
	}
	return out
}
